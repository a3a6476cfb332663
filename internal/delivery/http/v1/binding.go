package v1

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-storefront-backend/pkg/apperror"
	"go-storefront-backend/pkg/validation"
)

// bindError turns a gin binding failure into a readable 400. Field
// errors come back as "label: problem" pairs instead of validator's
// struct-path dump.
func bindError(err error) *apperror.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return apperror.BadRequest(err.Error())
}
