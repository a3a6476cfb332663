package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Address fields
	"Street":    "Street",
	"City":      "City",
	"State":     "State",
	"Zip":       "Postal code",
	"Country":   "Country",
	"Name":      "Name",
	"PhoneNo":   "Phone number",
	"Notes":     "Delivery notes",
	"IsPrimary": "Primary flag",

	// Cart / checkout fields
	"ProductID":     "Product",
	"VariantID":     "Variant",
	"Quantity":      "Quantity",
	"SelectedColor": "Color",
	"SelectedSize":  "Size",
	"AddressID":     "Delivery address",
	"PaymentMethod": "Payment method",

	// Product fields
	"Title":              "Product name",
	"Price":              "Price",
	"OriginalPrice":      "Original price",
	"DiscountPercentage": "Discount percentage",
	"Category":           "Category",
	"ShippingLocation":   "Ships from",
	"Description":        "Description",
	"Stock":              "Stock",

	// Preference fields
	"Currency": "Currency",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", label, param)
	case "gte":
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Split(param, " "), ", "))
	case "email":
		return fmt.Sprintf("%s: invalid email format", label)
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "uuid":
		return fmt.Sprintf("%s: invalid identifier", label)
	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces, and common punctuation allowed", label)
	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)
	case "valid_zip":
		return fmt.Sprintf("%s: invalid postal code", label)
	case "no_emoji":
		return fmt.Sprintf("%s: emoji and special symbols are not allowed", label)
	case "gtefield":
		return fmt.Sprintf("%s: must not be lower than %s", label, getFieldLabel(param))
	default:
		return fmt.Sprintf("%s: validation failed (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
