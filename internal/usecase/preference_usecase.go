package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
	"go-storefront-backend/pkg/currency"
	"go-storefront-backend/pkg/retry"
)

type preferenceUsecase struct {
	prefRepo    domain.PreferenceRepository
	retryPolicy retry.Policy
}

func NewPreferenceUsecase(prefRepo domain.PreferenceRepository) domain.PreferenceUsecase {
	return &preferenceUsecase{
		prefRepo:    prefRepo,
		retryPolicy: retry.DefaultPolicy(),
	}
}

func (u *preferenceUsecase) GetCurrency(ctx context.Context, userID string) (string, error) {
	pref, err := u.prefRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return string(currency.NGN), nil
		}
		return "", err
	}
	return pref.Currency, nil
}

// SetCurrency validates and mirrors the display currency. The stored
// row is a hint for the next session, not a source of truth, so a
// failed write is logged and the request still succeeds.
func (u *preferenceUsecase) SetCurrency(ctx context.Context, userID, cur string) error {
	parsed, ok := currency.Parse(cur)
	if !ok {
		return apperror.BadRequest("Unknown currency: " + cur)
	}

	pref := &domain.Preference{
		UserID:    userID,
		Currency:  string(parsed),
		UpdatedAt: time.Now(),
	}
	err := retry.Do(ctx, u.retryPolicy, func(ctx context.Context) error {
		return u.prefRepo.Upsert(ctx, pref)
	})
	if err != nil {
		slog.Warn("failed to persist currency preference",
			"user_id", userID, "currency", pref.Currency, "error", err)
	}
	return nil
}
