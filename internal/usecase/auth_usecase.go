package usecase

import (
	"context"
	"errors"
	"time"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
	cartRepo domain.CartRepository
}

func NewAuthUsecase(userRepo domain.UserRepository, cartRepo domain.CartRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, cartRepo: cartRepo}
}

// GetCurrentUser loads the local row for a Supabase subject, creating
// it with the customer role the first time a valid token shows up.
func (u *authUsecase) GetCurrentUser(ctx context.Context, id, email string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		ID:        id,
		Email:     email,
		Role:      domain.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) AssignRole(ctx context.Context, targetUserID, role string) error {
	callerRole, _ := ctx.Value(domain.KeyUserRole).(string)
	if callerRole != domain.RoleAdmin {
		return apperror.Forbidden("Only admins can assign roles")
	}
	if role != domain.RoleCustomer && role != domain.RoleAdmin {
		return apperror.BadRequest("Unknown role: " + role)
	}
	return u.userRepo.UpdateRole(ctx, targetUserID, role)
}

// SignOut closes the active shopping session. Idempotent: signing out
// with no active session is not an error.
func (u *authUsecase) SignOut(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	return u.cartRepo.CloseActiveSession(ctx, userID)
}
