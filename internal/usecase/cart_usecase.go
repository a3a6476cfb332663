package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
)

type cartUsecase struct {
	cartRepo    domain.CartRepository
	productRepo domain.ProductRepository
}

func NewCartUsecase(cartRepo domain.CartRepository, productRepo domain.ProductRepository) domain.CartUsecase {
	return &cartUsecase{cartRepo: cartRepo, productRepo: productRepo}
}

func (u *cartUsecase) FetchCart(ctx context.Context, userID string) (*domain.CartView, error) {
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.buildView(ctx, session.ID)
}

// buildView loads the session's lines, joins each to its product in one
// batched lookup, and partitions by the saved-for-later flag. Lines
// whose product has been deleted are dropped from the view silently.
func (u *cartUsecase) buildView(ctx context.Context, sessionID string) (*domain.CartView, error) {
	lines, err := u.cartRepo.FetchLines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &domain.CartView{
		SessionID:  sessionID,
		Items:      []domain.CartLineView{},
		SavedItems: []domain.CartLineView{},
	}
	if len(lines) == 0 {
		return view, nil
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := u.productRepo.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			slog.Warn("dropping cart line for missing product",
				"session_id", sessionID, "product_id", l.ProductID)
			continue
		}
		lv := domain.CartLineView{CartLine: l, Product: p}
		if l.IsSavedForLater {
			view.SavedItems = append(view.SavedItems, lv)
		} else {
			view.Items = append(view.Items, lv)
		}
	}
	return view, nil
}

func (u *cartUsecase) AddToCart(ctx context.Context, userID string, in domain.AddToCartInput) (*domain.CartView, error) {
	if in.Quantity < 1 {
		return nil, apperror.BadRequest("Quantity must be at least 1")
	}

	product, err := u.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, err
	}

	if in.VariantID != nil {
		variant, err := u.productRepo.GetVariant(ctx, *in.VariantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, apperror.NotFound("Product variant not found")
			}
			return nil, err
		}
		if variant.ProductID != product.ID {
			return nil, apperror.BadRequest("Variant does not belong to this product")
		}
	}

	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := domain.LineKey{
		ProductID:     in.ProductID,
		VariantID:     in.VariantID,
		SelectedColor: in.SelectedColor,
		SelectedSize:  in.SelectedSize,
	}
	// The snapshot is refreshed to the current price even when the
	// line already exists.
	if err := u.cartRepo.MergeLine(ctx, session.ID, key, in.Quantity, product.Price); err != nil {
		return nil, err
	}
	return u.buildView(ctx, session.ID)
}

// RemoveFromCart removes every line for the product regardless of
// variant. Removal granularity is the product, matching the storefront
// UI which keys cart rows by product.
func (u *cartUsecase) RemoveFromCart(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	affected, err := u.cartRepo.RemoveProduct(ctx, session.ID, productID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Product is not in the cart")
	}
	return u.buildView(ctx, session.ID)
}

func (u *cartUsecase) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if quantity <= 0 {
		return u.RemoveFromCart(ctx, userID, productID)
	}
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	affected, err := u.cartRepo.SetQuantityForProduct(ctx, session.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Product is not in the cart")
	}
	return u.buildView(ctx, session.ID)
}

func (u *cartUsecase) SaveForLater(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	return u.setSaved(ctx, userID, productID, true)
}

func (u *cartUsecase) MoveToCart(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	return u.setSaved(ctx, userID, productID, false)
}

func (u *cartUsecase) setSaved(ctx context.Context, userID, productID string, saved bool) (*domain.CartView, error) {
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	affected, err := u.cartRepo.SetSavedForLater(ctx, session.ID, productID, saved)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, apperror.NotFound("Product is not in the cart")
	}
	return u.buildView(ctx, session.ID)
}

// ClearCart deletes the session's active lines. Saved-for-later lines
// survive.
func (u *cartUsecase) ClearCart(ctx context.Context, userID string) error {
	session, err := u.cartRepo.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return err
	}
	return u.cartRepo.ClearActiveLines(ctx, session.ID)
}
