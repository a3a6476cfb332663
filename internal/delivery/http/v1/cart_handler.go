package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type CartHandler struct {
	cartUC domain.CartUsecase
}

func NewCartHandler(protected *gin.RouterGroup, cartUC domain.CartUsecase) {
	handler := &CartHandler{cartUC: cartUC}

	cart := protected.Group("/cart")
	{
		cart.GET("", handler.Get)
		cart.DELETE("", handler.Clear)
		cart.POST("/items", handler.AddItem)
		cart.DELETE("/items/:productId", handler.RemoveItem)
		cart.PATCH("/items/:productId", handler.UpdateQuantity)
		cart.POST("/items/:productId/save", handler.SaveForLater)
		cart.POST("/items/:productId/move", handler.MoveToCart)
	}
}

type AddItemRequest struct {
	ProductID     string  `json:"product_id" binding:"required"`
	VariantID     *string `json:"variant_id"`
	SelectedColor *string `json:"selected_color"`
	SelectedSize  *string `json:"selected_size"`
	Quantity      int     `json:"quantity" binding:"required,gte=1"`
}

type UpdateQuantityRequest struct {
	// gte=0 on purpose: zero removes the product from the cart.
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// Get godoc
// @Summary      Get the cart
// @Description  Returns the active session's items and saved-for-later items
// @Tags         cart
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /cart [get]
// @Security     BearerAuth
func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.cartUC.FetchCart(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cart", view)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Description  Merges into an existing line when the product/variant/color/size tuple matches
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        item  body      AddItemRequest  true  "Item JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cart/items [post]
// @Security     BearerAuth
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.cartUC.AddToCart(c, userID, domain.AddToCartInput{
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		SelectedColor: req.SelectedColor,
		SelectedSize:  req.SelectedSize,
		Quantity:      req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item added to cart", view)
}

// RemoveItem godoc
// @Summary      Remove a product from the cart
// @Description  Removes every line for the product regardless of variant
// @Tags         cart
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cart/items/{productId} [delete]
// @Security     BearerAuth
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.cartUC.RemoveFromCart(c, userID, c.Param("productId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item removed", view)
}

// UpdateQuantity godoc
// @Summary      Set a cart line's quantity
// @Description  Quantity zero removes the product from the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path      string                 true  "Product ID"
// @Param        body       body      UpdateQuantityRequest  true  "Quantity JSON"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cart/items/{productId} [patch]
// @Security     BearerAuth
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	view, err := h.cartUC.UpdateQuantity(c, userID, c.Param("productId"), *req.Quantity)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Quantity updated", view)
}

// SaveForLater godoc
// @Summary      Move a cart line to saved-for-later
// @Tags         cart
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cart/items/{productId}/save [post]
// @Security     BearerAuth
func (h *CartHandler) SaveForLater(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.cartUC.SaveForLater(c, userID, c.Param("productId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item saved for later", view)
}

// MoveToCart godoc
// @Summary      Move a saved item back to the cart
// @Tags         cart
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cart/items/{productId}/move [post]
// @Security     BearerAuth
func (h *CartHandler) MoveToCart(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	view, err := h.cartUC.MoveToCart(c, userID, c.Param("productId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item moved to cart", view)
}

// Clear godoc
// @Summary      Clear the cart
// @Description  Deletes the active lines; saved-for-later items survive
// @Tags         cart
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /cart [delete]
// @Security     BearerAuth
func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.cartUC.ClearCart(c, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cart cleared", nil)
}
