package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type CheckoutHandler struct {
	checkoutUC domain.CheckoutUsecase
}

func NewCheckoutHandler(protected *gin.RouterGroup, checkoutUC domain.CheckoutUsecase, placeOrderLimiter gin.HandlerFunc) {
	handler := &CheckoutHandler{checkoutUC: checkoutUC}

	checkout := protected.Group("/checkout")
	{
		checkout.GET("", handler.Summary)
		// The strict limiter only guards order placement; reading the
		// summary is harmless.
		checkout.POST("", placeOrderLimiter, handler.PlaceOrder)
	}
}

type PlaceOrderRequest struct {
	AddressID     string  `json:"address_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=paystack mix_pay"`
	PaymentRef    *string `json:"payment_ref"`
}

// Summary godoc
// @Summary      Checkout summary
// @Description  Prices the active cart at current product prices and lists the user's addresses
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      412  {object}  response.Response
// @Router       /checkout [get]
// @Security     BearerAuth
func (h *CheckoutHandler) Summary(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	summary, err := h.checkoutUC.Summary(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Checkout summary", summary)
}

// PlaceOrder godoc
// @Summary      Place an order
// @Description  Creates the order and clears the active cart lines in one transaction
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        order  body      PlaceOrderRequest  true  "Order JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      412  {object}  response.Response
// @Router       /checkout [post]
// @Security     BearerAuth
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	receipt, err := h.checkoutUC.PlaceOrder(c, userID, domain.PlaceOrderInput{
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		PaymentRef:    req.PaymentRef,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Order placed", receipt)
}
