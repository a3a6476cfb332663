package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type OrderHandler struct {
	orderUC domain.OrderUsecase
}

func NewOrderHandler(protected *gin.RouterGroup, admin *gin.RouterGroup, orderUC domain.OrderUsecase) {
	handler := &OrderHandler{orderUC: orderUC}

	orders := protected.Group("/orders")
	{
		orders.GET("", handler.List)
		orders.GET("/:id", handler.GetDetails)
	}

	adminOrders := admin.Group("/orders")
	{
		adminOrders.GET("", handler.ListAll)
		adminOrders.PATCH("/:id/status", handler.UpdateStatus)
	}
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
	PaymentRef *string `json:"payment_ref"`
}

// List godoc
// @Summary      List the user's orders
// @Tags         orders
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /orders [get]
// @Security     BearerAuth
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := c.GetString(string(domain.KeyUserID))
	orders, total, err := h.orderUC.ListOrders(c, userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Order list", orders, page, pageSize, total)
}

// GetDetails godoc
// @Summary      Get an order with its items
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /orders/{id} [get]
// @Security     BearerAuth
func (h *OrderHandler) GetDetails(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	order, err := h.orderUC.GetOrder(c, userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Order details", order)
}

// ListAll godoc
// @Summary      List all orders (admin)
// @Tags         admin
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /admin/orders [get]
// @Security     BearerAuth
func (h *OrderHandler) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	orders, total, err := h.orderUC.ListAllOrders(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "All orders", orders, page, pageSize, total)
}

// UpdateStatus godoc
// @Summary      Update an order's status (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Order ID"
// @Param        body  body      UpdateStatusRequest  true  "Status JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/orders/{id}/status [patch]
// @Security     BearerAuth
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.orderUC.UpdateOrderStatus(c, c.Param("id"), req.Status, req.PaymentRef); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Order status updated", nil)
}
