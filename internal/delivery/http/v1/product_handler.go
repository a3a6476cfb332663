package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type ProductHandler struct {
	productUC domain.ProductUsecase
}

func NewProductHandler(public *gin.RouterGroup, admin *gin.RouterGroup, productUC domain.ProductUsecase) {
	handler := &ProductHandler{productUC: productUC}

	// PUBLIC routes - the storefront catalog needs no login
	products := public.Group("/products")
	{
		products.GET("", handler.List)
		products.GET("/:id", handler.GetDetails)
	}

	// ADMIN routes - catalog management
	adminProducts := admin.Group("/products")
	{
		adminProducts.POST("", handler.Create)
		adminProducts.PUT("/:id", handler.Update)
		adminProducts.DELETE("/:id", handler.Delete)
	}
}

type ProductRequest struct {
	Name               string   `json:"name" binding:"required,no_emoji"`
	Price              float64  `json:"price" binding:"required,gt=0"`
	OriginalPrice      *float64 `json:"original_price" binding:"omitempty,gt=0"`
	DiscountActive     bool     `json:"discount_active"`
	DiscountPercentage *float64 `json:"discount_percentage" binding:"omitempty,gt=0,lte=100"`
	Category           string   `json:"category"`
	ShippingLocation   string   `json:"shipping_location"`
	Description        string   `json:"description"`
	Stock              int      `json:"stock" binding:"gte=0"`
	Colors             []string `json:"colors"`
	Sizes              []string `json:"sizes"`
}

// List godoc
// @Summary      List products
// @Description  Browse the catalog with optional category and search filters
// @Tags         products
// @Produce      json
// @Param        category   query     string  false  "Category filter"
// @Param        search     query     string  false  "Name search"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := domain.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, total, err := h.productUC.ListProducts(c, filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Product list", products, page, pageSize, total)
}

// GetDetails godoc
// @Summary      Get product details
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /products/{id} [get]
func (h *ProductHandler) GetDetails(c *gin.Context) {
	product, err := h.productUC.GetProduct(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Product details", product)
}

// Create godoc
// @Summary      Create a product
// @Description  Add a product to the catalog (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        product  body      ProductRequest  true  "Product JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/products [post]
// @Security     BearerAuth
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	product := productFromRequest(&req)
	if err := h.productUC.CreateProduct(c, product); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Product created", product)
}

// Update godoc
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Product ID"
// @Param        product  body      ProductRequest  true  "Product JSON"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/products/{id} [put]
// @Security     BearerAuth
func (h *ProductHandler) Update(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	product := productFromRequest(&req)
	product.ID = c.Param("id")
	if err := h.productUC.UpdateProduct(c, product); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Product updated", product)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/products/{id} [delete]
// @Security     BearerAuth
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productUC.DeleteProduct(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Product deleted", nil)
}

func productFromRequest(req *ProductRequest) *domain.Product {
	return &domain.Product{
		Name:               req.Name,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		DiscountActive:     req.DiscountActive,
		DiscountPercentage: req.DiscountPercentage,
		Category:           req.Category,
		ShippingLocation:   req.ShippingLocation,
		Description:        req.Description,
		Stock:              req.Stock,
		Colors:             req.Colors,
		Sizes:              req.Sizes,
	}
}
