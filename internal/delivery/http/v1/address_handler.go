package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type AddressHandler struct {
	addressUC domain.AddressUsecase
}

func NewAddressHandler(protected *gin.RouterGroup, addressUC domain.AddressUsecase) {
	handler := &AddressHandler{addressUC: addressUC}

	addresses := protected.Group("/addresses")
	{
		addresses.GET("", handler.List)
		addresses.POST("", handler.Create)
		addresses.PUT("/:id", handler.Update)
		addresses.POST("/:id/primary", handler.SetPrimary)
		addresses.DELETE("/:id", handler.Delete)
	}
}

type AddressRequest struct {
	Street    string  `json:"street" binding:"required,no_emoji"`
	City      string  `json:"city" binding:"required,no_emoji"`
	State     string  `json:"state" binding:"required,no_emoji"`
	Zip       string  `json:"zip" binding:"required,valid_zip"`
	Country   string  `json:"country" binding:"required,no_emoji"`
	Name      string  `json:"name" binding:"required,valid_name"`
	PhoneNo   string  `json:"phone_no" binding:"required,valid_phone"`
	IsPrimary bool    `json:"is_primary"`
	Notes     *string `json:"notes"`
}

// List godoc
// @Summary      List delivery addresses
// @Description  Returns the user's addresses, primary first
// @Tags         addresses
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /addresses [get]
// @Security     BearerAuth
func (h *AddressHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	addresses, err := h.addressUC.ListAddresses(c, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Address list", addresses)
}

// Create godoc
// @Summary      Add a delivery address
// @Description  The user's first address becomes primary automatically
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        address  body      AddressRequest  true  "Address JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /addresses [post]
// @Security     BearerAuth
func (h *AddressHandler) Create(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	address := addressFromRequest(&req)
	if err := h.addressUC.CreateAddress(c, userID, address); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Address added", address)
}

// Update godoc
// @Summary      Update a delivery address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Address ID"
// @Param        address  body      AddressRequest  true  "Address JSON"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /addresses/{id} [put]
// @Security     BearerAuth
func (h *AddressHandler) Update(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	address := addressFromRequest(&req)
	address.ID = c.Param("id")
	if err := h.addressUC.UpdateAddress(c, userID, address); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Address updated", address)
}

// SetPrimary godoc
// @Summary      Make an address the primary one
// @Description  The previous primary is demoted in the same transaction
// @Tags         addresses
// @Produce      json
// @Param        id   path      string  true  "Address ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /addresses/{id}/primary [post]
// @Security     BearerAuth
func (h *AddressHandler) SetPrimary(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.addressUC.SetPrimaryAddress(c, userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Primary address updated", nil)
}

// Delete godoc
// @Summary      Delete a delivery address
// @Tags         addresses
// @Produce      json
// @Param        id   path      string  true  "Address ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /addresses/{id} [delete]
// @Security     BearerAuth
func (h *AddressHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.addressUC.DeleteAddress(c, userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Address deleted", nil)
}

func addressFromRequest(req *AddressRequest) *domain.Address {
	return &domain.Address{
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		Country:   req.Country,
		Name:      req.Name,
		PhoneNo:   req.PhoneNo,
		IsPrimary: req.IsPrimary,
		Notes:     req.Notes,
	}
}
