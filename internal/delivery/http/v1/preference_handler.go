package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/currency"
)

type PreferenceHandler struct {
	prefUC  domain.PreferenceUsecase
	usdRate float64
}

func NewPreferenceHandler(protected *gin.RouterGroup, prefUC domain.PreferenceUsecase, usdRate float64) {
	handler := &PreferenceHandler{prefUC: prefUC, usdRate: usdRate}

	prefs := protected.Group("/preferences")
	{
		prefs.GET("/currency", handler.GetCurrency)
		prefs.PUT("/currency", handler.SetCurrency)
	}
}

type SetCurrencyRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// GetCurrency godoc
// @Summary      Get the display currency preference
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /preferences/currency [get]
// @Security     BearerAuth
func (h *PreferenceHandler) GetCurrency(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	cur, err := h.prefUC.GetCurrency(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	// The client converts NGN prices itself; ship the symbol and rate
	// alongside the preference so it never hardcodes either.
	parsed, _ := currency.Parse(cur)
	response.Success(c, http.StatusOK, "Currency preference", gin.H{
		"currency": cur,
		"symbol":   currency.Symbol(parsed),
		"usd_rate": h.usdRate,
	})
}

// SetCurrency godoc
// @Summary      Set the display currency preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body      SetCurrencyRequest  true  "Currency JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /preferences/currency [put]
// @Security     BearerAuth
func (h *PreferenceHandler) SetCurrency(c *gin.Context) {
	var req SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.prefUC.SetCurrency(c, userID, req.Currency); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Currency preference saved", nil)
}
