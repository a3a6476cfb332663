package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	protected.POST("/auth/signout", handler.SignOut)
}

// SignOut godoc
// @Summary      Sign out
// @Description  Closes the caller's active shopping session. The token itself is revoked client-side via Supabase.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if err := h.authUC.SignOut(c, userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Signed out", nil)
}
