package v1

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-storefront-backend/config"
	"go-storefront-backend/internal/delivery/http/response"
	"go-storefront-backend/internal/domain"
	"go-storefront-backend/pkg/apperror"
	"go-storefront-backend/pkg/storage"
)

// thumbnailMaxDim keeps product images at a size the product grid can
// load quickly on mobile data.
const (
	thumbnailMaxDim  = 1200
	thumbnailQuality = 85
)

type AdminHandler struct {
	authUC    domain.AuthUsecase
	productUC domain.ProductUsecase
	uploader  *storage.Uploader
	cfg       *config.Config
}

func NewAdminHandler(admin *gin.RouterGroup, authUC domain.AuthUsecase, productUC domain.ProductUsecase, uploader *storage.Uploader, cfg *config.Config, uploadLimiter gin.HandlerFunc) {
	handler := &AdminHandler{authUC: authUC, productUC: productUC, uploader: uploader, cfg: cfg}

	admin.POST("/users/:id/role", handler.AssignRole)
	admin.POST("/products/:id/image", uploadLimiter, handler.UploadProductImage)
	admin.POST("/advertisements", uploadLimiter, handler.UploadAdvertisement)
}

type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=customer admin"`
}

// AssignRole godoc
// @Summary      Assign a role to a user (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      AssignRoleRequest  true  "Role JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/users/{id}/role [post]
// @Security     BearerAuth
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	if err := h.authUC.AssignRole(c, c.Param("id"), req.Role); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role assigned", nil)
}

// UploadProductImage godoc
// @Summary      Upload a product image (admin)
// @Description  Validates, resizes and stores the image, then points the product at the public URL
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Product ID"
// @Param        file  formData  file    true  "Image file"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/products/{id}/image [post]
// @Security     BearerAuth
func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	productID := c.Param("id")

	// Fail fast on unknown products before touching storage.
	if _, err := h.productUC.GetProduct(c, productID); err != nil {
		c.Error(err)
		return
	}

	data, filename, err := h.readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	resized, err := storage.Thumbnail(data, thumbnailMaxDim, thumbnailQuality)
	if err != nil {
		c.Error(apperror.BadRequest("Could not process image: " + err.Error()))
		return
	}

	key := fmt.Sprintf("%s/%d-%s", productID, time.Now().Unix(), storage.SanitizeFilename(filename))
	url, err := h.uploader.Put(c, h.cfg.ProductBucket, key, "image/jpeg", resized)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.productUC.SetProductImage(c, productID, url); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Product image uploaded", gin.H{"image": url})
}

// UploadAdvertisement godoc
// @Summary      Upload an advertisement banner (admin)
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/advertisements [post]
// @Security     BearerAuth
func (h *AdminHandler) UploadAdvertisement(c *gin.Context) {
	data, filename, err := h.readUpload(c)
	if err != nil {
		c.Error(err)
		return
	}

	// Banners keep their original encoding; the storefront hero
	// section renders them full-width.
	key := fmt.Sprintf("%s-%s", uuid.New().String(), storage.SanitizeFilename(filename))
	contentType := http.DetectContentType(data)
	url, err := h.uploader.Put(c, h.cfg.AdBucket, key, contentType, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Advertisement uploaded", gin.H{"image": url})
}

func (h *AdminHandler) readUpload(c *gin.Context) ([]byte, string, error) {
	if h.uploader == nil {
		return nil, "", apperror.Unavailable("Image storage is not configured")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", apperror.BadRequest("Missing file upload")
	}
	if fileHeader.Size > storage.MaxImageBytes {
		return nil, "", apperror.BadRequest("File too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperror.BadRequest("Could not read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxImageBytes+1))
	if err != nil {
		return nil, "", apperror.BadRequest("Could not read upload")
	}

	if err := storage.ValidateImage(fileHeader.Filename, data); err != nil {
		return nil, "", apperror.BadRequest(err.Error())
	}
	return data, fileHeader.Filename, nil
}
