package storage_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"go-storefront-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	t.Run("accepts real png", func(t *testing.T) {
		assert.NoError(t, storage.ValidateImage("shirt.png", pngBytes(t, 4, 4)))
	})

	t.Run("accepts webp by signature", func(t *testing.T) {
		header := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
		header = append(header, []byte("WEBPVP8 ")...)
		assert.NoError(t, storage.ValidateImage("banner.webp", header))
	})

	t.Run("rejects disallowed extension", func(t *testing.T) {
		err := storage.ValidateImage("catalog.pdf", []byte("%PDF-1.4"))
		assert.Error(t, err)
	})

	t.Run("rejects content-extension mismatch", func(t *testing.T) {
		// PNG bytes renamed to .jpg must fail the signature check
		err := storage.ValidateImage("shirt.jpg", pngBytes(t, 4, 4))
		assert.Error(t, err)
	})

	t.Run("rejects empty file", func(t *testing.T) {
		assert.Error(t, storage.ValidateImage("shirt.png", nil))
	})
}

func TestThumbnailScalesDown(t *testing.T) {
	out, err := storage.Thumbnail(pngBytes(t, 800, 400), 200, 80)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	out, err := storage.Thumbnail(pngBytes(t, 50, 80), 200, 80)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "summer_sale_banner.png", storage.SanitizeFilename("summer sale banner.png"))
	assert.Equal(t, "rn.jpg", storage.SanitizeFilename("ürün.jpg"))
	assert.Equal(t, "upload.jpg", storage.SanitizeFilename("商品.jpg"))
}
