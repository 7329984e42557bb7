package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/gin-gonic/gin"
)

const uploadField = "image"

func (h *GalleryHandler) GetDefault(c *gin.Context) {
	resp, err := h.service.DefaultGallery(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GalleryHandler) Upload(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	resp, err := h.service.UploadGallery(c.Request.Context(), file)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDefaultVariant serves /variants/<name>.png for the bundled image.
func (h *GalleryHandler) GetDefaultVariant(c *gin.Context) {
	name, err := variantName(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	data, err := h.service.DefaultVariant(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *GalleryHandler) UploadVariant(c *gin.Context) {
	name, err := variantName(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	data, err := h.service.UploadVariant(c.Request.Context(), file, name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// openUpload answers the request itself when no usable file was sent.
func (h *GalleryHandler) openUpload(c *gin.Context) (io.ReadCloser, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Image is larger than %d MB", h.maxUploadBytes>>20),
			})
			return nil, false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return file, true
}

func variantName(c *gin.Context) (string, error) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		return "", fmt.Errorf("%w: %s", entity.ErrUnknownVariant, c.Param("file"))
	}
	return name, nil
}
