package http

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/providers/icon"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/types"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/shared/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// MaxIconUpload limits uploaded icon files
const MaxIconUpload = 5 * 1024 * 1024

const iconFailedMessage = "Image generation failed. Please try again."

// GenerateIcon asks the image service for a new icon
func (h *Handlers) GenerateIcon(c *gin.Context) {
	var req types.IconGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePrompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := h.icons.GenerateIcon(c.Request.Context(), req.Prompt)
	c.JSON(http.StatusOK, iconResult(image, ok))
}

// EditIcon asks the image service to edit an existing image
func (h *Handlers) EditIcon(c *gin.Context) {
	var req types.IconEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePrompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateImageSource(req.Image); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, ok := h.icons.EditImage(c.Request.Context(), req.Image, req.Prompt)
	c.JSON(http.StatusOK, iconResult(image, ok))
}

// UploadIcon turns an uploaded image file into a data URL
func (h *Handlers) UploadIcon(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}
	if header.Size > MaxIconUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "icon exceeds 5MB"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxIconUpload))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(mime, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file is not an image", "detected": mime})
		return
	}

	c.JSON(http.StatusOK, types.IconResult{
		OK:    true,
		Image: icon.DataURL(mime, base64.StdEncoding.EncodeToString(data)),
	})
}

func iconResult(image string, ok bool) types.IconResult {
	if !ok {
		return types.IconResult{OK: false, Message: iconFailedMessage}
	}
	return types.IconResult{OK: true, Image: image}
}
