package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"blogkit/internal/storage"

	"github.com/gin-gonic/gin"
)

const maxImageUploadBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]string{
	".jpg":  "jpg",
	".jpeg": "jpeg",
	".png":  "png",
	".webp": "webp",
}

func (h *HTTPHandler) publicURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	base := h.storagePublicBase
	if base == "" {
		base = "/files"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(trimmed, "/"))
}

// saveImageUpload validates and persists a multipart image. Returns the
// storage key. On validation failure the response has already been
// written and an error is returned.
func (h *HTTPHandler) saveImageUpload(c *gin.Context, header *multipart.FileHeader, category string) (string, error) {
	if header.Size > maxImageUploadBytes {
		BadRequest(c, "File too large, maximum size is 5MB")
		return "", fmt.Errorf("file too large: %d bytes", header.Size)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	normalized, ok := allowedImageExtensions[ext]
	if !ok {
		BadRequest(c, "Unsupported file type, allowed: jpg, jpeg, png, webp")
		return "", fmt.Errorf("unsupported extension: %s", ext)
	}

	file, err := header.Open()
	if err != nil {
		InternalError(c, "Failed to read upload")
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadBytes+1))
	if err != nil {
		InternalError(c, "Failed to read upload")
		return "", err
	}
	if len(data) > maxImageUploadBytes {
		BadRequest(c, "File too large, maximum size is 5MB")
		return "", fmt.Errorf("file too large")
	}
	if len(data) == 0 {
		BadRequest(c, "Empty file")
		return "", fmt.Errorf("empty file")
	}

	// Sniff the payload rather than trusting the filename.
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		BadRequest(c, "Uploaded file is not an image")
		return "", fmt.Errorf("not an image: %s", contentType)
	}

	key, err := h.storage.Save(c.Request.Context(), data, storage.SaveOptions{
		Category:  category,
		Extension: normalized,
	})
	if err != nil {
		InternalError(c, "Failed to store upload")
		return "", err
	}
	return key, nil
}
