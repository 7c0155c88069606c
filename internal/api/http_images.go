package api

import (
	"net/http"
	"strings"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Image listing is public. Uploading requires any authenticated user;
// update and delete require ownership or an admin tier.

// ListImages returns paginated images with their uploaders.
func (h *HTTPHandler) ListImages(c *gin.Context) {
	var params entity.ImageQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c)
		return
	}

	images, meta, err := h.repo.ListImages(c.Request.Context(), &params)
	if err != nil {
		HandleError(c, err)
		return
	}

	summaries := make([]entity.ImageSummary, 0, len(images))
	for i := range images {
		summaries = append(summaries, h.toImageSummary(&images[i]))
	}
	c.JSON(http.StatusOK, entity.ImageListResponse{Images: summaries, Meta: meta})
}

// CreateImage uploads a file and records it against the caller.
// Multipart fields: file (required), title, alt_text.
func (h *HTTPHandler) CreateImage(c *gin.Context) {
	user := h.requireUser(c)
	if user == nil {
		return
	}
	ctx := c.Request.Context()

	header, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}
	key, err := h.saveImageUpload(c, header, "images")
	if err != nil {
		return
	}

	image := &entity.DbImage{
		URL:    key,
		UserID: user.ID,
	}
	if title, ok := c.GetPostForm("title"); ok {
		image.Title = &title
	}
	if altText, ok := c.GetPostForm("alt_text"); ok {
		image.AltText = &altText
	}
	if err := h.repo.CreateImage(ctx, image); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetImageByID(ctx, image.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toImageSummary(fresh))
}

// UpdateImage patches title and alt text. Owner or admin tier only.
func (h *HTTPHandler) UpdateImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.ImageUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	image, err := h.repo.GetImageByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	resolver := RequestResolver(c)
	if _, err := auth.RequireOwnerOrAdmin(ctx, resolver, image.UserID); err != nil {
		HandleError(c, err)
		return
	}

	updates := entity.ImageUpdates{
		Title:   req.Title,
		AltText: req.AltText,
	}
	if !updates.IsEmpty() {
		if err := h.repo.UpdateImage(ctx, id, updates); err != nil {
			HandleError(c, err)
			return
		}
	}

	fresh, err := h.repo.GetImageByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toImageSummary(fresh))
}

// DeleteImage removes the record and then the stored file. Owner or
// admin tier only. A failed file removal is logged, not surfaced: the
// record is already gone.
func (h *HTTPHandler) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	image, err := h.repo.GetImageByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	resolver := RequestResolver(c)
	if _, err := auth.RequireOwnerOrAdmin(ctx, resolver, image.UserID); err != nil {
		HandleError(c, err)
		return
	}

	summary := h.toImageSummary(image)
	if err := h.repo.DeleteImage(ctx, id); err != nil {
		HandleError(c, err)
		return
	}

	if !strings.HasPrefix(image.URL, "http://") && !strings.HasPrefix(image.URL, "https://") {
		if err := h.storage.Delete(ctx, image.URL); err != nil {
			logrus.WithError(err).WithField("key", image.URL).Warn("failed to delete stored file")
		}
	}

	c.JSON(http.StatusOK, summary)
}
