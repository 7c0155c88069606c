package api

import (
	"errors"
	"net/http"
	"strings"

	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Category reads are public with the same published-only filtering as
// blogs. Writes require the manage_blogs permission.

// ListBlogCategories returns paginated categories.
func (h *HTTPHandler) ListBlogCategories(c *gin.Context) {
	var params entity.BlogCategoryQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		InvalidPayload(c)
		return
	}

	isAdmin, err := h.callerIsAdminTier(c)
	if err != nil {
		HandleError(c, err)
		return
	}
	params.PublishedOnly = !isAdmin

	categories, meta, err := h.repo.ListBlogCategories(c.Request.Context(), &params)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.BlogCategoryListResponse{Categories: categories, Meta: meta})
}

// GetBlogCategory returns one category by slug.
func (h *HTTPHandler) GetBlogCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	category, err := h.repo.GetBlogCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		HandleError(c, err)
		return
	}

	if !category.IsPublished {
		isAdmin, err := h.callerIsAdminTier(c)
		if err != nil {
			HandleError(c, err)
			return
		}
		if !isAdmin {
			NotFound(c, "Resource not found")
			return
		}
	}
	c.JSON(http.StatusOK, category)
}

// CreateBlogCategory creates a category. Slug must be unique.
func (h *HTTPHandler) CreateBlogCategory(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}

	var req entity.BlogCategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	if _, err := h.repo.GetBlogCategoryBySlug(ctx, req.Slug); err == nil {
		BadRequest(c, "Slug already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		HandleError(c, err)
		return
	}

	category := &entity.DbBlogCategory{
		Slug:         strings.TrimSpace(req.Slug),
		Name:         req.Name,
		IsPublished:  req.IsPublished,
		ShortDesc:    req.ShortDesc,
		MetaTitle:    req.MetaTitle,
		MetaKeywords: req.MetaKeywords,
		MetaDesc:     req.MetaDesc,
		ThumbnailID:  req.ThumbnailID,
	}
	if err := h.repo.CreateBlogCategory(ctx, category); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetBlogCategoryByID(ctx, category.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fresh)
}

// UpdateBlogCategory patches a category addressed by slug.
func (h *HTTPHandler) UpdateBlogCategory(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))

	var req entity.BlogCategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	category, err := h.repo.GetBlogCategoryBySlug(ctx, slug)
	if err != nil {
		HandleError(c, err)
		return
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		if existing, err := h.repo.GetBlogCategoryBySlug(ctx, *req.Slug); err == nil && existing.ID != category.ID {
			BadRequest(c, "Slug already taken")
			return
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			HandleError(c, err)
			return
		}
	}

	updates := entity.BlogCategoryUpdates{
		Slug:         req.Slug,
		Name:         req.Name,
		IsPublished:  req.IsPublished,
		ShortDesc:    req.ShortDesc,
		MetaTitle:    req.MetaTitle,
		MetaKeywords: req.MetaKeywords,
		MetaDesc:     req.MetaDesc,
	}
	if req.ThumbnailID != nil {
		updates.ThumbnailID = &req.ThumbnailID
	}
	if err := h.repo.UpdateBlogCategory(ctx, category.ID, updates); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetBlogCategoryByID(ctx, category.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// DeleteBlogCategory removes a category; its blogs are detached.
func (h *HTTPHandler) DeleteBlogCategory(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))
	ctx := c.Request.Context()

	category, err := h.repo.GetBlogCategoryBySlug(ctx, slug)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.repo.DeleteBlogCategory(ctx, category.ID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
