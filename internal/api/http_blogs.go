package api

import (
	"errors"
	"net/http"
	"strings"

	"blogkit/internal/entity"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Blog reads are public; unpublished posts are visible to admin tiers
// only. Writes require the manage_blogs permission.

// callerIsAdminTier resolves the caller without requiring one.
func (h *HTTPHandler) callerIsAdminTier(c *gin.Context) (bool, error) {
	resolver := RequestResolver(c)
	if resolver == nil {
		return false, nil
	}
	user, err := resolver.GetUser(c.Request.Context())
	if err != nil {
		return false, err
	}
	return user.IsAdminTier(), nil
}

// ListBlogs returns paginated blogs. Non-admin callers only see
// published posts.
func (h *HTTPHandler) ListBlogs(c *gin.Context) {
	var params entity.BlogQuery
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

	blogs, meta, err := h.repo.ListBlogs(c.Request.Context(), &params)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.BlogListResponse{Blogs: blogs, Meta: meta})
}

// GetBlog returns one blog by slug. Unpublished posts resolve to 404
// for non-admin callers.
func (h *HTTPHandler) GetBlog(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	blog, err := h.repo.GetBlogBySlug(c.Request.Context(), slug)
	if err != nil {
		HandleError(c, err)
		return
	}

	if !blog.IsPublished {
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
	c.JSON(http.StatusOK, blog)
}

// CreateBlog creates a post. Slug must be unique.
func (h *HTTPHandler) CreateBlog(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}

	var req entity.BlogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	if _, err := h.repo.GetBlogBySlug(ctx, req.Slug); err == nil {
		BadRequest(c, "Slug already taken")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		HandleError(c, err)
		return
	}

	blog := &entity.DbBlog{
		Slug:         strings.TrimSpace(req.Slug),
		Title:        req.Title,
		IsPublished:  req.IsPublished,
		ShortDesc:    req.ShortDesc,
		Content:      req.Content,
		MetaTitle:    req.MetaTitle,
		MetaKeywords: req.MetaKeywords,
		MetaDesc:     req.MetaDesc,
		CategoryID:   req.CategoryID,
		ThumbnailID:  req.ThumbnailID,
	}
	if err := h.repo.CreateBlog(ctx, blog); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetBlogByID(ctx, blog.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fresh)
}

// UpdateBlog patches a post addressed by slug. A new slug must stay
// unique.
func (h *HTTPHandler) UpdateBlog(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))

	var req entity.BlogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	ctx := c.Request.Context()

	blog, err := h.repo.GetBlogBySlug(ctx, slug)
	if err != nil {
		HandleError(c, err)
		return
	}

	if req.Slug != nil && *req.Slug != blog.Slug {
		if existing, err := h.repo.GetBlogBySlug(ctx, *req.Slug); err == nil && existing.ID != blog.ID {
			BadRequest(c, "Slug already taken")
			return
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			HandleError(c, err)
			return
		}
	}

	updates := entity.BlogUpdates{
		Slug:         req.Slug,
		Title:        req.Title,
		IsPublished:  req.IsPublished,
		ShortDesc:    req.ShortDesc,
		Content:      req.Content,
		MetaTitle:    req.MetaTitle,
		MetaKeywords: req.MetaKeywords,
		MetaDesc:     req.MetaDesc,
	}
	if req.CategoryID != nil {
		updates.CategoryID = &req.CategoryID
	}
	if req.ThumbnailID != nil {
		updates.ThumbnailID = &req.ThumbnailID
	}
	if err := h.repo.UpdateBlog(ctx, blog.ID, updates); err != nil {
		HandleError(c, err)
		return
	}

	fresh, err := h.repo.GetBlogByID(ctx, blog.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// DeleteBlog removes a post addressed by slug.
func (h *HTTPHandler) DeleteBlog(c *gin.Context) {
	if h.requirePermission(c, entity.PermissionManageBlogs) == nil {
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))
	ctx := c.Request.Context()

	blog, err := h.repo.GetBlogBySlug(ctx, slug)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.repo.DeleteBlog(ctx, blog.ID); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
