package api

import "blogkit/internal/entity"

func toUserSummary(user *entity.DbUser) entity.UserSummary {
	return entity.UserSummary{
		ID:            user.ID,
		Name:          user.Name,
		Username:      user.Username,
		Email:         user.Email,
		UserType:      user.UserType,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func toRoleSummary(role *entity.DbRole) entity.RoleSummary {
	return entity.RoleSummary{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: role.Permissions.ToSlice(),
	}
}

func toAccountDetail(user *entity.DbUser) entity.AccountDetail {
	detail := entity.AccountDetail{
		UserSummary: toUserSummary(user),
		Roles:       make([]entity.RoleSummary, 0, len(user.Roles)),
	}
	for i := range user.Roles {
		detail.Roles = append(detail.Roles, toRoleSummary(&user.Roles[i]))
	}
	if user.Profile != nil {
		detail.Profile = &entity.ProfileSummary{
			ID:     user.Profile.ID,
			Avatar: user.Profile.Avatar,
			About:  user.Profile.About,
		}
	}
	return detail
}

func (h *HTTPHandler) toImageSummary(image *entity.DbImage) entity.ImageSummary {
	summary := entity.ImageSummary{
		ID:        image.ID,
		URL:       h.publicURL(image.URL),
		AltText:   image.AltText,
		Title:     image.Title,
		CreatedAt: image.CreatedAt,
		UpdatedAt: image.UpdatedAt,
	}
	if image.UploadedBy != nil {
		summary.UploadedBy = toUserSummary(image.UploadedBy)
	}
	return summary
}
