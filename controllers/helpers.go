package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/services"
)

var ErrNoPermission = errors.New("kamu tidak punya akses ke halaman ini")

// currentActor membangun Actor dari identitas di context (hasil auth
// middleware) plus membership dari database sebagai seed cache tier-1.
// Return nil jika request tidak ter-autentikasi.
func currentActor(c *gin.Context, db *gorm.DB) *services.Actor {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return services.AnonymousActor()
	}
	userID, ok := userIDVal.(uint)
	if !ok || userID == 0 {
		return services.AnonymousActor()
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return services.AnonymousActor()
	}

	var memberships []models.TenantMembership
	if err := db.Preload("Tenant").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&memberships).Error; err != nil {
		memberships = nil
	}

	return services.NewActor(user.ID, user.Email, user.IsSuperAdmin, memberships)
}

// tenantBySlug mencari tenant dari slug path publik.
func tenantBySlug(db *gorm.DB, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
