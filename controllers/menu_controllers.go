package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetTenantMenus -> daftar menu tersedia milik satu tenant (public).
func (mc *MenuController) GetTenantMenus(c *gin.Context) {
	tenant, err := tenantBySlug(mc.DB, c.Param("tenant_slug"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("toko tidak ditemukan"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Where("tenant_id = ? AND is_available = ?", tenant.ID, true).
		Order("name asc").
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daftar menu", gin.H{
		"tenant": tenant,
		"menus":  menus,
	})
}
