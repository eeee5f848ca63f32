package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/services"
	"github.com/warungku/warung-app/utils"
)

type PaymentMethodController struct {
	DB *gorm.DB
}

func NewPaymentMethodController(db *gorm.DB) *PaymentMethodController {
	return &PaymentMethodController{DB: db}
}

// GetTenantPaymentMethods -> metode pembayaran aktif satu tenant, urut
// sort_order (public, untuk halaman checkout).
func (pc *PaymentMethodController) GetTenantPaymentMethods(c *gin.Context) {
	tenant, err := tenantBySlug(pc.DB, c.Param("tenant_slug"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("toko tidak ditemukan"))
		return
	}

	methods, err := services.AvailableMethods(pc.DB, tenant.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Metode pembayaran", methods)
}
