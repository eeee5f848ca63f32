package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/services"
	"github.com/warungku/warung-app/utils"
)

type CheckoutController struct {
	DB      *gorm.DB
	Service *services.CheckoutService
}

func NewCheckoutController(db *gorm.DB, service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{DB: db, Service: service}
}

// Checkout -> submit order dari storefront satu tenant. Cart dikirim utuh di
// body; header Idempotency-Key opsional untuk menangkal double-submit.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	tenant, err := tenantBySlug(cc.DB, c.Param("tenant_slug"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("toko tidak ditemukan"))
		return
	}

	type CheckoutReq struct {
		Items         []services.CartItem   `json:"items" binding:"required"`
		Customer      services.CustomerInfo `json:"customer" binding:"required"`
		PaymentMethod string                `json:"payment_method"`
	}

	var req CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := services.ValidateCart(req.Items); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := cc.Service.Submit(
		c.Request.Context(),
		tenant.ID,
		req.Items,
		req.Customer,
		req.PaymentMethod,
		c.GetHeader("Idempotency-Key"),
	)
	if err != nil {
		var checkoutErr *services.CheckoutError
		if errors.As(err, &checkoutErr) {
			switch checkoutErr.Kind {
			case services.FailurePartialPersistence, services.FailureInternal:
				// Detail infrastruktur sudah di log; user cukup tahu harus
				// coba lagi.
				utils.RespondError(c, http.StatusInternalServerError, checkoutErr)
			default:
				utils.RespondError(c, http.StatusUnprocessableEntity, checkoutErr)
			}
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Sukses di sini adalah batas clear-cart untuk client.
	utils.RespondJSON(c, http.StatusCreated, "Pesanan berhasil dibuat", order)
}

// GetOrderByCode -> lookup publik order berdasarkan kode (halaman invoice /
// sukses). Dibatasi per tenant supaya kode tidak bisa dipakai lintas toko.
func (cc *CheckoutController) GetOrderByCode(c *gin.Context) {
	tenant, err := tenantBySlug(cc.DB, c.Param("tenant_slug"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("toko tidak ditemukan"))
		return
	}

	var order models.Order
	if err := cc.DB.Preload("Items").
		Where("tenant_id = ? AND code = ?", tenant.ID, c.Param("order_code")).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pesanan tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Detail pesanan", order)
}
