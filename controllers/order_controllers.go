package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/services"
	"github.com/warungku/warung-app/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Validator *services.AccessValidator
	Notifier  services.Notifier

	// Slug fallback untuk resolusi scope; diisi dari config.
	DefaultTenantSlug string
}

func NewOrderController(db *gorm.DB, validator *services.AccessValidator, notifier services.Notifier, defaultSlug string) *OrderController {
	return &OrderController{
		DB:                db,
		Validator:         validator,
		Notifier:          notifier,
		DefaultTenantSlug: defaultSlug,
	}
}

// authorizeTenantScope me-resolve tenant aktif staff lalu menjalankan cek
// akses dua tingkat. Semua endpoint staff lewat sini.
func (oc *OrderController) authorizeTenantScope(c *gin.Context, capability services.Capability) (*services.TenantScope, bool) {
	actor := currentActor(c, oc.DB)

	scope, err := services.ResolveTenantScope(actor, c.Request.URL.Path, oc.DefaultTenantSlug)
	if err != nil {
		utils.RespondError(c, http.StatusForbidden, err)
		return nil, false
	}

	decision := oc.Validator.Authorize(c.Request.Context(), actor, scope.TenantID, capability)
	if !decision.Allowed {
		switch decision.Reason {
		case services.DenyNoSession:
			utils.RespondError(c, http.StatusUnauthorized, errors.New("silakan login terlebih dahulu"))
		case services.DenyValidationUnreachable:
			// Transport ke sumber kebenaran gagal; jangan bocorkan detail.
			utils.RespondError(c, http.StatusServiceUnavailable, errors.New("gagal memeriksa akses, coba lagi"))
		default:
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		}
		return nil, false
	}

	return &scope, true
}

// GetAllOrders -> daftar order tenant milik staff, terbaru dulu.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	scope, ok := oc.authorizeTenantScope(c, services.CapabilityTenantAccess)
	if !ok {
		return
	}

	query := oc.DB.Preload("Items").Where("tenant_id = ?", scope.TenantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Daftar pesanan", orders)
}

// GetOrderByID -> detail satu order, dibatasi tenant scope staff.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	scope, ok := oc.authorizeTenantScope(c, services.CapabilityTenantAccess)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("tenant_id = ?", scope.TenantID).
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pesanan tidak ditemukan"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Detail pesanan", order)
}

// UpdateOrderStatus -> staff menggeser status order sesuai lifecycle.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	scope, ok := oc.authorizeTenantScope(c, services.CapabilityTenantAccess)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	type UpdateReq struct {
		Status string `json:"status" binding:"required"`
	}
	var req UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Pastikan order milik tenant scope sebelum disentuh.
	var order models.Order
	if err := oc.DB.Where("tenant_id = ?", scope.TenantID).First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pesanan tidak ditemukan"))
		return
	}
	previousStatus := order.Status

	updated, err := services.TransitionOrder(oc.DB, order.ID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Side effect transisi bukan urusan mesin status; notifikasi di sini,
	// best-effort.
	if oc.Notifier != nil {
		go func(order models.Order, prev string) {
			defer func() {
				if r := recover(); r != nil {
					utils.ErrorLogger.Printf("order: notification panic for %s: %v", order.Code, r)
				}
			}()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := oc.Notifier.NotifyOrderStatusChanged(ctx, &order, prev); err != nil {
				utils.ErrorLogger.Printf("order: failed to notify status change for %s: %v", order.Code, err)
			}
		}(*updated, previousStatus)
	}

	utils.RespondJSON(c, http.StatusOK, "Status pesanan diperbarui", updated)
}
