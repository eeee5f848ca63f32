package ws

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

// HubNotifier mengantarkan notifikasi order lewat staff hub dan mengarsipkan
// salinannya ke tabel notifications. Keduanya best-effort.
type HubNotifier struct {
	DB *gorm.DB
}

func NewHubNotifier(db *gorm.DB) *HubNotifier {
	return &HubNotifier{DB: db}
}

func (n *HubNotifier) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	BroadcastOrderCreated(order.TenantID, order)

	title := "Pesanan baru"
	message := fmt.Sprintf("Pesanan %s dari %s, total %s (%s)",
		order.Code, order.CustomerName, utils.FormatRupiah(order.Total), order.PaymentMethod)
	return n.archive(ctx, order.TenantID, &title, message)
}

func (n *HubNotifier) NotifyOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus string) error {
	BroadcastOrderStatusChanged(order.TenantID, map[string]interface{}{
		"order":           order,
		"previous_status": previousStatus,
	})

	title := "Status pesanan berubah"
	message := fmt.Sprintf("Pesanan %s: %s -> %s", order.Code, previousStatus, order.Status)
	return n.archive(ctx, order.TenantID, &title, message)
}

func (n *HubNotifier) archive(ctx context.Context, tenantID uint, title *string, message string) error {
	notif := models.Notification{
		TenantID: tenantID,
		Title:    title,
		Message:  message,
	}
	return n.DB.WithContext(ctx).Create(&notif).Error
}
