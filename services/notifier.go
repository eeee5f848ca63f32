package services

import (
	"context"

	"github.com/warungku/warung-app/models"
)

// Notifier mengantarkan notifikasi ke staff tenant. Implementasinya di luar
// core (websocket hub); kegagalan kirim tidak pernah menggagalkan order.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, order *models.Order) error
	NotifyOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus string) error
}
