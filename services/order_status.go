package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
)

// Status order. String Indonesia adalah nilai yang disimpan dan dikirim di
// wire; ini kontrak yang sudah berjalan, bukan label tampilan.
const (
	StatusUnpaid    = "BELUM_BAYAR"
	StatusPaid      = "SUDAH_BAYAR"
	StatusPreparing = "SEDANG_DISIAPKAN"
	StatusReady     = "SIAP_DIAMBIL"
	StatusDone      = "SELESAI"
	StatusCancelled = "DIBATALKAN"
)

var ErrInvalidTransition = errors.New("perubahan status tidak valid")

// statusFlow adalah tabel adjacency lifecycle order. DIBATALKAN bisa dicapai
// dari semua status non-terminal; SELESAI dan DIBATALKAN terminal.
var statusFlow = map[string][]string{
	StatusUnpaid:    {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDone, StatusCancelled},
	StatusDone:      {},
	StatusCancelled: {},
}

// IsValidStatus memeriksa apakah sebuah string adalah status yang dikenal.
func IsValidStatus(status string) bool {
	_, ok := statusFlow[status]
	return ok
}

// CanTransition memeriksa tabel adjacency. Mesin status tidak memvalidasi
// prasyarat bisnis lain; itu urusan pemanggil.
func CanTransition(from, to string) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionOrder menggeser status satu order. Update di-guard dengan status
// asal (WHERE status = from) sehingga dua staff yang menekan tombol bersamaan
// tidak saling menimpa; yang kalah dapat ErrInvalidTransition.
func TransitionOrder(db *gorm.DB, orderID uint, next string) (*models.Order, error) {
	if !IsValidStatus(next) {
		return nil, fmt.Errorf("%w: status %q tidak dikenal", ErrInvalidTransition, next)
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	now := time.Now()
	res := db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(map[string]interface{}{
			"status":     next,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Status berubah di bawah kita; transisi yang diminta sudah tidak
		// berlaku terhadap status sekarang.
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	order.Status = next
	order.UpdatedAt = now
	return &order, nil
}
