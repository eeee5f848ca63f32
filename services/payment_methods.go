package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
)

// Alasan pemilihan metode pembayaran ditolak. Pesannya langsung ditampilkan
// ke pembeli.
var (
	ErrPaymentEmpty       = errors.New("pilih metode pembayaran terlebih dahulu")
	ErrPaymentUnknown     = errors.New("metode pembayaran tidak dikenal")
	ErrPaymentUnavailable = errors.New("metode pembayaran ini tidak tersedia di toko ini")
)

var knownPaymentTypes = map[string]bool{
	models.PaymentTransfer: true,
	models.PaymentQris:     true,
	models.PaymentCOD:      true,
}

// AvailableMethods membaca metode pembayaran aktif sebuah tenant, urut
// sort_order. Harus dibaca ulang setiap ganti tenant; daftar milik tenant lain
// tidak boleh dipakai ulang.
func AvailableMethods(db *gorm.DB, tenantID uint) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := db.Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("sort_order asc, id asc").
		Find(&methods).Error
	return methods, err
}

// ValidateSelection memeriksa pilihan pembeli terhadap daftar metode aktif
// tenant. Total: input apapun menghasilkan tepat satu dari nil /
// ErrPaymentEmpty / ErrPaymentUnknown / ErrPaymentUnavailable.
func ValidateSelection(selected string, available []models.PaymentMethod) error {
	if selected == "" {
		return ErrPaymentEmpty
	}
	if !knownPaymentTypes[selected] {
		return ErrPaymentUnknown
	}
	for _, m := range available {
		if m.Type == selected {
			return nil
		}
	}
	return ErrPaymentUnavailable
}
