package services

import (
	"fmt"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

// PricingBreakdown adalah rincian harga satu order. Semua nominal rupiah utuh
// (integer); penjumlahan lintas item tidak boleh lewat floating point.
type PricingBreakdown struct {
	Subtotal int64 `json:"subtotal"`
	// Discount selalu 0 untuk sekarang; baris ini disiapkan untuk promo dan
	// tetap ikut di breakdown supaya kontraknya tidak berubah nanti.
	Discount       int64 `json:"discount"`
	DeliveryFee    int64 `json:"delivery_fee"`
	IsFreeDelivery bool  `json:"is_free_delivery"`
	Total          int64 `json:"total"`
}

// CalculatePricing menghitung breakdown dari subtotal cart dan aturan harga
// tenant. Fungsi murni, tanpa I/O.
func CalculatePricing(subtotal int64, setting models.PricingSetting) PricingBreakdown {
	freeDelivery := setting.FreeDeliveryThreshold > 0 && subtotal >= setting.FreeDeliveryThreshold

	deliveryFee := setting.DeliveryFee
	if freeDelivery {
		deliveryFee = 0
	}

	return PricingBreakdown{
		Subtotal:       subtotal,
		Discount:       0,
		DeliveryFee:    deliveryFee,
		IsFreeDelivery: freeDelivery,
		Total:          subtotal + deliveryFee,
	}
}

// MeetsMinimum menolak subtotal di bawah minimal belanja tenant. Pesan yang
// dikembalikan siap ditampilkan langsung ke pembeli.
func MeetsMinimum(subtotal int64, setting models.PricingSetting) (bool, string) {
	if subtotal < setting.MinimumOrderAmount {
		return false, fmt.Sprintf("Minimal pembelian %s, total belanja kamu baru %s",
			utils.FormatRupiah(setting.MinimumOrderAmount), utils.FormatRupiah(subtotal))
	}
	return true, ""
}
