package models

import "time"

// Tipe metode pembayaran yang dikenal platform.
const (
	PaymentTransfer = "TRANSFER"
	PaymentQris     = "QRIS"
	PaymentCOD      = "COD"
)

// PaymentMethod adalah metode pembayaran yang diaktifkan per tenant.
// Core hanya membaca subset yang aktif; pengelolaannya ada di settings.
type PaymentMethod struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TenantID  uint   `gorm:"not null;index" json:"tenant_id"`
	Tenant    Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string `gorm:"type:varchar(20);not null" json:"type"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
	// Field spesifik per tipe: rekening untuk TRANSFER, gambar QR untuk QRIS.
	BankName      string    `gorm:"type:varchar(100)" json:"bank_name,omitempty"`
	AccountName   string    `gorm:"type:varchar(255)" json:"account_name,omitempty"`
	AccountNumber string    `gorm:"type:varchar(50)" json:"account_number,omitempty"`
	QrisImageURL  string    `gorm:"type:varchar(500)" json:"qris_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
