package models

import "time"

// PricingSetting menyimpan aturan harga per tenant. Semua nominal dalam
// rupiah utuh (integer), tanpa pecahan desimal.
type PricingSetting struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;uniqueIndex" json:"tenant_id"`
	Tenant   Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// Minimal belanja agar order diterima. 0 = tanpa minimum.
	MinimumOrderAmount int64 `gorm:"not null;default:0" json:"minimum_order_amount"`
	// Ongkir flat yang dibebankan ke order.
	DeliveryFee int64 `gorm:"not null;default:0" json:"delivery_fee"`
	// Subtotal mulai berapa ongkir digratiskan. 0 = fitur nonaktif.
	FreeDeliveryThreshold int64     `gorm:"not null;default:0" json:"free_delivery_threshold"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
