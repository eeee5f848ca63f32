package models

import "time"

// Order adalah pesanan yang sudah final. Setelah dibuat hanya Status (dan
// UpdatedAt) yang boleh berubah; nominal dan item tidak pernah diedit lagi.
// Invariant: Total = Subtotal - Discount + DeliveryFee.
type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	TenantID uint   `gorm:"not null;index" json:"tenant_id"`
	Tenant   Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	// IdempotencyKey opsional dari client untuk menangkal double-submit.
	IdempotencyKey *string     `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	CustomerName   string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone  string      `gorm:"type:varchar(30);not null" json:"customer_phone"`
	PickupDate     time.Time   `json:"pickup_date"`
	Subtotal       int64       `gorm:"not null" json:"subtotal"`
	Discount       int64       `gorm:"not null;default:0" json:"discount"`
	DeliveryFee    int64       `gorm:"not null;default:0" json:"delivery_fee"`
	Total          int64       `gorm:"not null" json:"total"`
	PaymentMethod  string      `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status         string      `gorm:"type:varchar(30);not null;default:'BELUM_BAYAR'" json:"status"`
	Notes          string      `gorm:"type:text" json:"notes"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}
