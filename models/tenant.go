package models

import "time"

type Tenant struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
	// BrandPrefix dipakai sebagai prefix kode order, mis. "KP" -> KP-251003-7W2B9I
	BrandPrefix string    `gorm:"type:varchar(4)" json:"brand_prefix"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
