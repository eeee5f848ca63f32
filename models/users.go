package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	IsSuperAdmin bool   `gorm:"not null;default:false" json:"is_super_admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
