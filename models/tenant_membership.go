package models

import "time"

// Role staff dalam satu tenant, urut dari privilege tertinggi.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleCashier    = "cashier"
)

// TenantMembership mengikat satu user ke satu tenant dengan satu role.
// Role hanya berlaku di dalam tenant-nya sendiri.
type TenantMembership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_tenant" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TenantID  uint      `gorm:"not null;index;uniqueIndex:idx_user_tenant" json:"tenant_id"`
	Tenant    Tenant    `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tenant"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
