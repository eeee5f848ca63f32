package services

import (
	"sync"

	"github.com/warungku/warung-app/models"
)

// Actor adalah pemanggil yang sedang beraksi: staff yang login atau pengunjung
// anonim. Nilai ini dibangun per-request dari token + database dan dioper
// eksplisit ke resolver/validator; tidak ada state sesi global.
type Actor struct {
	UserID       uint
	Email        string
	isSuperAdmin bool
	memberships  []models.TenantMembership

	mu sync.RWMutex
}

// NewActor membangun actor ter-autentikasi dengan membership awal (tier-1
// cache untuk AccessValidator).
func NewActor(userID uint, email string, isSuperAdmin bool, memberships []models.TenantMembership) *Actor {
	return &Actor{
		UserID:       userID,
		Email:        email,
		isSuperAdmin: isSuperAdmin,
		memberships:  memberships,
	}
}

// AnonymousActor mewakili pengunjung tanpa sesi.
func AnonymousActor() *Actor {
	return &Actor{}
}

func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID != 0
}

func (a *Actor) IsSuperAdmin() bool {
	if a == nil {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isSuperAdmin
}

// Memberships mengembalikan salinan set membership saat ini.
func (a *Actor) Memberships() []models.TenantMembership {
	if a == nil {
		return nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.TenantMembership, len(a.memberships))
	copy(out, a.memberships)
	return out
}

// MembershipFor mencari membership actor pada satu tenant.
func (a *Actor) MembershipFor(tenantID uint) (models.TenantMembership, bool) {
	if a == nil {
		return models.TenantMembership{}, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, m := range a.memberships {
		if m.TenantID == tenantID {
			return m, true
		}
	}
	return models.TenantMembership{}, false
}

// ReplaceAccess mengganti seluruh cache akses secara atomik (replace, bukan
// merge) setelah re-validasi otoritatif. Membership tenant lama tidak boleh
// tersisa.
func (a *Actor) ReplaceAccess(isSuperAdmin bool, memberships []models.TenantMembership) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.isSuperAdmin = isSuperAdmin
	a.memberships = memberships
}

// ClearAccess menihilkan cache akses. Dipakai saat re-validasi gagal total:
// fail closed, jangan pakai privilege basi.
func (a *Actor) ClearAccess() {
	a.ReplaceAccess(false, nil)
}
