package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

// Capability adalah level akses yang diminta sebuah endpoint/layar.
type Capability string

const (
	CapabilityNone         Capability = "none"
	CapabilityTenantAccess Capability = "tenant_access"
	CapabilityTenantAdmin  Capability = "tenant_admin"
	CapabilitySuperAdmin   Capability = "super_admin"
)

// Alasan penolakan akses, dipakai untuk menentukan layar yang ditampilkan.
const (
	DenyNoSession             = "no-session"
	DenyInsufficientRole      = "insufficient-role"
	DenyValidationUnreachable = "validation-unreachable"
)

// Decision adalah hasil Authorize.
type Decision struct {
	Allowed bool
	Reason  string
}

func allowed() Decision             { return Decision{Allowed: true} }
func denied(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// AccessStatus adalah jawaban otoritatif atas "apa saja akses user ini".
type AccessStatus struct {
	IsSuperAdmin bool
	Memberships  []models.TenantMembership
}

// AccessStore adalah sumber kebenaran status akses. Harus idempoten karena
// dipanggil ulang oleh retry policy.
type AccessStore interface {
	FetchAccessStatus(ctx context.Context, userID uint) (*AccessStatus, error)
}

// GormAccessStore membaca status akses dari database.
type GormAccessStore struct {
	DB *gorm.DB
}

func (s *GormAccessStore) FetchAccessStatus(ctx context.Context, userID uint) (*AccessStatus, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	var memberships []models.TenantMembership
	// Urutan stabil: membership pertama dipakai sebagai scope aktif.
	if err := s.DB.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	return &AccessStatus{
		IsSuperAdmin: user.IsSuperAdmin,
		Memberships:  memberships,
	}, nil
}

// RetryPolicy membatasi pemanggilan store yang bisa flaky.
type RetryPolicy struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	PerAttemptTimeout time.Duration
}

// DefaultRetryPolicy: 3 percobaan, backoff 1x/2x/3x base delay, 5 detik per
// percobaan.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BaseDelay:         500 * time.Millisecond,
		PerAttemptTimeout: 5 * time.Second,
	}
}

// AccessValidator menjalankan cek akses dua tingkat: cek cepat terhadap cache
// membership di Actor, lalu re-validasi otoritatif ke store sebelum akses
// layar terproteksi diberikan. Cache saja tidak pernah cukup untuk gating.
type AccessValidator struct {
	Store AccessStore
	Retry RetryPolicy

	group inflightGroup
}

func NewAccessValidator(store AccessStore) *AccessValidator {
	return &AccessValidator{
		Store: store,
		Retry: DefaultRetryPolicy(),
	}
}

// CheckCached adalah tier 1: keputusan cepat dari data membership yang sudah
// ada di Actor. Cocok untuk hide/show elemen, bukan untuk gating.
func (v *AccessValidator) CheckCached(actor *Actor, tenantID uint, capability Capability) bool {
	return evaluate(actor, tenantID, capability).Allowed
}

// Authorize adalah tier 2: re-validasi otoritatif lalu putuskan. Kegagalan
// transport setelah retry habis membuat akses ditutup (fail closed), bukan
// memakai privilege basi dari cache.
func (v *AccessValidator) Authorize(ctx context.Context, actor *Actor, tenantID uint, capability Capability) Decision {
	if capability == CapabilityNone {
		return allowed()
	}
	if !actor.IsAuthenticated() {
		return denied(DenyNoSession)
	}

	status, err := v.revalidate(ctx, actor)
	if err != nil {
		utils.ErrorLogger.Printf("access revalidation failed for user %d: %v", actor.UserID, err)
		actor.ClearAccess()
		return denied(DenyValidationUnreachable)
	}

	// Refresh cache secara atomik: replace, bukan merge.
	actor.ReplaceAccess(status.IsSuperAdmin, status.Memberships)

	return evaluate(actor, tenantID, capability)
}

// evaluate memutuskan berdasarkan data akses actor saat ini.
func evaluate(actor *Actor, tenantID uint, capability Capability) Decision {
	switch capability {
	case CapabilityNone:
		return allowed()
	case CapabilitySuperAdmin:
		// Flag global, lepas dari membership tenant manapun.
		if actor.IsSuperAdmin() {
			return allowed()
		}
		return denied(DenyInsufficientRole)
	case CapabilityTenantAccess:
		if _, ok := actor.MembershipFor(tenantID); ok {
			return allowed()
		}
		return denied(DenyInsufficientRole)
	case CapabilityTenantAdmin:
		m, ok := actor.MembershipFor(tenantID)
		if ok && (m.Role == models.RoleAdmin || m.Role == models.RoleSuperAdmin) {
			return allowed()
		}
		return denied(DenyInsufficientRole)
	default:
		return denied(DenyInsufficientRole)
	}
}

// revalidate memanggil store lewat retry policy, dan menggabungkan panggilan
// konkuren untuk actor yang sama menjadi satu round trip.
func (v *AccessValidator) revalidate(ctx context.Context, actor *Actor) (*AccessStatus, error) {
	return v.group.do(actor.UserID, func() (*AccessStatus, error) {
		return v.fetchWithRetry(ctx, actor.UserID)
	})
}

func (v *AccessValidator) fetchWithRetry(ctx context.Context, userID uint) (*AccessStatus, error) {
	retry := v.Retry
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}

	var lastErr error
	for attempt := 1; attempt <= retry.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, retry.PerAttemptTimeout)
		status, err := v.Store.FetchAccessStatus(attemptCtx, userID)
		cancel()
		if err == nil {
			return status, nil
		}
		lastErr = err

		if attempt < retry.MaxAttempts {
			// Backoff naik linear: 1x, 2x, 3x base delay.
			select {
			case <-time.After(time.Duration(attempt) * retry.BaseDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if lastErr == nil {
		lastErr = errors.New("access status fetch failed")
	}
	return nil, lastErr
}
