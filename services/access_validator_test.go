package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
)

// stubAccessStore meniru sumber kebenaran akses dengan perilaku yang bisa
// diatur per test.
type stubAccessStore struct {
	calls  int32
	delay  time.Duration
	status *AccessStatus
	err    error
}

func (s *stubAccessStore) FetchAccessStatus(ctx context.Context, userID uint) (*AccessStatus, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.status, nil
}

func fastRetry() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:       3,
		BaseDelay:         time.Millisecond,
		PerAttemptTimeout: 100 * time.Millisecond,
	}
}

func TestAuthorizeFailsClosedWhenStoreUnreachable(t *testing.T) {
	store := &stubAccessStore{err: errors.New("connection refused")}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}

	// Cache bilang actor admin tenant 1; itu tidak boleh dipercaya saat
	// re-validasi gagal total.
	actor := NewActor(1, "admin@warung.id", true, []models.TenantMembership{
		membershipFixture(1, "kopi-pagi", models.RoleAdmin),
	})

	for _, capability := range []Capability{CapabilityTenantAccess, CapabilityTenantAdmin, CapabilitySuperAdmin} {
		decision := validator.Authorize(context.Background(), actor, 1, capability)
		assert.False(t, decision.Allowed, "capability %s", capability)
		assert.Equal(t, DenyValidationUnreachable, decision.Reason)
	}

	// Cache juga sudah dinihilkan
	assert.Empty(t, actor.Memberships())
	assert.False(t, actor.IsSuperAdmin())
}

func TestAuthorizeRetriesThreeTimes(t *testing.T) {
	store := &stubAccessStore{err: errors.New("timeout")}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}
	actor := NewActor(1, "a@b.id", false, nil)

	decision := validator.Authorize(context.Background(), actor, 1, CapabilityTenantAccess)

	assert.False(t, decision.Allowed)
	assert.Equal(t, int32(3), atomic.LoadInt32(&store.calls))
}

func TestAuthorizeRefreshReplacesStaleMemberships(t *testing.T) {
	// Otoritatif bilang: sekarang cuma cashier di tenant 2
	store := &stubAccessStore{status: &AccessStatus{
		IsSuperAdmin: false,
		Memberships: []models.TenantMembership{
			membershipFixture(2, "warung-lain", models.RoleCashier),
		},
	}}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}

	// Cache basi bilang admin tenant 1
	actor := NewActor(1, "a@b.id", false, []models.TenantMembership{
		membershipFixture(1, "kopi-pagi", models.RoleAdmin),
	})

	decision := validator.Authorize(context.Background(), actor, 1, CapabilityTenantAccess)

	// Replace, bukan merge: membership tenant 1 hilang
	assert.False(t, decision.Allowed)
	memberships := actor.Memberships()
	assert.Len(t, memberships, 1)
	assert.Equal(t, uint(2), memberships[0].TenantID)
}

func TestAuthorizeNoSession(t *testing.T) {
	validator := NewAccessValidator(&stubAccessStore{})

	decision := validator.Authorize(context.Background(), AnonymousActor(), 1, CapabilityTenantAccess)

	assert.False(t, decision.Allowed)
	assert.Equal(t, DenyNoSession, decision.Reason)
}

func TestAuthorizeCapabilityNoneAlwaysAllowed(t *testing.T) {
	store := &stubAccessStore{err: errors.New("down")}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}

	decision := validator.Authorize(context.Background(), AnonymousActor(), 0, CapabilityNone)

	assert.True(t, decision.Allowed)
	// Tidak ada round trip sama sekali
	assert.Equal(t, int32(0), atomic.LoadInt32(&store.calls))
}

func TestConcurrentAuthorizeSharesOneRoundTrip(t *testing.T) {
	store := &stubAccessStore{
		delay: 20 * time.Millisecond,
		status: &AccessStatus{Memberships: []models.TenantMembership{
			membershipFixture(1, "kopi-pagi", models.RoleCashier),
		}},
	}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}
	actor := NewActor(1, "a@b.id", false, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision := validator.Authorize(context.Background(), actor, 1, CapabilityTenantAccess)
			assert.True(t, decision.Allowed)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&store.calls))
}

func TestRoleHierarchyAgainstGormStore(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Tenant{}, &models.TenantMembership{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	tenant := models.Tenant{Slug: "kopi-pagi", Name: "Kopi Pagi"}
	db.Create(&tenant)
	cashier := models.User{Name: "Siti", Email: "siti@warung.id", Password: "x"}
	db.Create(&cashier)
	db.Create(&models.TenantMembership{UserID: cashier.ID, TenantID: tenant.ID, Role: models.RoleCashier})

	validator := NewAccessValidator(&GormAccessStore{DB: db})
	actor := NewActor(cashier.ID, cashier.Email, false, nil)

	// Cashier boleh masuk tenant-nya...
	access := validator.Authorize(context.Background(), actor, tenant.ID, CapabilityTenantAccess)
	assert.True(t, access.Allowed)

	// ...tapi bukan admin tenant
	admin := validator.Authorize(context.Background(), actor, tenant.ID, CapabilityTenantAdmin)
	assert.False(t, admin.Allowed)
	assert.Equal(t, DenyInsufficientRole, admin.Reason)

	// ...dan bukan super admin global
	super := validator.Authorize(context.Background(), actor, tenant.ID, CapabilitySuperAdmin)
	assert.False(t, super.Allowed)

	// Role tidak bocor lintas tenant
	cross := validator.Authorize(context.Background(), actor, tenant.ID+99, CapabilityTenantAccess)
	assert.False(t, cross.Allowed)
}

func TestTenantAdminCapabilityAcceptsAdminRoles(t *testing.T) {
	tests := []struct {
		role    string
		allowed bool
	}{
		{models.RoleSuperAdmin, true},
		{models.RoleAdmin, true},
		{models.RoleManager, false},
		{models.RoleCashier, false},
	}

	for _, tt := range tests {
		store := &stubAccessStore{status: &AccessStatus{
			Memberships: []models.TenantMembership{membershipFixture(1, "kopi-pagi", tt.role)},
		}}
		validator := &AccessValidator{Store: store, Retry: fastRetry()}
		actor := NewActor(1, "a@b.id", false, nil)

		decision := validator.Authorize(context.Background(), actor, 1, CapabilityTenantAdmin)
		assert.Equal(t, tt.allowed, decision.Allowed, "role %s", tt.role)
	}
}

func TestCheckCachedDoesNotHitStore(t *testing.T) {
	store := &stubAccessStore{err: errors.New("down")}
	validator := &AccessValidator{Store: store, Retry: fastRetry()}

	actor := NewActor(1, "a@b.id", false, []models.TenantMembership{
		membershipFixture(1, "kopi-pagi", models.RoleCashier),
	})

	assert.True(t, validator.CheckCached(actor, 1, CapabilityTenantAccess))
	assert.False(t, validator.CheckCached(actor, 1, CapabilityTenantAdmin))
	assert.Equal(t, int32(0), atomic.LoadInt32(&store.calls))
}
