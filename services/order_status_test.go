package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
)

func setupOrderStatusDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedOrder(db *gorm.DB, status string) models.Order {
	tenant := models.Tenant{Slug: "kopi-pagi", Name: "Kopi Pagi"}
	db.Create(&tenant)
	order := models.Order{
		Code:          "KP-250831-ABC123",
		TenantID:      tenant.ID,
		CustomerName:  "Budi",
		CustomerPhone: "08123456789",
		Subtotal:      100000,
		Total:         100000,
		PaymentMethod: models.PaymentCOD,
		Status:        status,
	}
	db.Create(&order)
	return order
}

func TestCanTransitionAdjacency(t *testing.T) {
	allStatuses := []string{StatusUnpaid, StatusPaid, StatusPreparing, StatusReady, StatusDone, StatusCancelled}

	allowed := map[[2]string]bool{
		{StatusUnpaid, StatusPaid}:         true,
		{StatusUnpaid, StatusCancelled}:    true,
		{StatusPaid, StatusPreparing}:      true,
		{StatusPaid, StatusCancelled}:      true,
		{StatusPreparing, StatusReady}:     true,
		{StatusPreparing, StatusCancelled}: true,
		{StatusReady, StatusDone}:          true,
		{StatusReady, StatusCancelled}:     true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := CanTransition(from, to)
			assert.Equal(t, allowed[[2]string{from, to}], got, "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExit(t *testing.T) {
	for _, terminal := range []string{StatusDone, StatusCancelled} {
		for _, to := range []string{StatusUnpaid, StatusPaid, StatusPreparing, StatusReady, StatusDone, StatusCancelled} {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestTransitionOrderHappyPath(t *testing.T) {
	db := setupOrderStatusDB(t)
	order := seedOrder(db, StatusUnpaid)

	for _, next := range []string{StatusPaid, StatusPreparing, StatusReady, StatusDone} {
		updated, err := TransitionOrder(db, order.ID, next)
		assert.NoError(t, err)
		assert.Equal(t, next, updated.Status)

		var stored models.Order
		db.First(&stored, order.ID)
		assert.Equal(t, next, stored.Status)
	}
}

func TestTransitionOrderRefreshesUpdatedAt(t *testing.T) {
	db := setupOrderStatusDB(t)
	order := seedOrder(db, StatusUnpaid)

	time.Sleep(20 * time.Millisecond)

	updated, err := TransitionOrder(db, order.ID, StatusPaid)
	assert.NoError(t, err)

	// Order yang dikembalikan membawa timestamp hasil update, bukan
	// timestamp saat dibuat
	assert.True(t, updated.UpdatedAt.After(order.UpdatedAt),
		"UpdatedAt %v should be after %v", updated.UpdatedAt, order.UpdatedAt)
}

func TestTransitionOrderRejectsNonAdjacent(t *testing.T) {
	db := setupOrderStatusDB(t)
	order := seedOrder(db, StatusUnpaid)

	// Lompat langsung ke SIAP_DIAMBIL tidak ada di tabel adjacency
	_, err := TransitionOrder(db, order.ID, StatusReady)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Status tersimpan tidak berubah
	var stored models.Order
	db.First(&stored, order.ID)
	assert.Equal(t, StatusUnpaid, stored.Status)
}

func TestTransitionOrderRejectsUnknownStatus(t *testing.T) {
	db := setupOrderStatusDB(t)
	order := seedOrder(db, StatusUnpaid)

	_, err := TransitionOrder(db, order.ID, "TERKIRIM")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var stored models.Order
	db.First(&stored, order.ID)
	assert.Equal(t, StatusUnpaid, stored.Status)
}

func TestTransitionOrderCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []string{StatusUnpaid, StatusPaid, StatusPreparing, StatusReady} {
		db := setupOrderStatusDB(t)
		order := seedOrder(db, from)

		updated, err := TransitionOrder(db, order.ID, StatusCancelled)
		assert.NoError(t, err, "cancel from %s", from)
		assert.Equal(t, StatusCancelled, updated.Status)
	}
}

func TestTransitionOrderTerminalStaysPut(t *testing.T) {
	for _, terminal := range []string{StatusDone, StatusCancelled} {
		db := setupOrderStatusDB(t)
		order := seedOrder(db, terminal)

		_, err := TransitionOrder(db, order.ID, StatusPaid)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		var stored models.Order
		db.First(&stored, order.ID)
		assert.Equal(t, terminal, stored.Status)
	}
}
