package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/warungku/warung-app/models"
	"github.com/warungku/warung-app/utils"
)

// FailureKind mengelompokkan kegagalan submit order.
type FailureKind string

const (
	// Kind validasi: pembeli bisa memperbaiki sendiri.
	FailureEmptyCart      FailureKind = "EMPTY_CART"
	FailureInvalidPayment FailureKind = "INVALID_PAYMENT"
	FailureBelowMinimum   FailureKind = "BELOW_MINIMUM"
	// Kind infrastruktur: bukan salah input pembeli, tawarkan coba lagi.
	FailurePartialPersistence FailureKind = "PARTIAL_PERSISTENCE"
	FailureInternal           FailureKind = "INTERNAL"
)

// CheckoutError adalah kegagalan terstruktur dari Submit. Kind validasi
// membawa pesan yang siap ditampilkan ke pembeli; kind infrastruktur membawa
// pesan generik (detailnya hanya di log).
type CheckoutError struct {
	Kind    FailureKind
	Message string
}

func (e *CheckoutError) Error() string { return e.Message }

func checkoutFailure(kind FailureKind, message string) *CheckoutError {
	return &CheckoutError{Kind: kind, Message: message}
}

// CartItem adalah satu baris cart milik sesi browsing. Name dan Price adalah
// snapshot yang ikut tersimpan di order item.
type CartItem struct {
	MenuID   uint   `json:"menu_id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// CustomerInfo adalah data pemesan yang diisi di form checkout.
type CustomerInfo struct {
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	PickupDate time.Time `json:"pickup_date"`
	Notes      string    `json:"notes"`
}

const (
	persistTimeout = 10 * time.Second
	notifyTimeout  = 5 * time.Second
)

// CheckoutService mengoordinasikan submit order: validasi, harga, persistensi
// atomik, lalu notifikasi best-effort setelah commit.
type CheckoutService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewCheckoutService(db *gorm.DB, notifier Notifier) *CheckoutService {
	return &CheckoutService{DB: db, Notifier: notifier}
}

// Submit menjalankan pipeline pembuatan order secara berurutan; tiap langkah
// menghentikan pipeline saat gagal.
//
// idempotencyKey opsional: jika diisi dan order dengan key yang sama sudah ada
// untuk tenant ini, order lama dikembalikan tanpa membuat baris baru
// (menangkal double-submit dari jaringan lambat).
func (s *CheckoutService) Submit(ctx context.Context, tenantID uint, cart []CartItem, info CustomerInfo, paymentMethod string, idempotencyKey string) (*models.Order, error) {
	// 1. Cart kosong tidak pernah sampai ke database.
	if len(cart) == 0 {
		return nil, checkoutFailure(FailureEmptyCart, "Keranjang masih kosong")
	}

	if idempotencyKey != "" {
		if existing, err := s.findByIdempotencyKey(tenantID, idempotencyKey); err == nil && existing != nil {
			return existing, nil
		}
	}

	// 2. Validasi metode pembayaran terhadap daftar aktif tenant, dibaca
	// segar (admin bisa mematikan metode kapan saja).
	methods, err := AvailableMethods(s.DB.WithContext(ctx), tenantID)
	if err != nil {
		// Gagal baca = infrastruktur, bukan pilihan pembeli yang salah.
		utils.ErrorLogger.Printf("checkout: failed to load payment methods for tenant %d: %v", tenantID, err)
		return nil, checkoutFailure(FailureInternal, "Gagal memuat metode pembayaran, coba lagi")
	}
	if err := ValidateSelection(paymentMethod, methods); err != nil {
		return nil, checkoutFailure(FailureInvalidPayment, err.Error())
	}

	// 3. Hitung ulang harga dari konfigurasi tenant saat ini, bukan snapshot
	// yang diambil saat halaman dimuat.
	setting, err := s.currentPricing(ctx, tenantID)
	if err != nil {
		utils.ErrorLogger.Printf("checkout: failed to load pricing setting for tenant %d: %v", tenantID, err)
		return nil, checkoutFailure(FailureInternal, "Gagal memuat aturan harga, coba lagi")
	}

	subtotal := cartSubtotal(cart)
	if ok, msg := MeetsMinimum(subtotal, setting); !ok {
		return nil, checkoutFailure(FailureBelowMinimum, msg)
	}
	breakdown := CalculatePricing(subtotal, setting)

	// 4. Kode order dari prefix brand tenant + tanggal + suffix acak.
	var tenant models.Tenant
	if err := s.DB.WithContext(ctx).First(&tenant, tenantID).Error; err != nil {
		utils.ErrorLogger.Printf("checkout: tenant %d not found: %v", tenantID, err)
		return nil, checkoutFailure(FailureInternal, "Terjadi kesalahan, coba lagi")
	}
	code, err := utils.GenerateOrderCode(tenant.BrandPrefix, time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("checkout: failed to generate order code: %v", err)
		return nil, checkoutFailure(FailureInternal, "Terjadi kesalahan, coba lagi")
	}

	order := &models.Order{
		Code:          code,
		TenantID:      tenantID,
		CustomerName:  info.Name,
		CustomerPhone: info.Phone,
		PickupDate:    info.PickupDate,
		Subtotal:      breakdown.Subtotal,
		Discount:      breakdown.Discount,
		DeliveryFee:   breakdown.DeliveryFee,
		Total:         breakdown.Total,
		PaymentMethod: paymentMethod,
		Status:        StatusUnpaid,
		Notes:         info.Notes,
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	// 5. Order dan semua item-nya durable sebagai satu unit, atau tidak sama
	// sekali.
	if err := s.persist(ctx, order, cart); err != nil {
		utils.ErrorLogger.Printf("checkout: failed to persist order %s: %v", code, err)
		return nil, checkoutFailure(FailurePartialPersistence, "Pesanan gagal disimpan, silakan coba lagi")
	}

	// 6. Order sudah nyata. Dari titik ini kegagalan apapun tidak boleh
	// membatalkan sukses; pembersihan cart jadi tanggung jawab pemanggil.

	// 7. Notifikasi staff best-effort setelah commit. Channel pihak ketiga
	// mati bukan alasan checkout gagal.
	s.dispatchNotification(order)

	return order, nil
}

func (s *CheckoutService) persist(ctx context.Context, order *models.Order, cart []CartItem) error {
	persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	return s.DB.WithContext(persistCtx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cart))
		for _, line := range cart {
			items = append(items, models.OrderItem{
				OrderID:  order.ID,
				MenuID:   line.MenuID,
				Name:     line.Name,
				Price:    line.Price,
				Quantity: line.Quantity,
				Notes:    line.Notes,
				Subtotal: line.Price * int64(line.Quantity),
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		order.Items = items
		return nil
	})
}

func (s *CheckoutService) dispatchNotification(order *models.Order) {
	if s.Notifier == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				utils.ErrorLogger.Printf("checkout: notification panic for order %s: %v", order.Code, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.Notifier.NotifyOrderCreated(ctx, order); err != nil {
			utils.ErrorLogger.Printf("checkout: failed to notify staff for order %s: %v", order.Code, err)
		}
	}()
}

func (s *CheckoutService) currentPricing(ctx context.Context, tenantID uint) (models.PricingSetting, error) {
	var setting models.PricingSetting
	err := s.DB.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Tenant tanpa setting berarti tanpa minimum dan tanpa ongkir.
		return models.PricingSetting{TenantID: tenantID}, nil
	}
	return setting, err
}

func (s *CheckoutService) findByIdempotencyKey(tenantID uint, key string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items").
		Where("tenant_id = ? AND idempotency_key = ?", tenantID, key).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func cartSubtotal(cart []CartItem) int64 {
	var subtotal int64
	for _, line := range cart {
		subtotal += line.Price * int64(line.Quantity)
	}
	return subtotal
}

// ValidateCart memeriksa bentuk cart sebelum masuk pipeline: qty minimal 1 dan
// harga tidak negatif.
func ValidateCart(cart []CartItem) error {
	for _, line := range cart {
		if line.Quantity < 1 {
			return fmt.Errorf("jumlah item %q minimal 1", line.Name)
		}
		if line.Price < 0 {
			return fmt.Errorf("harga item %q tidak valid", line.Name)
		}
	}
	return nil
}
