package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
)

// OrderModel is the GORM model for the orders table.
type OrderModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber    string          `gorm:"uniqueIndex;not null;size:20"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_user_idempotency,where:idempotency_key IS NOT NULL"`
	StoreID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookingType    string          `gorm:"not null;size:10"`
	Plan           string          `gorm:"not null;size:10"`
	Luggage        json.RawMessage `gorm:"type:jsonb;not null"`
	TotalBags      int             `gorm:"not null"`
	Duration       int             `gorm:"not null"`
	Price          float64         `gorm:"type:numeric(12,2);not null"`
	PickupCharge   float64         `gorm:"type:numeric(12,2);not null;default:0"`
	Discount       float64         `gorm:"type:numeric(12,2);not null;default:0"`
	TotalAmount    float64         `gorm:"type:numeric(12,2);not null"`
	Currency       string          `gorm:"not null;size:3;default:'INR'"`
	Status         string          `gorm:"not null;size:20;index"`
	PickupDate     time.Time       `gorm:"not null"`
	PickupTime     string          `gorm:"not null;size:10"`
	ReturnDate     time.Time       `gorm:"not null"`
	ReturnTime     string          `gorm:"not null;size:10"`
	PickupAddress  json.RawMessage `gorm:"type:jsonb"`
	Customer       json.RawMessage `gorm:"type:jsonb;not null"`
	ReceiveUpdates bool            `gorm:"not null;default:false"`
	PaymentMethod  string          `gorm:"size:30"`
	PaymentStatus  string          `gorm:"not null;size:20;default:'pending'"`
	TransactionID  string          `gorm:"size:100"`
	PaymentDate    *time.Time      `gorm:""`
	IdempotencyKey *string         `gorm:"size:100;uniqueIndex:idx_orders_user_idempotency,where:idempotency_key IS NOT NULL"`
	CancelledAt    *time.Time      `gorm:""`
	Version        int64           `gorm:"not null;default:1"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (OrderModel) TableName() string {
	return "orders"
}

// GormOrderRepository is the GORM-based implementation of OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID retrieves an order by its unique identifier.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	var model OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Order", id.String())
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return toDomainOrder(&model)
}

// FindByIdempotencyKey retrieves the order a user created with key.
func (r *GormOrderRepository) FindByIdempotencyKey(ctx context.Context, userID uuid.UUID, key string) (*orderDomain.Order, error) {
	var model OrderModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Order", key)
		}
		return nil, fmt.Errorf("failed to find order by idempotency key: %w", err)
	}
	return toDomainOrder(&model)
}

// FindByUserID retrieves a user's orders with pagination.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*orderDomain.Order, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), page, limit)
}

// FindByStoreID retrieves a store's orders with pagination.
func (r *GormOrderRepository) FindByStoreID(ctx context.Context, storeID uuid.UUID, page, limit int) ([]*orderDomain.Order, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Where("store_id = ?", storeID), page, limit)
}

// ListAll retrieves all orders with pagination (admin).
func (r *GormOrderRepository) ListAll(ctx context.Context, page, limit int) ([]*orderDomain.Order, int64, error) {
	return r.findPage(ctx, r.db.WithContext(ctx), page, limit)
}

func (r *GormOrderRepository) findPage(ctx context.Context, scope *gorm.DB, page, limit int) ([]*orderDomain.Order, int64, error) {
	var total int64
	if err := scope.Session(&gorm.Session{}).Model(&OrderModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var models []OrderModel
	offset := (page - 1) * limit
	if err := scope.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*orderDomain.Order, len(models))
	for i := range models {
		o, err := toDomainOrder(&models[i])
		if err != nil {
			return nil, 0, err
		}
		orders[i] = o
	}
	return orders, total, nil
}

// CountByStatus returns order counts grouped by status (admin).
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&OrderModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CreateWithReservation inserts a new order and takes its bags from the
// store in one transaction.
func (r *GormOrderRepository) CreateWithReservation(ctx context.Context, o *orderDomain.Order) error {
	model, err := toOrderModel(o)
	if err != nil {
		return fmt.Errorf("failed to convert order to model: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.NewConflictError("order already exists")
			}
			return fmt.Errorf("failed to save order: %w", err)
		}
		return adjustCapacity(tx, o.StoreID(), o.HeldCapacity())
	})
}

// UpdateWithCapacity persists changes to an existing order with optimistic
// locking and applies capacityDelta to its store in the same transaction.
func (r *GormOrderRepository) UpdateWithCapacity(ctx context.Context, o *orderDomain.Order, capacityDelta int) error {
	model, err := toOrderModel(o)
	if err != nil {
		return fmt.Errorf("failed to convert order to model: %w", err)
	}

	// Optimistic locking: only update if the version matches (current version - 1 since IncrementVersion was called)
	expectedVersion := o.Version() - 1

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderModel{}).
			Where("id = ? AND version = ?", model.ID, expectedVersion).
			Updates(map[string]interface{}{
				"luggage":         model.Luggage,
				"total_bags":      model.TotalBags,
				"duration":        model.Duration,
				"price":           model.Price,
				"discount":        model.Discount,
				"total_amount":    model.TotalAmount,
				"status":          model.Status,
				"pickup_date":     model.PickupDate,
				"pickup_time":     model.PickupTime,
				"return_date":     model.ReturnDate,
				"return_time":     model.ReturnTime,
				"payment_method":  model.PaymentMethod,
				"payment_status":  model.PaymentStatus,
				"transaction_id":  model.TransactionID,
				"payment_date":    model.PaymentDate,
				"cancelled_at":    model.CancelledAt,
				"version":         model.Version,
				"updated_at":      model.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewConflictError("order was modified by another transaction")
		}
		return adjustCapacity(tx, o.StoreID(), capacityDelta)
	})
}

// --- Conversion Helpers ---

func toOrderModel(o *orderDomain.Order) (*OrderModel, error) {
	luggageJSON, err := json.Marshal(o.Luggage())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal luggage: %w", err)
	}

	customerJSON, err := json.Marshal(o.Customer())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer: %w", err)
	}

	var addressJSON json.RawMessage
	if o.PickupAddress() != nil {
		data, err := json.Marshal(o.PickupAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal pickup address: %w", err)
		}
		addressJSON = data
	}

	var idempotencyKey *string
	if k := o.IdempotencyKey(); k != "" {
		idempotencyKey = &k
	}

	payment := o.Payment()
	return &OrderModel{
		ID:             o.ID(),
		OrderNumber:    o.OrderNumber(),
		UserID:         o.UserID(),
		StoreID:        o.StoreID(),
		BookingType:    string(o.BookingType()),
		Plan:           string(o.Plan()),
		Luggage:        luggageJSON,
		TotalBags:      o.Luggage().Count(),
		Duration:       o.Duration(),
		Price:          o.Price(),
		PickupCharge:   o.PickupCharge(),
		Discount:       o.Discount(),
		TotalAmount:    o.TotalAmount(),
		Currency:       o.Currency(),
		Status:         string(o.Status()),
		PickupDate:     o.PickupDate(),
		PickupTime:     o.PickupTime(),
		ReturnDate:     o.ReturnDate(),
		ReturnTime:     o.ReturnTime(),
		PickupAddress:  addressJSON,
		Customer:       customerJSON,
		ReceiveUpdates: o.ReceiveUpdates(),
		PaymentMethod:  payment.Method,
		PaymentStatus:  string(payment.Status),
		TransactionID:  payment.TransactionID,
		PaymentDate:    payment.PaidAt,
		IdempotencyKey: idempotencyKey,
		CancelledAt:    o.CancelledAt(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}, nil
}

func toDomainOrder(m *OrderModel) (*orderDomain.Order, error) {
	var luggage orderDomain.Luggage
	if err := json.Unmarshal(m.Luggage, &luggage); err != nil {
		return nil, fmt.Errorf("failed to unmarshal luggage: %w", err)
	}

	var customer dto.CustomerDTO
	if err := json.Unmarshal(m.Customer, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer: %w", err)
	}

	var pickupAddress *dto.AddressDTO
	if len(m.PickupAddress) > 0 && string(m.PickupAddress) != "null" {
		var addr dto.AddressDTO
		if err := json.Unmarshal(m.PickupAddress, &addr); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pickup address: %w", err)
		}
		pickupAddress = &addr
	}

	status, err := orderDomain.ParseOrderStatus(m.Status)
	if err != nil {
		return nil, err
	}

	var idempotencyKey string
	if m.IdempotencyKey != nil {
		idempotencyKey = *m.IdempotencyKey
	}

	return orderDomain.ReconstructOrder(orderDomain.ReconstructParams{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		UserID:         m.UserID,
		StoreID:        m.StoreID,
		BookingType:    orderDomain.BookingType(m.BookingType),
		Plan:           orderDomain.Plan(m.Plan),
		Luggage:        luggage,
		Duration:       m.Duration,
		Price:          m.Price,
		PickupCharge:   m.PickupCharge,
		Discount:       m.Discount,
		TotalAmount:    m.TotalAmount,
		Currency:       m.Currency,
		Status:         status,
		PickupDate:     m.PickupDate,
		PickupTime:     m.PickupTime,
		ReturnDate:     m.ReturnDate,
		ReturnTime:     m.ReturnTime,
		PickupAddress:  pickupAddress,
		Customer:       customer,
		ReceiveUpdates: m.ReceiveUpdates,
		Payment: orderDomain.Payment{
			Method:        m.PaymentMethod,
			Status:        orderDomain.PaymentStatus(m.PaymentStatus),
			TransactionID: m.TransactionID,
			PaidAt:        m.PaymentDate,
		},
		IdempotencyKey: idempotencyKey,
		CancelledAt:    m.CancelledAt,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}), nil
}
