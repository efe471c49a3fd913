//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stashly-Luggage/service-storage/internal/application"
	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	photoDomain "github.com/Stashly-Luggage/service-storage/internal/domain/photo"
	"github.com/Stashly-Luggage/service-storage/internal/repository"
	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
	"github.com/Stashly-Luggage/service-storage/pkg/events"
)

func orderRequest(storeID uuid.UUID, bags int) application.CreateOrderRequest {
	total := float64(bags*200 + 50)
	pickup := time.Now().UTC().AddDate(0, 0, 2)
	return application.CreateOrderRequest{
		StoreID:      storeID.String(),
		BookingType:  "self",
		Plan:         "daily",
		Luggage:      &orderDomain.Luggage{TotalBags: bags},
		PickupDate:   pickup.Format(time.DateOnly),
		PickupTime:   "10:00 AM",
		ReturnDate:   pickup.AddDate(0, 0, 2).Format(time.DateOnly),
		ReturnTime:   "11:00 AM",
		TotalAmount:  &total,
		CustomerInfo: dto.CustomerDTO{FirstName: "Ravi", Email: "ravi@example.com", PhoneNumber: "9876543210"},
	}
}

func customer() application.Caller {
	return application.Caller{UserID: uuid.New(), Email: "ravi@example.com", Role: auth.RoleUser}
}

// TestConcurrentOrders_NeverOversell fires more reservations than the store
// can hold and checks the row-level decrement admits exactly what fits.
func TestConcurrentOrders_NeverOversell(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStorageStack(t, db, nil)
	st := seedStore(t, stack.Stores, 10)

	const attempts = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := stack.Orders.CreateOrder(context.Background(), customer(), "", orderRequest(st.ID(), 2))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.True(t, domain.IsCode(err, domain.ErrCodeInsufficientCapacity), "unexpected error: %v", err)
				rejected++
				return
			}
			accepted++
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	assert.Equal(t, attempts-5, rejected)
	assert.Equal(t, 0, storeCapacity(t, db, st.ID()))
}

func TestIdempotentCreate_ReturnsSameOrder(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStorageStack(t, db, nil)
	st := seedStore(t, stack.Stores, 10)
	caller := customer()
	key := uuid.NewString()

	first, err := stack.Orders.CreateOrder(context.Background(), caller, key, orderRequest(st.ID(), 3))
	require.NoError(t, err)
	second, err := stack.Orders.CreateOrder(context.Background(), caller, key, orderRequest(st.ID(), 3))
	require.NoError(t, err)

	assert.False(t, first.Replayed)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, 7, storeCapacity(t, db, st.ID()), "a replay must not reserve twice")
}

func TestCancelOrder_ReleasesCapacity(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStorageStack(t, db, nil)
	st := seedStore(t, stack.Stores, 4)
	caller := customer()

	res, err := stack.Orders.CreateOrder(context.Background(), caller, "", orderRequest(st.ID(), 3))
	require.NoError(t, err)
	assert.Equal(t, 1, storeCapacity(t, db, st.ID()))

	_, err = stack.Orders.CancelOrder(context.Background(), caller, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, storeCapacity(t, db, st.ID()))
}

// TestPaymentCaptured_ConfirmsOrder verifies that a payment.captured event on
// payment.events confirms the order and is echoed on order.events.
func TestPaymentCaptured_ConfirmsOrder(t *testing.T) {
	db := setupPostgres(t)
	brokers := setupKafka(t)

	stack := setupStorageStack(t, db, brokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	st := seedStore(t, stack.Stores, 5)
	res, err := stack.Orders.CreateOrder(context.Background(), customer(), "", orderRequest(st.ID(), 1))
	require.NoError(t, err)
	orderID := res.Order.ID

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := events.PaymentCapturedEvent{
		PaymentID:     uuid.New(),
		OrderID:       orderID,
		Method:        "upi",
		TransactionID: "pay_" + uuid.NewString()[:8],
		Amount:        250,
		Currency:      domain.CurrencyINR,
		PaidAt:        time.Now().UTC(),
		OccurredAt:    time.Now().UTC(),
	}
	publishTestEvent(t, brokers, events.TopicPaymentEvents,
		"service-payment", events.PaymentCaptured, orderID.String(), evt)

	model := waitForOrderStatus(t, db, orderID, "confirmed", 15*time.Second)
	assert.Equal(t, "completed", model.PaymentStatus)
	assert.Equal(t, evt.TransactionID, model.TransactionID)

	ce := consumeOneEvent(t, brokers, events.TopicOrderEvents,
		events.OrderPaymentRecorded, 15*time.Second)

	var recorded events.OrderPaymentRecordedEvent
	require.NoError(t, ce.ParseData(&recorded))
	assert.Equal(t, orderID, recorded.OrderID)
	assert.Equal(t, "completed", recorded.PaymentStatus)
}

func TestPhotoRepository_SaveAndList(t *testing.T) {
	db := setupPostgres(t)
	stack := setupStorageStack(t, db, nil)
	st := seedStore(t, stack.Stores, 5)
	caller := customer()

	res, err := stack.Orders.CreateOrder(context.Background(), caller, "", orderRequest(st.ID(), 1))
	require.NoError(t, err)

	photos := repository.NewGormPhotoRepository(db)
	checkIn, err := photoDomain.NewLuggagePhoto(res.Order.ID, st.OwnerID(), photoDomain.PhotoTypeCheckIn, "https://cdn.example.com/in.jpg", "front desk")
	require.NoError(t, err)
	require.NoError(t, photos.Save(context.Background(), checkIn))

	got, err := photos.FindByOrderID(context.Background(), res.Order.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, checkIn.ID(), got[0].ID())
	assert.Equal(t, photoDomain.PhotoTypeCheckIn, got[0].PhotoType())

	orphan, err := photoDomain.NewLuggagePhoto(uuid.New(), st.OwnerID(), photoDomain.PhotoTypeCheckOut, "https://cdn.example.com/out.jpg", "")
	require.NoError(t, err)
	err = photos.Save(context.Background(), orphan)
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound), "unexpected error: %v", err)
}
