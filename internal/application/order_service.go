package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	"github.com/Stashly-Luggage/service-storage/internal/domain/schedule"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	"github.com/Stashly-Luggage/service-storage/internal/notification"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/dto"
	"github.com/Stashly-Luggage/service-storage/pkg/events"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
	"github.com/Stashly-Luggage/service-storage/pkg/metrics"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	StoreID      string               `json:"storeId"`
	BookingType  string               `json:"bookingType"`
	Plan         string               `json:"plan"`
	SelectedPlan string               `json:"selectedPlan"`
	Luggage      *orderDomain.Luggage `json:"luggage"`
	PickupDate   string               `json:"pickupDate"`
	PickupTime   string               `json:"pickupTime"`
	ReturnDate   string               `json:"returnDate"`
	ReturnTime   string               `json:"returnTime"`
	TotalAmount  *float64             `json:"totalAmount"`
	Discount     float64              `json:"discount"`
	// Address is the doorstep pickup address; required for pickup bookings.
	Address        *dto.AddressDTO `json:"address"`
	CustomerInfo   dto.CustomerDTO `json:"customerInfo"`
	ReceiveUpdates bool            `json:"receiveUpdates"`
	PaymentMethod  string          `json:"paymentMethod"`
}

// missingFields lists the required fields absent from the request.
func (r CreateOrderRequest) missingFields() []string {
	var missing []string
	if r.StoreID == "" {
		missing = append(missing, "storeId")
	}
	if r.Luggage == nil {
		missing = append(missing, "luggage")
	}
	if r.PickupDate == "" {
		missing = append(missing, "pickupDate")
	}
	if r.PickupTime == "" {
		missing = append(missing, "pickupTime")
	}
	if r.ReturnDate == "" {
		missing = append(missing, "returnDate")
	}
	if r.ReturnTime == "" {
		missing = append(missing, "returnTime")
	}
	if r.TotalAmount == nil {
		missing = append(missing, "totalAmount")
	}
	return missing
}

// EditOrderRequest is an admin patch. Absent fields are left unchanged;
// present fields are applied even when zero.
type EditOrderRequest struct {
	Luggage       *orderDomain.Luggage `json:"luggage"`
	Duration      *int                 `json:"duration"`
	Price         *float64             `json:"price"`
	Status        *string              `json:"status"`
	PickupDate    *string              `json:"pickupDate"`
	PickupTime    *string              `json:"pickupTime"`
	ReturnDate    *string              `json:"returnDate"`
	ReturnTime    *string              `json:"returnTime"`
	PaymentMethod *string              `json:"paymentMethod"`
	PaymentStatus *string              `json:"paymentStatus"`
	TransactionID *string              `json:"transactionId"`
	PaymentDate   *string              `json:"paymentDate"`
	Discount      *float64             `json:"discount"`
	TotalAmount   *float64             `json:"totalAmount"`
}

func (r EditOrderRequest) toPatch() (orderDomain.Patch, error) {
	p := orderDomain.Patch{
		Luggage:       r.Luggage,
		Duration:      r.Duration,
		Price:         r.Price,
		PickupTime:    r.PickupTime,
		ReturnTime:    r.ReturnTime,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		Discount:      r.Discount,
		TotalAmount:   r.TotalAmount,
	}
	if r.Status != nil {
		status, err := orderDomain.ParseOrderStatus(*r.Status)
		if err != nil {
			return p, domain.NewValidationError(err.Error())
		}
		p.Status = &status
	}
	if r.PaymentStatus != nil {
		ps := orderDomain.PaymentStatus(*r.PaymentStatus)
		p.PaymentStatus = &ps
	}
	for _, f := range []struct {
		name string
		in   *string
		out  **time.Time
	}{
		{"pickupDate", r.PickupDate, &p.PickupDate},
		{"returnDate", r.ReturnDate, &p.ReturnDate},
		{"paymentDate", r.PaymentDate, &p.PaymentDate},
	} {
		if f.in == nil {
			continue
		}
		t, err := schedule.ParseDate(*f.in)
		if err != nil {
			return p, domain.NewValidationError(fmt.Sprintf("invalid %s", f.name))
		}
		*f.out = &t
	}
	return p, nil
}

// OrderDTO is the response representation of an order.
type OrderDTO struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"orderNumber"`
	UserID         uuid.UUID           `json:"userId"`
	StoreID        uuid.UUID           `json:"storeId"`
	BookingType    string              `json:"bookingType"`
	Plan           string              `json:"plan"`
	Luggage        orderDomain.Luggage `json:"luggage"`
	Duration       int                 `json:"duration"`
	Price          float64             `json:"price"`
	PickupCharge   float64             `json:"pickupCharge"`
	Discount       float64             `json:"discount"`
	TotalAmount    float64             `json:"totalAmount"`
	Currency       string              `json:"currency"`
	Status         string              `json:"status"`
	PickupDate     time.Time           `json:"pickupDate"`
	PickupTime     string              `json:"pickupTime"`
	ReturnDate     time.Time           `json:"returnDate"`
	ReturnTime     string              `json:"returnTime"`
	Address        *dto.AddressDTO     `json:"address,omitempty"`
	CustomerInfo   dto.CustomerDTO     `json:"customerInfo"`
	ReceiveUpdates bool                `json:"receiveUpdates"`
	PaymentMethod  string              `json:"paymentMethod,omitempty"`
	PaymentStatus  string              `json:"paymentStatus"`
	TransactionID  string              `json:"transactionId,omitempty"`
	PaymentDate    *time.Time          `json:"paymentDate,omitempty"`
	CancelledAt    *time.Time          `json:"cancelledAt,omitempty"`
	Version        int64               `json:"version"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// OrderStatsDTO holds aggregate order statistics.
type OrderStatsDTO struct {
	TotalOrders int64            `json:"totalOrders"`
	ByStatus    map[string]int64 `json:"byStatus"`
}

// CreateOrderResult is the outcome of CreateOrder.
type CreateOrderResult struct {
	Order *OrderDTO
	// Replayed is true when an earlier order with the same idempotency key was returned.
	Replayed bool
}

// OrderNotifier sends customer emails about orders.
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, c notification.OrderConfirmation) error
}

// OrderService is the application service orchestrating order use cases.
type OrderService struct {
	orders    orderDomain.OrderRepository
	stores    storeDomain.StoreRepository
	pricing   *PricingService
	validator *schedule.Validator
	notifier  OrderNotifier
	events    eventPublisher
	inflight  singleflight.Group
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orders orderDomain.OrderRepository,
	stores storeDomain.StoreRepository,
	pricing *PricingService,
	notifier OrderNotifier,
	producer kafka.Publisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		stores:    stores,
		pricing:   pricing,
		validator: schedule.NewValidator(),
		notifier:  notifier,
		events:    eventPublisher{producer: producer, logger: logger},
		logger:    logger,
	}
}

// MaxIdempotencyKeyLength is the longest idempotency key an order can carry.
const MaxIdempotencyKeyLength = 100

// CreateOrder books storage for the caller. With a non-empty idempotency
// key, a repeated request returns the order created by the first one.
func (s *OrderService) CreateOrder(ctx context.Context, caller Caller, idempotencyKey string, req CreateOrderRequest) (*CreateOrderResult, error) {
	if len(idempotencyKey) > MaxIdempotencyKeyLength {
		return nil, domain.NewValidationError(fmt.Sprintf("idempotency key must be at most %d characters", MaxIdempotencyKeyLength))
	}
	if idempotencyKey == "" {
		o, err := s.createOrder(ctx, caller, "", req)
		if err != nil {
			return nil, err
		}
		return &CreateOrderResult{Order: o}, nil
	}

	v, err, _ := s.inflight.Do(caller.UserID.String()+"/"+idempotencyKey, func() (interface{}, error) {
		if existing, err := s.findReplay(ctx, caller.UserID, idempotencyKey); existing != nil || err != nil {
			return existing, err
		}
		o, err := s.createOrder(ctx, caller, idempotencyKey, req)
		if domain.IsCode(err, domain.ErrCodeConflict) {
			// Another instance won the race on the unique key.
			return s.findReplay(ctx, caller.UserID, idempotencyKey)
		}
		if err != nil {
			return nil, err
		}
		return &CreateOrderResult{Order: o}, nil
	})
	if err != nil {
		return nil, err
	}
	result, _ := v.(*CreateOrderResult)
	if result == nil {
		return nil, domain.NewConflictError("order already exists")
	}
	return result, nil
}

func (s *OrderService) findReplay(ctx context.Context, userID uuid.UUID, key string) (*CreateOrderResult, error) {
	existing, err := s.orders.FindByIdempotencyKey(ctx, userID, key)
	if domain.IsCode(err, domain.ErrCodeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	metrics.IdempotentReplaysTotal.Inc()
	result := toOrderDTO(existing)
	return &CreateOrderResult{Order: &result, Replayed: true}, nil
}

func (s *OrderService) createOrder(ctx context.Context, caller Caller, idempotencyKey string, req CreateOrderRequest) (*OrderDTO, error) {
	if missing := req.missingFields(); len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}

	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		return nil, domain.NewValidationError("invalid storeId")
	}
	bookingType := orderDomain.BookingType(defaultString(req.BookingType, string(orderDomain.BookingSelf)))
	plan := orderDomain.Plan(defaultString(req.Plan, defaultString(req.SelectedPlan, string(orderDomain.PlanDaily))))
	if !bookingType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid booking type: %s", bookingType))
	}
	if !plan.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid plan: %s", plan))
	}
	luggage := *req.Luggage
	if err := luggage.Validate(bookingType, plan); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	pickupDate, err := schedule.ParseDate(req.PickupDate)
	if err != nil {
		return nil, domain.NewValidationError("invalid pickupDate")
	}
	returnDate, err := schedule.ParseDate(req.ReturnDate)
	if err != nil {
		return nil, domain.NewValidationError("invalid returnDate")
	}
	if err := s.validator.Validate(pickupDate, returnDate); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	days, err := schedule.DurationDays(&pickupDate, &returnDate)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	if bookingType == orderDomain.BookingPickup && (req.Address == nil || req.Address.Address == "") {
		return nil, domain.NewValidationError("pickup address is required for pickup bookings")
	}

	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !st.Details().IsOpen {
		return nil, domain.NewValidationError("Store is not accepting bookings")
	}
	if !st.CanAccommodate(luggage.Count()) {
		metrics.CapacityRejectionsTotal.Inc()
		return nil, domain.NewInsufficientCapacityError(storeDomain.InsufficientCapacityMessage)
	}

	var charge int64
	if bookingType == orderDomain.BookingPickup {
		if _, charge, err = s.pricing.PickupCharge(ctx, st, req.Address.Coordinates); err != nil {
			return nil, err
		}
	}
	quote, err := s.pricing.Calculate(orderDomain.PricingParams{
		Plan:         plan,
		BookingType:  bookingType,
		NumberOfBags: luggage.Count(),
		BagSizes:     luggage.Sizes(),
		Days:         days,
		PickupCharge: charge,
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	customer := req.CustomerInfo
	if customer.Email == "" {
		customer.Email = caller.Email
	}

	o, err := orderDomain.NewOrder(orderDomain.NewOrderParams{
		UserID:         caller.UserID,
		StoreID:        storeID,
		BookingType:    bookingType,
		Plan:           plan,
		Luggage:        luggage,
		Duration:       days,
		Quote:          quote,
		TotalAmount:    *req.TotalAmount,
		Discount:       req.Discount,
		PickupDate:     pickupDate,
		PickupTime:     req.PickupTime,
		ReturnDate:     returnDate,
		ReturnTime:     req.ReturnTime,
		PickupAddress:  req.Address,
		Customer:       customer,
		ReceiveUpdates: req.ReceiveUpdates,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.CreateWithReservation(ctx, o); err != nil {
		if domain.IsCode(err, domain.ErrCodeInsufficientCapacity) {
			metrics.CapacityRejectionsTotal.Inc()
		}
		return nil, err
	}
	metrics.OrdersCreatedTotal.Inc()

	s.logger.Info("order created",
		zap.String("order_id", o.ID().String()),
		zap.String("order_number", o.OrderNumber()),
		zap.String("store_id", storeID.String()),
		zap.Int("bags", luggage.Count()),
	)

	s.events.publish(ctx, events.TopicOrderEvents, events.OrderCreated, o.ID().String(), events.OrderCreatedEvent{
		OrderID:       o.ID(),
		OrderNumber:   o.OrderNumber(),
		UserID:        o.UserID(),
		StoreID:       o.StoreID(),
		BookingType:   string(o.BookingType()),
		Plan:          string(o.Plan()),
		TotalBags:     o.Luggage().Count(),
		Duration:      o.Duration(),
		QuotedPrice:   o.Price(),
		TotalAmount:   o.TotalAmount(),
		Currency:      o.Currency(),
		PickupDate:    o.PickupDate(),
		ReturnDate:    o.ReturnDate(),
		CustomerEmail: o.Customer().Email,
		OccurredAt:    time.Now().UTC(),
	})
	s.sendConfirmation(ctx, o, st)

	result := toOrderDTO(o)
	return &result, nil
}

// GetOrderDetails returns an order to its owner or an admin.
func (s *OrderService) GetOrderDetails(ctx context.Context, caller Caller, orderID uuid.UUID) (*OrderDTO, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !o.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("Forbidden: You are not authorized to access this order")
	}
	result := toOrderDTO(o)
	return &result, nil
}

// EditOrder applies an admin patch and moves the held bags in or out of the store.
func (s *OrderService) EditOrder(ctx context.Context, caller Caller, orderID uuid.UUID, req EditOrderRequest) (*OrderDTO, error) {
	if !caller.IsAdmin() {
		return nil, domain.NewForbiddenError("Unauthorized: Only admin can edit orders")
	}
	patch, err := req.toPatch()
	if err != nil {
		return nil, err
	}

	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	delta, err := o.Apply(patch)
	if err != nil {
		return nil, err
	}

	o.IncrementVersion()
	if err := s.orders.UpdateWithCapacity(ctx, o, delta); err != nil {
		if domain.IsCode(err, domain.ErrCodeInsufficientCapacity) {
			metrics.CapacityRejectionsTotal.Inc()
		}
		return nil, err
	}
	metrics.OrderEditsTotal.Inc()

	s.logger.Info("order edited",
		zap.String("order_id", o.ID().String()),
		zap.String("status", string(o.Status())),
		zap.Int("capacity_delta", delta),
	)
	s.publishUpdated(ctx, o, delta, caller.UserID)

	result := toOrderDTO(o)
	return &result, nil
}

// CancelOrder cancels an order on behalf of its owner or an admin and
// releases its bags.
func (s *OrderService) CancelOrder(ctx context.Context, caller Caller, orderID uuid.UUID) (*OrderDTO, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !o.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("Forbidden: You are not authorized to cancel this order")
	}

	released := o.HeldCapacity()
	delta, err := o.Cancel()
	if err != nil {
		return nil, err
	}

	o.IncrementVersion()
	if err := s.orders.UpdateWithCapacity(ctx, o, delta); err != nil {
		return nil, err
	}
	metrics.OrdersCancelledTotal.Inc()

	s.logger.Info("order cancelled", zap.String("order_id", o.ID().String()))
	s.events.publish(ctx, events.TopicOrderEvents, events.OrderCancelled, o.ID().String(), events.OrderCancelledEvent{
		OrderID:      o.ID(),
		OrderNumber:  o.OrderNumber(),
		StoreID:      o.StoreID(),
		ReleasedBags: released,
		CancelledBy:  caller.UserID,
		OccurredAt:   time.Now().UTC(),
	})

	result := toOrderDTO(o)
	return &result, nil
}

// ListMyOrders returns the caller's orders.
func (s *OrderService) ListMyOrders(ctx context.Context, caller Caller, page, limit int) (*domain.PaginatedResult[OrderDTO], error) {
	orders, total, err := s.orders.FindByUserID(ctx, caller.UserID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	result := domain.NewPaginatedResult(toOrderDTOs(orders), total, page, limit)
	return &result, nil
}

// ListStoreOrders returns the orders of a store to its owner or an admin.
func (s *OrderService) ListStoreOrders(ctx context.Context, caller Caller, storeID uuid.UUID, page, limit int) (*domain.PaginatedResult[OrderDTO], error) {
	st, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !st.IsOwnedBy(caller.UserID) {
		return nil, domain.NewForbiddenError("Forbidden: You do not own this store")
	}

	orders, total, err := s.orders.FindByStoreID(ctx, storeID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get store orders: %w", err)
	}
	result := domain.NewPaginatedResult(toOrderDTOs(orders), total, page, limit)
	return &result, nil
}

// ListAllOrders returns all orders with pagination (admin).
func (s *OrderService) ListAllOrders(ctx context.Context, page, limit int) ([]OrderDTO, int64, error) {
	orders, total, err := s.orders.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return toOrderDTOs(orders), total, nil
}

// GetOrderStats returns aggregate order statistics (admin).
func (s *OrderService) GetOrderStats(ctx context.Context) (*OrderStatsDTO, error) {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &OrderStatsDTO{
		TotalOrders: total,
		ByStatus:    counts,
	}, nil
}

// RecordPayment applies a captured payment reported by the payment service.
func (s *OrderService) RecordPayment(ctx context.Context, evt events.PaymentCapturedEvent) error {
	o, err := s.orders.FindByID(ctx, evt.OrderID)
	if err != nil {
		return err
	}

	before := o.Payment()
	if err := o.RecordPayment(evt.Method, evt.TransactionID, evt.PaidAt); err != nil {
		return err
	}
	if o.Payment() == before {
		s.logger.Debug("payment already recorded", zap.String("order_id", o.ID().String()))
		return nil
	}
	return s.savePayment(ctx, o)
}

// RecordPaymentFailure marks an order's payment as failed.
func (s *OrderService) RecordPaymentFailure(ctx context.Context, evt events.PaymentFailedEvent) error {
	o, err := s.orders.FindByID(ctx, evt.OrderID)
	if err != nil {
		return err
	}

	before := o.Payment()
	o.RecordPaymentFailure(evt.Method)
	if o.Payment() == before {
		return nil
	}
	return s.savePayment(ctx, o)
}

func (s *OrderService) savePayment(ctx context.Context, o *orderDomain.Order) error {
	o.IncrementVersion()
	if err := s.orders.UpdateWithCapacity(ctx, o, 0); err != nil {
		return err
	}

	payment := o.Payment()
	s.logger.Info("payment recorded",
		zap.String("order_id", o.ID().String()),
		zap.String("payment_status", string(payment.Status)),
	)
	s.events.publish(ctx, events.TopicOrderEvents, events.OrderPaymentRecorded, o.ID().String(), events.OrderPaymentRecordedEvent{
		OrderID:       o.ID(),
		OrderNumber:   o.OrderNumber(),
		Status:        string(o.Status()),
		PaymentStatus: string(payment.Status),
		TransactionID: payment.TransactionID,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

func (s *OrderService) publishUpdated(ctx context.Context, o *orderDomain.Order, delta int, updatedBy uuid.UUID) {
	s.events.publish(ctx, events.TopicOrderEvents, events.OrderUpdated, o.ID().String(), events.OrderUpdatedEvent{
		OrderID:       o.ID(),
		OrderNumber:   o.OrderNumber(),
		StoreID:       o.StoreID(),
		Status:        string(o.Status()),
		PaymentStatus: string(o.Payment().Status),
		CapacityDelta: delta,
		UpdatedBy:     updatedBy,
		OccurredAt:    time.Now().UTC(),
	})
}

// sendConfirmation mails the booking summary. Failures are logged and counted only.
func (s *OrderService) sendConfirmation(ctx context.Context, o *orderDomain.Order, st *storeDomain.Store) {
	if s.notifier == nil || o.Customer().Email == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	err := s.notifier.SendOrderConfirmation(ctx, notification.OrderConfirmation{
		To:           o.Customer().Email,
		CustomerName: o.Customer().FullName(),
		OrderNumber:  o.OrderNumber(),
		StoreName:    st.Details().Name,
		StoreAddress: st.Details().Address,
		DropOffDate:  o.PickupDate().Format("02 Jan 2006"),
		DropOffTime:  o.PickupTime(),
		PickUpDate:   o.ReturnDate().Format("02 Jan 2006"),
		PickUpTime:   o.ReturnTime(),
		TotalBags:    o.Luggage().Count(),
		Plan:         string(o.Plan()),
		Duration:     o.Duration(),
		TotalAmount:  o.TotalAmount(),
		Currency:     o.Currency(),
	})
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("order_confirmation").Inc()
		s.logger.Error("failed to send order confirmation",
			zap.String("order_id", o.ID().String()),
			zap.Error(err),
		)
	}
}

// --- Helpers ---

func toOrderDTOs(orders []*orderDomain.Order) []OrderDTO {
	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return dtos
}

func toOrderDTO(o *orderDomain.Order) OrderDTO {
	payment := o.Payment()
	return OrderDTO{
		ID:             o.ID(),
		OrderNumber:    o.OrderNumber(),
		UserID:         o.UserID(),
		StoreID:        o.StoreID(),
		BookingType:    string(o.BookingType()),
		Plan:           string(o.Plan()),
		Luggage:        o.Luggage(),
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
		Address:        o.PickupAddress(),
		CustomerInfo:   o.Customer(),
		ReceiveUpdates: o.ReceiveUpdates(),
		PaymentMethod:  payment.Method,
		PaymentStatus:  string(payment.Status),
		TransactionID:  payment.TransactionID,
		PaymentDate:    payment.PaidAt,
		CancelledAt:    o.CancelledAt(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}
