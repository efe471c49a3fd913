package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	orderDomain "github.com/Stashly-Luggage/service-storage/internal/domain/order"
	photoDomain "github.com/Stashly-Luggage/service-storage/internal/domain/photo"
	storeDomain "github.com/Stashly-Luggage/service-storage/internal/domain/store"
	userDomain "github.com/Stashly-Luggage/service-storage/internal/domain/user"
	"github.com/Stashly-Luggage/service-storage/internal/notification"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
	"github.com/Stashly-Luggage/service-storage/pkg/kafka"
)

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[uuid.UUID]*storeDomain.Store
}

func newFakeStoreRepo(stores ...*storeDomain.Store) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: map[uuid.UUID]*storeDomain.Store{}}
	for _, s := range stores {
		r.stores[s.ID()] = s
	}
	return r
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*storeDomain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, domain.NewNotFoundError("Store", id.String())
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) List(_ context.Context, f storeDomain.Filter) ([]*storeDomain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*storeDomain.Store
	for _, s := range r.stores {
		if f.City != "" && s.Details().City != f.City {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Details().Name < out[j].Details().Name })
	return out, nil
}

func (r *fakeStoreRepo) Save(_ context.Context, s *storeDomain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[s.ID()] = s
	return nil
}

func (r *fakeStoreRepo) Update(_ context.Context, s *storeDomain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.stores[s.ID()]
	if !ok {
		return domain.NewNotFoundError("Store", s.ID().String())
	}
	if cur.Version() != s.Version()-1 {
		return domain.NewConflictError("store was modified by another transaction")
	}
	r.stores[s.ID()] = s
	return nil
}

func (r *fakeStoreRepo) capacity(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stores[id].Capacity()
}

// adjust mirrors the conditional capacity update of the SQL repository.
func (r *fakeStoreRepo) adjust(id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return domain.NewNotFoundError("Store", id.String())
	}
	if delta > 0 && s.Capacity() < delta {
		return domain.NewInsufficientCapacityError(storeDomain.InsufficientCapacityMessage)
	}
	r.stores[id] = storeDomain.Reconstruct(s.ID(), s.OwnerID(), s.Details(), s.Capacity()-delta, s.Version()+1, s.CreatedAt(), time.Now().UTC())
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*orderDomain.Order
	stores *fakeStoreRepo
}

func newFakeOrderRepo(stores *fakeStoreRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*orderDomain.Order{}, stores: stores}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*orderDomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.NewNotFoundError("Order", id.String())
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByIdempotencyKey(_ context.Context, userID uuid.UUID, key string) (*orderDomain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID() == userID && o.IdempotencyKey() == key {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("Order", key)
}

func (r *fakeOrderRepo) filter(keep func(*orderDomain.Order) bool) ([]*orderDomain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*orderDomain.Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*orderDomain.Order, int64, error) {
	return r.filter(func(o *orderDomain.Order) bool { return o.UserID() == userID })
}

func (r *fakeOrderRepo) FindByStoreID(_ context.Context, storeID uuid.UUID, _, _ int) ([]*orderDomain.Order, int64, error) {
	return r.filter(func(o *orderDomain.Order) bool { return o.StoreID() == storeID })
}

func (r *fakeOrderRepo) ListAll(_ context.Context, _, _ int) ([]*orderDomain.Order, int64, error) {
	return r.filter(func(*orderDomain.Order) bool { return true })
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, o := range r.orders {
		counts[string(o.Status())]++
	}
	return counts, nil
}

func (r *fakeOrderRepo) CreateWithReservation(_ context.Context, o *orderDomain.Order) error {
	if err := r.stores.adjust(o.StoreID(), o.HeldCapacity()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID()] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateWithCapacity(_ context.Context, o *orderDomain.Order, delta int) error {
	r.mu.Lock()
	cur, ok := r.orders[o.ID()]
	r.mu.Unlock()
	if !ok {
		return domain.NewNotFoundError("Order", o.ID().String())
	}
	if cur.Version() != o.Version()-1 {
		return domain.NewConflictError("order was modified by another transaction")
	}
	if err := r.stores.adjust(o.StoreID(), delta); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID()] = &cp
	return nil
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*userDomain.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", id.String())
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userDomain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.NewNotFoundError("User", email)
	}
	return u, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email()]; ok {
		return domain.NewConflictError("User already exists")
	}
	r.users[u.Email()] = u
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, _, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []notification.OrderConfirmation
	enquiries     []notification.Enquiry
	err           error
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, c notification.OrderConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.confirmations = append(n.confirmations, c)
	return nil
}

func (n *fakeNotifier) SendEnquiry(_ context.Context, e notification.Enquiry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.enquiries = append(n.enquiries, e)
	return nil
}

type fakePhotoRepo struct {
	mu     sync.Mutex
	photos []*photoDomain.LuggagePhoto
}

func (r *fakePhotoRepo) Save(_ context.Context, p *photoDomain.LuggagePhoto) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photos = append(r.photos, p)
	return nil
}

func (r *fakePhotoRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*photoDomain.LuggagePhoto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*photoDomain.LuggagePhoto
	for _, p := range r.photos {
		if p.OrderID() == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}
