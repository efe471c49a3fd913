package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Stashly-Luggage/service-storage/pkg/auth"
	"github.com/Stashly-Luggage/service-storage/pkg/domain"
)

func TestStoreService_CreateAndList(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := NewStoreService(repo, zap.NewNop())
	owner := Caller{UserID: uuid.New(), Role: auth.RoleOwner}
	ctx := context.Background()

	capacity := 20
	created, err := svc.CreateStore(ctx, owner, CreateStoreRequest{Name: "Indiranagar Hub", Address: "100 Feet Road", City: "Bengaluru", Capacity: &capacity})
	require.NoError(t, err)
	assert.True(t, created.IsOpen, "stores open by default")
	assert.Equal(t, 20, created.Capacity)
	assert.Equal(t, owner.UserID, created.OwnerID)

	_, err = svc.CreateStore(ctx, owner, CreateStoreRequest{Name: "Airport", Address: "KIA", City: "Devanahalli", Capacity: &capacity})
	require.NoError(t, err)

	all, err := svc.ListStores(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Airport", all[0].Name)

	filtered, err := svc.ListStores(ctx, "Bengaluru")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	negative := -1
	_, err = svc.CreateStore(ctx, owner, CreateStoreRequest{Name: "X", Address: "Y", City: "Z", Capacity: &negative})
	assert.True(t, domain.IsCode(err, domain.ErrCodeValidation))
}

func TestStoreService_Update(t *testing.T) {
	repo := newFakeStoreRepo()
	svc := NewStoreService(repo, zap.NewNop())
	owner := Caller{UserID: uuid.New(), Role: auth.RoleOwner}
	ctx := context.Background()

	capacity := 5
	created, err := svc.CreateStore(ctx, owner, CreateStoreRequest{Name: "Hub", Address: "Road", City: "Pune", Capacity: &capacity})
	require.NoError(t, err)

	closed := false
	more := 12
	updated, err := svc.UpdateStore(ctx, owner, created.ID, UpdateStoreRequest{IsOpen: &closed, Capacity: &more})
	require.NoError(t, err)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, 12, updated.Capacity)
	assert.Equal(t, "Hub", updated.Name)
	assert.Equal(t, int64(2), updated.Version)

	other := Caller{UserID: uuid.New(), Role: auth.RoleOwner}
	_, err = svc.UpdateStore(ctx, other, created.ID, UpdateStoreRequest{IsOpen: &closed})
	assert.True(t, domain.IsCode(err, domain.ErrCodeForbidden))

	admin := Caller{UserID: uuid.New(), Role: auth.RoleAdmin}
	_, err = svc.UpdateStore(ctx, admin, created.ID, UpdateStoreRequest{IsOpen: &closed})
	require.NoError(t, err)

	_, err = svc.GetStore(ctx, uuid.New())
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound))
}

func TestCreateOrder_ClosedStore(t *testing.T) {
	env := newOrderEnv(t, 10, nil)
	svc := NewStoreService(env.stores, zap.NewNop())
	owner := Caller{UserID: env.store.OwnerID(), Role: auth.RoleOwner}

	closed := false
	_, err := svc.UpdateStore(context.Background(), owner, env.store.ID(), UpdateStoreRequest{IsOpen: &closed})
	require.NoError(t, err)

	_, err = env.svc.CreateOrder(context.Background(), env.customer, "", env.request(1))
	require.Error(t, err)
	assert.Equal(t, "Store is not accepting bookings", err.Error())
}
