package service

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/dzstore/internal/domain"
	"github.com/fsdevblog/dzstore/internal/service/mocks"
)

var (
	manualDelivery = domain.StoreSettings{StoreEnabled: true}
	autoDelivery   = domain.StoreSettings{StoreEnabled: true, AutoDelivery: true}
	okPayload      = json.RawMessage(`{"success":true}`)
)

// storeFixture wires the real services on top of memStore. Only the game server and the event
// sink are mocked.
type storeFixture struct {
	store    *memStore
	gateway  *mocks.MockDeliverer
	events   *mocks.MockEventPublisher
	locker   *MemoryLocker
	ledger   *LedgerService
	catalog  *CatalogService
	delivery *DeliveryService
	orders   *OrderService
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &storeFixture{
		store:   newMemStore(),
		gateway: mocks.NewMockDeliverer(ctrl),
		events:  mocks.NewMockEventPublisher(ctrl),
		locker:  NewMemoryLocker(),
	}
	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	l := testLogger()
	u := f.store.uow()
	var err error
	f.ledger, err = NewLedgerService(u)
	require.NoError(t, err)
	f.catalog, err = NewCatalogService(u, nil)
	require.NoError(t, err)
	f.delivery, err = NewDeliveryService(u, f.catalog, f.ledger, f.gateway, f.events, f.locker, l)
	require.NoError(t, err)
	f.orders, err = NewOrderService(u, f.ledger, f.catalog, f.delivery, f.events, l)
	require.NoError(t, err)
	return f
}

func (f *storeFixture) player(points int64) domain.User {
	return f.store.addUser(domain.User{
		Username: "player",
		SteamID:  testSteamID,
		Points:   points,
		IsActive: true,
	})
}

func (f *storeFixture) weapon(price int64) domain.Item {
	return f.store.addItem(domain.Item{
		Name:           "AKM",
		Price:          price,
		Category:       domain.ItemCategoryWeapon,
		Classname:      "AKM",
		Attachments:    domain.Attachments{{Classname: "Mag_AKM_30Rnd", Quantity: 2}},
		StockUnlimited: true,
		IsActive:       true,
	})
}

func (f *storeFixture) limitedItem(price, stock int64) domain.Item {
	return f.store.addItem(domain.Item{
		Name:          "Hatchback",
		Price:         price,
		Category:      domain.ItemCategoryVehicle,
		Classname:     "OffroadHatchback",
		StockQuantity: stock,
		IsActive:      true,
	})
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
