package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/locker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransitionOrderRepository struct{ mock.Mock }

func (m *MockTransitionOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransitionOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransitionOrderRepository) Get(
	ctx context.Context,
	tenantID kernel.TenantID,
	id kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockTransitionOrderRepository) GetAllOpen(
	ctx context.Context,
	tenantID kernel.TenantID,
) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTransitionShipmentRepository struct{ mock.Mock }

func (m *MockTransitionShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTransitionShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTransitionShipmentRepository) Get(
	ctx context.Context,
	tenantID kernel.TenantID,
	id kernel.UUID,
) (*shipment.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockTransitionShipmentRepository) GetStale(
	ctx context.Context,
	olderThan time.Time,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockTransitionInventoryRepository struct{ mock.Mock }

func (m *MockTransitionInventoryRepository) AdjustReserved(
	ctx context.Context,
	tenantID kernel.TenantID,
	sku string,
	delta int,
) error {
	args := m.Called(ctx, tenantID, sku, delta)
	return args.Error(0)
}

func (m *MockTransitionInventoryRepository) Get(
	ctx context.Context,
	tenantID kernel.TenantID,
	sku string,
) (inventory.StockItem, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Get(0).(inventory.StockItem), args.Error(1)
}

type MockTransitionUoW struct{ mock.Mock }

func (m *MockTransitionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockTransitionUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockTransitionUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func newTransitionFixture(t *testing.T, status order.Status) (kernel.TenantID, *order.Order) {
	t.Helper()

	tenantID, err := kernel.NewTenantID(kernel.NewUUID())
	require.NoError(t, err)

	line, err := order.NewLineItem("SKU-1", 3)
	require.NoError(t, err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{line}, "ingestion")
	require.NoError(t, err)

	// Walk the order to the desired starting status.
	path := map[order.Status][]order.Status{
		order.New:         {},
		order.Reserved:    {order.Reserved},
		order.ReadyToShip: {order.Reserved, order.ReadyToShip},
	}[status]
	for _, next := range path {
		_, err = testOrder.TransitionTo(next, "test")
		require.NoError(t, err)
	}
	if status != order.New {
		testOrder.MarkReserved()
	}

	return tenantID, testOrder
}

func newTransitionLocker() *locker.EntityLocker {
	return locker.NewEntityLocker(locker.DefaultAcquireTimeout)
}

func TestTransitionOrderCommandHandler_Handle_ReserveSuccess(t *testing.T) {
	ctx := t.Context()
	tenantID, _ := newTransitionFixture(t, order.New)

	line, err := order.NewLineItem("SKU-1", 3)
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{line}, "ingestion")
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Reserved, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	inventoryRepo := new(MockTransitionInventoryRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("AdjustReserved", ctx, tenantID, "SKU-1", 3).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Reserved, updated.Status())
	assert.NotNil(t, updated.Timestamps().ReservedAt)
	assert.Empty(t, updated.ReserveDeltas())

	orderRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ReadyToShipCreatesShipment(t *testing.T) {
	ctx := t.Context()
	tenantID, testOrder := newTransitionFixture(t, order.Reserved)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.ReadyToShip, "ops@acme", shipment.CarrierDHL,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	shipmentRepo := new(MockTransitionShipmentRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.ReadyToShip, updated.Status())

	addCall := shipmentRepo.Calls[0]
	created := addCall.Arguments[1].(*shipment.Shipment)
	assert.True(t, created.OrderID().IsEqual(testOrder.ID()))
	assert.Equal(t, shipment.CarrierDHL, created.Carrier())
	assert.Equal(t, shipment.StatusLabelCreated, created.Status())

	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CancelReleasesReservation(t *testing.T) {
	ctx := t.Context()
	tenantID, testOrder := newTransitionFixture(t, order.Reserved)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Cancelled, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	inventoryRepo := new(MockTransitionInventoryRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("AdjustReserved", ctx, tenantID, "SKU-1", -3).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Empty(t, updated.ReleaseDeltas())

	inventoryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	tenantID, testOrder := newTransitionFixture(t, order.New)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Delivered, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	assert.Nil(t, updated)

	var illegalErr *order.IllegalTransitionError
	require.ErrorAs(t, err, &illegalErr)
	assert.Equal(t, order.New, illegalErr.From)
	assert.Equal(t, order.Delivered, illegalErr.To)
	assert.ElementsMatch(t,
		[]order.Status{order.Reserved, order.Cancelled, order.Failed},
		illegalErr.LegalNextStates,
	)

	// Nothing was persisted.
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	tenantID, testOrder := newTransitionFixture(t, order.New)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Reserved, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, updated)
}

func TestTransitionOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	tenantID, _ := newTransitionFixture(t, order.New)

	line, err := order.NewLineItem("SKU-1", 3)
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), tenantID, []order.LineItem{line}, "ingestion")
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Reserved, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	orderRepo := new(MockTransitionOrderRepository)
	inventoryRepo := new(MockTransitionInventoryRepository)
	uow := new(MockTransitionUoW)

	stockErr := errors.New("insufficient stock")

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, tenantID, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("InventoryRepository").Return(inventoryRepo).Once(),
		inventoryRepo.On("AdjustReserved", ctx, tenantID, "SKU-1", 3).Return(stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, stockErr)
	assert.Nil(t, updated)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_LockTimeout(t *testing.T) {
	ctx := t.Context()
	tenantID, testOrder := newTransitionFixture(t, order.New)

	cmd, err := commands.NewTransitionOrderCommand(
		tenantID, testOrder.ID(), order.Reserved, "ops@acme", shipment.CarrierUnknown,
	)
	require.NoError(t, err)

	entityLocker := locker.NewEntityLocker(10 * time.Millisecond)
	release, err := entityLocker.Acquire(ctx, testOrder.ID().String())
	require.NoError(t, err)
	defer release()

	factory := new(MockTransitionUoWFactory)

	handler := commands.NewTransitionOrderCommandHandler(factory, entityLocker)
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, locker.ErrLockTimeout)
	assert.Nil(t, updated)
	factory.AssertNotCalled(t, "Create")
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionOrderCommand{} // not constructed properly

	factory := new(MockTransitionUoWFactory)
	handler := commands.NewTransitionOrderCommandHandler(factory, newTransitionLocker())
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	assert.Nil(t, updated)
	factory.AssertNotCalled(t, "Create")
}
