package commands_test

import (
	"context"
	"errors"
	"time"

	"tracksaidas/internal/core/application/usecases/commands"
	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/model/session"
	"tracksaidas/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllPending(_ context.Context, _ string, _ time.Time) ([]*delivery.Delivery, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockDeliveryRepository) GetAllForCourierOnDate(
	ctx context.Context, courierID kernel.UUID, date time.Time,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, courierID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllWithoutHistory(ctx context.Context, limit int) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllDeliveredWithoutDeliveredEvent(
	ctx context.Context, limit int,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListSubjects(
	ctx context.Context, periodStart, periodEnd time.Time,
) ([]string, []string, error) {
	args := m.Called(ctx, periodStart, periodEnd)
	var couriers, bases []string
	if args.Get(0) != nil {
		couriers = args.Get(0).([]string)
	}
	if args.Get(1) != nil {
		bases = args.Get(1).([]string)
	}
	return couriers, bases, args.Error(2)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListFor(_ context.Context, _ kernel.UUID) ([]*history.Entry, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockHistoryRepository) HasEntryOfKind(
	ctx context.Context, deliveryID kernel.UUID, kind history.EventKind,
) (bool, error) {
	args := m.Called(ctx, deliveryID, kind)
	return args.Bool(0), args.Error(1)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.RouteSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.RouteSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.RouteSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.RouteSession), args.Error(1)
}

func (m *MockSessionRepository) GetActiveForCourier(
	_ context.Context, _ kernel.UUID, _ time.Time,
) (*session.RouteSession, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockSessionRepository) GetAllActiveBefore(ctx context.Context, cutoff time.Time) ([]*session.RouteSession, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*session.RouteSession), args.Error(1)
}

func (m *MockSessionRepository) ReconcileFinished(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBillingRepository struct{ mock.Mock }

func (m *MockBillingRepository) Add(ctx context.Context, item *closure.BillingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBillingRepository) Update(ctx context.Context, item *closure.BillingItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBillingRepository) GetForDelivery(ctx context.Context, deliveryID kernel.UUID) (*closure.BillingItem, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*closure.BillingItem), args.Error(1)
}

func (m *MockBillingRepository) GetAllForCourier(
	ctx context.Context, courierID kernel.UUID, periodStart, periodEnd time.Time,
) ([]*closure.BillingItem, error) {
	args := m.Called(ctx, courierID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*closure.BillingItem), args.Error(1)
}

func (m *MockBillingRepository) GetAllForBase(
	ctx context.Context, base string, periodStart, periodEnd time.Time,
) ([]*closure.BillingItem, error) {
	args := m.Called(ctx, base, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*closure.BillingItem), args.Error(1)
}

type MockClosureRepository struct{ mock.Mock }

func (m *MockClosureRepository) Add(ctx context.Context, c *closure.Closure) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClosureRepository) Update(_ context.Context, _ *closure.Closure) error {
	return errors.New("not implemented in mock")
}

func (m *MockClosureRepository) Get(_ context.Context, _ kernel.UUID) (*closure.Closure, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockClosureRepository) Exists(
	ctx context.Context, scope closure.Scope, subject string, periodStart, periodEnd time.Time,
) (bool, error) {
	args := m.Called(ctx, scope, subject, periodStart, periodEnd)
	return args.Bool(0), args.Error(1)
}

// MockDeliveryUoW satisfies commands.DeliveryUoW.
type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockDeliveryUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

// MockBillingUoW satisfies commands.BillingUoW.
type MockBillingUoW struct{ MockDeliveryUoW }

func (m *MockBillingUoW) BillingRepository() ports.BillingRepository {
	args := m.Called()
	return args.Get(0).(ports.BillingRepository)
}

type MockBillingUoWFactory struct{ mock.Mock }

func (m *MockBillingUoWFactory) Create() commands.BillingUoW {
	args := m.Called()
	return args.Get(0).(commands.BillingUoW)
}

// MockSessionUoW satisfies commands.SessionUoW.
type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

func (m *MockSessionUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

// MockClosureUoW satisfies commands.ClosureUoW.
type MockClosureUoW struct{ mock.Mock }

func (m *MockClosureUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClosureUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClosureUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockClosureUoW) ClosureRepository() ports.ClosureRepository {
	args := m.Called()
	return args.Get(0).(ports.ClosureRepository)
}

func (m *MockClosureUoW) BillingRepository() ports.BillingRepository {
	args := m.Called()
	return args.Get(0).(ports.BillingRepository)
}

func (m *MockClosureUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockClosureUoWFactory struct{ mock.Mock }

func (m *MockClosureUoWFactory) Create() commands.ClosureUoW {
	args := m.Called()
	return args.Get(0).(commands.ClosureUoW)
}

type stubPricing struct {
	price kernel.Money
	err   error
}

func (s stubPricing) Price(_ context.Context, _ delivery.ServiceKind, _, _ string) (kernel.Money, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.price, nil
}

type stubReasons struct {
	reason *ports.AbsenceReason
	err    error
}

func (s stubReasons) Get(_ context.Context, _ kernel.UUID) (*ports.AbsenceReason, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reason, nil
}

func (s stubReasons) ListActive(_ context.Context) ([]*ports.AbsenceReason, error) {
	return nil, errors.New("not implemented in stub")
}

func testDay() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func newPendingDelivery(t interface{ Fatalf(string, ...any) }) *delivery.Delivery {
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), testDay(), "BR123456789", delivery.ServiceStandard, "centro", "")
	if err != nil {
		t.Fatalf("building delivery: %v", err)
	}
	return d
}

func newAssignedDelivery(t interface{ Fatalf(string, ...any) }, courierID kernel.UUID) *delivery.Delivery {
	d := newPendingDelivery(t)
	if _, err := d.Assign(courierID); err != nil {
		t.Fatalf("assigning delivery: %v", err)
	}
	return d
}
