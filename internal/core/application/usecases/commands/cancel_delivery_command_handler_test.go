package commands_test

import (
	"testing"
	"time"

	"tracksaidas/internal/core/application/usecases/commands"
	"tracksaidas/internal/core/domain/model/closure"
	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBilledItem(t *testing.T, d *delivery.Delivery, courierID kernel.UUID) *closure.BillingItem {
	t.Helper()
	item, err := closure.NewBillingItem(closure.BillingItemParams{
		ID:          kernel.NewUUID(),
		DeliveryID:  d.ID(),
		CourierID:   courierID,
		Date:        d.Date(),
		ServiceKind: d.ServiceKind(),
		Base:        d.Base(),
		UnitPrice:   kernel.NewMoneyFromCents(350),
	})
	require.NoError(t, err)
	return item
}

func TestCancelDeliveryCommandHandler_Handle_UnbilledDelivery(t *testing.T) {
	ctx := t.Context()
	d := newPendingDelivery(t)
	actorID := kernel.NewUUID()
	cmd, err := commands.NewCancelDeliveryCommand(d.ID(), &actorID, "entered twice")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	historyRepo := new(MockHistoryRepository)
	billingRepo := new(MockBillingRepository)
	uow := new(MockBillingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	deliveryRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	deliveryRepo.On("Update", mock.Anything, d).Return(nil).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	historyRepo.On("Add", mock.Anything, mock.MatchedBy(func(e *history.Entry) bool {
		return e.Kind() == history.EventCancelled &&
			e.Note() == "entered twice" &&
			e.Actor() != nil && *e.Actor() == actorID
	})).Return(nil).Once()
	uow.On("BillingRepository").Return(billingRepo).Once()
	billingRepo.On("GetForDelivery", mock.Anything, d.ID()).
		Return(nil, errs.NewObjectNotFoundError("billingItem", d.ID().String())).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, delivery.Cancelled, d.Status())
	billingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCancelDeliveryCommandHandler_Handle_VoidsBillingItem(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d := newAssignedDelivery(t, courierID)
	item := newBilledItem(t, d, courierID)
	cmd, err := commands.NewCancelDeliveryCommand(d.ID(), nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	historyRepo := new(MockHistoryRepository)
	billingRepo := new(MockBillingRepository)
	uow := new(MockBillingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	deliveryRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	deliveryRepo.On("Update", mock.Anything, d).Return(nil).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	historyRepo.On("Add", mock.Anything, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
	uow.On("BillingRepository").Return(billingRepo).Once()
	billingRepo.On("GetForDelivery", mock.Anything, d.ID()).Return(item, nil).Once()
	billingRepo.On("Update", mock.Anything, mock.MatchedBy(func(voided *closure.BillingItem) bool {
		return voided.IsCancelled()
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, item.IsCancelled())
	billingRepo.AssertExpectations(t)
}

func TestCancelDeliveryCommandHandler_Handle_AlreadyVoidedItemIsLeftAlone(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d := newAssignedDelivery(t, courierID)
	item := newBilledItem(t, d, courierID)
	item.Void()
	cmd, err := commands.NewCancelDeliveryCommand(d.ID(), nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	historyRepo := new(MockHistoryRepository)
	billingRepo := new(MockBillingRepository)
	uow := new(MockBillingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	deliveryRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	deliveryRepo.On("Update", mock.Anything, d).Return(nil).Once()
	uow.On("HistoryRepository").Return(historyRepo).Once()
	historyRepo.On("Add", mock.Anything, mock.AnythingOfType("*history.Entry")).Return(nil).Once()
	uow.On("BillingRepository").Return(billingRepo).Once()
	billingRepo.On("GetForDelivery", mock.Anything, d.ID()).Return(item, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelDeliveryCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	billingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelDeliveryCommandHandler_Handle_TerminalDelivery(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	d := newAssignedDelivery(t, courierID)
	require.NoError(t, d.MarkDelivered(testDay().Add(12*time.Hour)))
	cmd, err := commands.NewCancelDeliveryCommand(d.ID(), nil, "")
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockBillingUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	deliveryRepo.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBillingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelDeliveryCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidTransition)
	deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
