package history_test

import (
	"testing"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/history"
	"tracksaidas/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatedParams() history.EntryParams {
	return history.EntryParams{
		ID:         kernel.NewUUID(),
		DeliveryID: kernel.NewUUID(),
		Kind:       history.EventCreated,
		OccurredAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		FromStatus: delivery.Unknown,
		ToStatus:   delivery.Pending,
	}
}

func TestNewEntry(t *testing.T) {
	t.Run("should create a Created entry without statuses before it", func(t *testing.T) {
		params := validCreatedParams()

		e, err := history.NewEntry(params)

		require.NoError(t, err)
		assert.Equal(t, history.EventCreated, e.Kind())
		assert.Equal(t, delivery.Unknown, e.FromStatus())
		assert.Equal(t, delivery.Pending, e.ToStatus())
		assert.Nil(t, e.Courier())
		require.NoError(t, e.Validate())
	})

	t.Run("should create an Assigned entry with a courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := validCreatedParams()
		params.Kind = history.EventAssigned
		params.FromStatus = delivery.Pending
		params.ToStatus = delivery.Assigned
		params.CourierID = &courierID

		e, err := history.NewEntry(params)

		require.NoError(t, err)
		require.NotNil(t, e.Courier())
		assert.True(t, courierID.IsEqual(*e.Courier()))
	})

	t.Run("should create a Reassigned entry with both couriers", func(t *testing.T) {
		courierID := kernel.NewUUID()
		previousID := kernel.NewUUID()
		params := validCreatedParams()
		params.Kind = history.EventReassigned
		params.FromStatus = delivery.Assigned
		params.ToStatus = delivery.Assigned
		params.CourierID = &courierID
		params.PreviousCourierID = &previousID

		e, err := history.NewEntry(params)

		require.NoError(t, err)
		assert.True(t, courierID.IsEqual(*e.Courier()))
		assert.True(t, previousID.IsEqual(*e.PreviousCourier()))
	})

	t.Run("should carry the acting user when one is given", func(t *testing.T) {
		actorID := kernel.NewUUID()
		params := validCreatedParams()
		params.ActorID = &actorID

		e, err := history.NewEntry(params)

		require.NoError(t, err)
		require.NotNil(t, e.Actor())
		assert.True(t, actorID.IsEqual(*e.Actor()))
	})

	t.Run("should leave the actor nil for automated events", func(t *testing.T) {
		e, err := history.NewEntry(validCreatedParams())

		require.NoError(t, err)
		assert.Nil(t, e.Actor())
	})

	t.Run("should reject an invalid actor identifier", func(t *testing.T) {
		params := validCreatedParams()
		params.ActorID = &kernel.UUID{}

		_, err := history.NewEntry(params)

		require.Error(t, err)
	})

	t.Run("should trim the note", func(t *testing.T) {
		params := validCreatedParams()
		params.Note = "  imported from spreadsheet  "

		e, err := history.NewEntry(params)

		require.NoError(t, err)
		assert.Equal(t, "imported from spreadsheet", e.Note())
	})

	t.Run("should reject a Created entry carrying a courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := validCreatedParams()
		params.CourierID = &courierID

		_, err := history.NewEntry(params)

		require.Error(t, err)
	})

	t.Run("should reject an Assigned entry without a courier", func(t *testing.T) {
		params := validCreatedParams()
		params.Kind = history.EventAssigned
		params.FromStatus = delivery.Pending
		params.ToStatus = delivery.Assigned

		_, err := history.NewEntry(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "courierID")
	})

	t.Run("should reject a Reassigned entry without the previous courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := validCreatedParams()
		params.Kind = history.EventReassigned
		params.FromStatus = delivery.Assigned
		params.ToStatus = delivery.Assigned
		params.CourierID = &courierID

		_, err := history.NewEntry(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "previousCourierID")
	})

	t.Run("should reject an Unknown fromStatus outside Created", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := validCreatedParams()
		params.Kind = history.EventAssigned
		params.FromStatus = delivery.Unknown
		params.ToStatus = delivery.Assigned
		params.CourierID = &courierID

		_, err := history.NewEntry(params)

		require.Error(t, err)
	})

	t.Run("should reject zero occurredAt", func(t *testing.T) {
		params := validCreatedParams()
		params.OccurredAt = time.Time{}

		_, err := history.NewEntry(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "occurredAt")
	})

	t.Run("should reject invalid identifiers", func(t *testing.T) {
		params := validCreatedParams()
		params.DeliveryID = kernel.UUID{}

		_, err := history.NewEntry(params)

		require.Error(t, err)
	})

	t.Run("should reject direct struct instantiation", func(t *testing.T) {
		var e history.Entry
		err := e.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, history.ErrEntryIsNotConstructed)
	})
}

func TestEventKind(t *testing.T) {
	t.Run("should validate defined kinds", func(t *testing.T) {
		kinds := []history.EventKind{
			history.EventCreated,
			history.EventAssigned,
			history.EventReassigned,
			history.EventUnassigned,
			history.EventDelivered,
			history.EventMarkedAbsent,
			history.EventCancelled,
			history.EventStatusChanged,
		}
		for _, k := range kinds {
			require.NoError(t, k.Validate(), "kind %s", k)
		}
	})

	t.Run("should reject undefined kinds", func(t *testing.T) {
		require.Error(t, history.EventUnknown.Validate())
		require.Error(t, history.EventKind(-1).Validate())
		require.Error(t, history.EventKind(99).Validate())
	})

	t.Run("should have readable names", func(t *testing.T) {
		assert.Equal(t, "Reassigned", history.EventReassigned.String())
		assert.Equal(t, "MarkedAbsent", history.EventMarkedAbsent.String())
		assert.Equal(t, "Unknown", history.EventKind(42).String())
	})
}
