package delivery_test

import (
	"testing"
	"time"

	"tracksaidas/internal/core/domain/model/delivery"
	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), testDay(), "BR123456789", delivery.ServiceShopee, "centro", "zona-sul")
	require.NoError(t, err)
	return d
}

func TestNewDelivery(t *testing.T) {
	t.Run("should create delivery with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := delivery.NewDelivery(id, testDay(), "BR123456789", delivery.ServiceShopee, "centro", "zona-sul")

		require.NoError(t, err)
		require.NotNil(t, d)
		assert.True(t, id.IsEqual(d.ID()))
		assert.Equal(t, "BR123456789", d.Code())
		assert.Equal(t, delivery.ServiceShopee, d.ServiceKind())
		assert.Equal(t, "centro", d.Base())
		assert.Equal(t, "zona-sul", d.SubBase())
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Nil(t, d.Courier())
		assert.Nil(t, d.DeliveredAt())
		assert.Nil(t, d.AbsenceReason())
		assert.Equal(t, 1, d.Version())
		require.NoError(t, d.Validate())
	})

	t.Run("should trim whitespace from code and bases", func(t *testing.T) {
		d, err := delivery.NewDelivery(
			kernel.NewUUID(), testDay(), "  BR1  ", delivery.ServiceStandard, " centro ", "  ")

		require.NoError(t, err)
		assert.Equal(t, "BR1", d.Code())
		assert.Equal(t, "centro", d.Base())
		assert.Equal(t, "", d.SubBase())
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		testCases := []struct {
			name string
			run  func() (*delivery.Delivery, error)
		}{
			{"empty UUID", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(kernel.UUID{}, testDay(), "BR1", delivery.ServiceShopee, "centro", "")
			}},
			{"zero date", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(kernel.NewUUID(), time.Time{}, "BR1", delivery.ServiceShopee, "centro", "")
			}},
			{"blank code", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(kernel.NewUUID(), testDay(), "   ", delivery.ServiceShopee, "centro", "")
			}},
			{"unknown service kind", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(kernel.NewUUID(), testDay(), "BR1", delivery.ServiceUnknown, "centro", "")
			}},
			{"blank base", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(kernel.NewUUID(), testDay(), "BR1", delivery.ServiceShopee, "", "")
			}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				d, err := tc.run()
				require.Error(t, err)
				assert.Nil(t, d)
			})
		}
	})

	t.Run("should reject direct struct instantiation", func(t *testing.T) {
		var d delivery.Delivery
		err := d.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_Assign(t *testing.T) {
	t.Run("should assign a courier to a pending delivery", func(t *testing.T) {
		d := newTestDelivery(t)
		courierID := kernel.NewUUID()

		reassigned, err := d.Assign(courierID)

		require.NoError(t, err)
		assert.False(t, reassigned)
		assert.Equal(t, delivery.Assigned, d.Status())
		require.NotNil(t, d.Courier())
		assert.True(t, courierID.IsEqual(*d.Courier()))
	})

	t.Run("should report reassignment to a different courier", func(t *testing.T) {
		d := newTestDelivery(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		_, err := d.Assign(first)
		require.NoError(t, err)

		reassigned, err := d.Assign(second)

		require.NoError(t, err)
		assert.True(t, reassigned)
		assert.True(t, second.IsEqual(*d.Courier()))
	})

	t.Run("should not report reassignment for the same courier", func(t *testing.T) {
		d := newTestDelivery(t)
		courierID := kernel.NewUUID()

		_, err := d.Assign(courierID)
		require.NoError(t, err)

		reassigned, err := d.Assign(courierID)

		require.NoError(t, err)
		assert.False(t, reassigned)
	})

	t.Run("should reject invalid courier ID", func(t *testing.T) {
		d := newTestDelivery(t)

		_, err := d.Assign(kernel.UUID{})

		require.Error(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
	})

	t.Run("should reject assignment after a terminal outcome", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, d.MarkDelivered(time.Now()))

		_, err = d.Assign(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_Unassign(t *testing.T) {
	t.Run("should return an assigned delivery to pending and clear the courier", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)

		err = d.Unassign()

		require.NoError(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Nil(t, d.Courier())
	})

	t.Run("should reject unassigning a pending delivery", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.Unassign()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_MarkDelivered(t *testing.T) {
	t.Run("should record the handover instant", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)
		at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

		err = d.MarkDelivered(at)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
		require.NotNil(t, d.DeliveredAt())
		assert.Equal(t, at, *d.DeliveredAt())
		assert.NotNil(t, d.Courier(), "courier reference is kept for the audit trail")
	})

	t.Run("should reject a zero instant", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)

		err = d.MarkDelivered(time.Time{})

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should reject delivering a pending parcel", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.MarkDelivered(time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, d.DeliveredAt())
	})

	t.Run("should reject a second delivery of the same parcel", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, d.MarkDelivered(time.Now()))

		err = d.MarkDelivered(time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_MarkAbsent(t *testing.T) {
	t.Run("should record the absence reason", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)
		reasonID := kernel.NewUUID()

		err = d.MarkAbsent(reasonID)

		require.NoError(t, err)
		assert.Equal(t, delivery.Absent, d.Status())
		require.NotNil(t, d.AbsenceReason())
		assert.True(t, reasonID.IsEqual(*d.AbsenceReason()))
	})

	t.Run("should reject an invalid reason ID", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)

		err = d.MarkAbsent(kernel.UUID{})

		require.Error(t, err)
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should reject marking a pending parcel absent", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.MarkAbsent(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_Cancel(t *testing.T) {
	t.Run("should cancel a pending delivery", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.Cancel()

		require.NoError(t, err)
		assert.Equal(t, delivery.Cancelled, d.Status())
	})

	t.Run("should cancel an assigned delivery and keep the courier reference", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)

		err = d.Cancel()

		require.NoError(t, err)
		assert.Equal(t, delivery.Cancelled, d.Status())
		assert.NotNil(t, d.Courier())
	})

	t.Run("should reject cancelling a delivered parcel", func(t *testing.T) {
		d := newTestDelivery(t)
		_, err := d.Assign(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, d.MarkDelivered(time.Now()))

		err = d.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestDelivery_AttachGeo(t *testing.T) {
	t.Run("should attach a geocoded destination", func(t *testing.T) {
		d := newTestDelivery(t)
		point, err := kernel.NewGeoPoint(-23.5505, -46.6333)
		require.NoError(t, err)

		err = d.AttachGeo(point, "Av. Paulista, 1000", delivery.AddressSourceOCR)

		require.NoError(t, err)
		require.NotNil(t, d.Point())
		assert.Equal(t, "Av. Paulista, 1000", d.FormattedAddress())
		assert.Equal(t, delivery.AddressSourceOCR, d.AddressSource())
	})

	t.Run("should allow correcting the address while in flight", func(t *testing.T) {
		d := newTestDelivery(t)
		first, err := kernel.NewGeoPoint(-23.55, -46.63)
		require.NoError(t, err)
		require.NoError(t, d.AttachGeo(first, "Rua A, 1", delivery.AddressSourceVoice))

		second, err := kernel.NewGeoPoint(-23.56, -46.64)
		require.NoError(t, err)
		err = d.AttachGeo(second, "Rua A, 100", delivery.AddressSourceManual)

		require.NoError(t, err)
		assert.Equal(t, "Rua A, 100", d.FormattedAddress())
		assert.Equal(t, delivery.AddressSourceManual, d.AddressSource())
	})

	t.Run("should reject blank address text", func(t *testing.T) {
		d := newTestDelivery(t)
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		err = d.AttachGeo(point, "   ", delivery.AddressSourceManual)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})

	t.Run("should reject unknown address source", func(t *testing.T) {
		d := newTestDelivery(t)
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		err = d.AttachGeo(point, "Rua B, 2", delivery.AddressSourceUnknown)

		require.Error(t, err)
	})

	t.Run("should reject attaching an address to a terminal delivery", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.Cancel())
		point, err := kernel.NewGeoPoint(0, 0)
		require.NoError(t, err)

		err = d.AttachGeo(point, "Rua C, 3", delivery.AddressSourceManual)

		require.Error(t, err)
	})
}

func TestDelivery_LinkShipment(t *testing.T) {
	t.Run("should link marketplace references once", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.LinkShipment("SHP-42", "ORD-42")

		require.NoError(t, err)
		assert.Equal(t, "SHP-42", d.ShipmentRef())
		assert.Equal(t, "ORD-42", d.OrderRef())
	})

	t.Run("should reject relinking", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.LinkShipment("SHP-42", "ORD-42"))

		err := d.LinkShipment("SHP-43", "ORD-43")

		require.Error(t, err)
		assert.Equal(t, "SHP-42", d.ShipmentRef())
	})

	t.Run("should reject blank shipment reference", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.LinkShipment("  ", "ORD-1")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})
}

func TestRestoreDelivery(t *testing.T) {
	baseParams := func() delivery.RestoreParams {
		return delivery.RestoreParams{
			ID:          kernel.NewUUID(),
			Date:        testDay(),
			Code:        "BR987654321",
			ServiceKind: delivery.ServiceFlex,
			Base:        "centro",
			SubBase:     "zona-norte",
			Status:      delivery.Pending,
			Version:     3,
		}
	}

	t.Run("should restore a pending delivery", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(baseParams())

		require.NoError(t, err)
		assert.Equal(t, delivery.Pending, d.Status())
		assert.Equal(t, 3, d.Version())
		require.NoError(t, d.Validate())
	})

	t.Run("should restore a delivered delivery with its evidence", func(t *testing.T) {
		courierID := kernel.NewUUID()
		at := time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
		params := baseParams()
		params.Status = delivery.Delivered
		params.CourierID = &courierID
		params.DeliveredAt = &at

		d, err := delivery.RestoreDelivery(params)

		require.NoError(t, err)
		assert.Equal(t, delivery.Delivered, d.Status())
		assert.Equal(t, at, *d.DeliveredAt())
	})

	t.Run("should reject a delivered row without a timestamp", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := baseParams()
		params.Status = delivery.Delivered
		params.CourierID = &courierID

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deliveredAt")
	})

	t.Run("should reject a delivered row without a courier", func(t *testing.T) {
		at := time.Now()
		params := baseParams()
		params.Status = delivery.Delivered
		params.DeliveredAt = &at

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "courier")
	})

	t.Run("should reject a pending row with a courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := baseParams()
		params.CourierID = &courierID

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
	})

	t.Run("should reject an absent row without a reason", func(t *testing.T) {
		courierID := kernel.NewUUID()
		params := baseParams()
		params.Status = delivery.Absent
		params.CourierID = &courierID

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "absenceReasonID")
	})

	t.Run("should reject a non-positive version", func(t *testing.T) {
		params := baseParams()
		params.Version = 0

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
		assert.IsType(t, &errs.VersionIsInvalidError{}, err)
	})

	t.Run("should reject an invalid status", func(t *testing.T) {
		params := baseParams()
		params.Status = delivery.Status(99)

		_, err := delivery.RestoreDelivery(params)

		require.Error(t, err)
	})
}

func TestServiceKindFromLabel(t *testing.T) {
	testCases := []struct {
		label    string
		expected delivery.ServiceKind
	}{
		{"shopee", delivery.ServiceShopee},
		{"Shopee Express", delivery.ServiceShopee},
		{"ML Flex", delivery.ServiceFlex},
		{"mercado livre", delivery.ServiceFlex},
		{"flex", delivery.ServiceFlex},
		{"avulso", delivery.ServiceStandard},
		{"", delivery.ServiceStandard},
		{"  padrao  ", delivery.ServiceStandard},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.expected, delivery.ServiceKindFromLabel(tc.label))
		})
	}
}
