package services_test

import (
	"testing"

	"tracksaidas/internal/core/domain/model/kernel"
	"tracksaidas/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locatedStop(t *testing.T, lat, lon float64) services.Stop {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return services.Stop{DeliveryID: kernel.NewUUID(), Point: &point}
}

func unlocatedStop() services.Stop {
	return services.Stop{DeliveryID: kernel.NewUUID()}
}

func ids(stops []services.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.DeliveryID.String()
	}
	return out
}

func TestRoutePlanner_Optimize(t *testing.T) {
	planner := services.NewRoutePlanner()

	t.Run("should visit nearest neighbors from the anchor", func(t *testing.T) {
		// Anchor at origin; the optimized chain follows increasing longitude
		// even though the input interleaves the stops.
		a := locatedStop(t, 0, 0)
		b := locatedStop(t, 0, 3)
		c := locatedStop(t, 0, 1)
		d := locatedStop(t, 0, 2)

		got, err := planner.Optimize([]services.Stop{a, b, c, d})

		require.NoError(t, err)
		assert.Equal(t, ids([]services.Stop{a, c, d, b}), ids(got))
	})

	t.Run("should break distance ties by original position", func(t *testing.T) {
		anchor := locatedStop(t, 0, 0)
		east := locatedStop(t, 0, 1)
		west := locatedStop(t, 0, -1)

		got, err := planner.Optimize([]services.Stop{anchor, east, west})

		require.NoError(t, err)
		// east and west are equidistant from the anchor; east came first.
		assert.Equal(t, ids([]services.Stop{anchor, east, west}), ids(got))
	})

	t.Run("should append coordinate-less stops in their relative order", func(t *testing.T) {
		a := locatedStop(t, 0, 0)
		x := unlocatedStop()
		b := locatedStop(t, 0, 1)
		y := unlocatedStop()

		got, err := planner.Optimize([]services.Stop{x, a, y, b})

		require.NoError(t, err)
		assert.Equal(t, ids([]services.Stop{a, b, x, y}), ids(got))
	})

	t.Run("should return a permutation of the input", func(t *testing.T) {
		stops := []services.Stop{
			locatedStop(t, -23.55, -46.63),
			locatedStop(t, -23.52, -46.60),
			locatedStop(t, -23.58, -46.68),
			unlocatedStop(),
		}

		got, err := planner.Optimize(stops)

		require.NoError(t, err)
		require.Len(t, got, len(stops))
		seen := make(map[kernel.UUID]bool)
		for _, s := range got {
			seen[s.DeliveryID] = true
		}
		for _, s := range stops {
			assert.True(t, seen[s.DeliveryID])
		}
	})

	t.Run("should be idempotent on an already optimal route", func(t *testing.T) {
		stops := []services.Stop{
			locatedStop(t, 0, 0),
			locatedStop(t, 0, 1),
			locatedStop(t, 0, 2),
		}

		once, err := planner.Optimize(stops)
		require.NoError(t, err)
		twice, err := planner.Optimize(once)
		require.NoError(t, err)

		assert.Equal(t, ids(once), ids(twice))
	})

	t.Run("should handle empty and all-unlocated inputs", func(t *testing.T) {
		got, err := planner.Optimize(nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		x := unlocatedStop()
		y := unlocatedStop()
		got, err = planner.Optimize([]services.Stop{x, y})
		require.NoError(t, err)
		assert.Equal(t, ids([]services.Stop{x, y}), ids(got))
	})

	t.Run("should reject an improperly constructed point", func(t *testing.T) {
		_, err := planner.Optimize([]services.Stop{
			{DeliveryID: kernel.NewUUID(), Point: &kernel.GeoPoint{}},
		})

		require.Error(t, err)
	})
}

func TestRoutePlanner_ComputeStats(t *testing.T) {
	planner := services.NewRoutePlanner()

	t.Run("should compute distance and minutes for two stops one degree apart", func(t *testing.T) {
		stops := []services.Stop{
			locatedStop(t, 0, 0),
			locatedStop(t, 0, 1),
		}

		stats, err := planner.ComputeStats(stops)

		require.NoError(t, err)
		// One degree of longitude at the equator is ~111.19 km.
		assert.InDelta(t, 111.19, stats.DistanceKm, 0.5)
		// round(2*2 + 111.19/30*60) = 226
		assert.Equal(t, 226, stats.EstimatedMinutes)
	})

	t.Run("should skip coordinate-less stops entirely", func(t *testing.T) {
		withGap := []services.Stop{
			locatedStop(t, 0, 0),
			unlocatedStop(),
			locatedStop(t, 0, 1),
		}
		without := []services.Stop{withGap[0], withGap[2]}

		a, err := planner.ComputeStats(withGap)
		require.NoError(t, err)
		b, err := planner.ComputeStats(without)
		require.NoError(t, err)

		assert.Equal(t, b.DistanceKm, a.DistanceKm)
		assert.Equal(t, b.EstimatedMinutes, a.EstimatedMinutes)
	})

	t.Run("should report zero distance for fewer than two located stops", func(t *testing.T) {
		stats, err := planner.ComputeStats([]services.Stop{locatedStop(t, 10, 10)})

		require.NoError(t, err)
		assert.Equal(t, 0.0, stats.DistanceKm)
		assert.Equal(t, 2, stats.EstimatedMinutes)

		empty, err := planner.ComputeStats(nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, empty.DistanceKm)
		assert.Equal(t, 0, empty.EstimatedMinutes)
	})

	t.Run("should sum consecutive legs", func(t *testing.T) {
		stops := []services.Stop{
			locatedStop(t, 0, 0),
			locatedStop(t, 0, 1),
			locatedStop(t, 0, 2),
		}

		stats, err := planner.ComputeStats(stops)

		require.NoError(t, err)
		assert.InDelta(t, 222.39, stats.DistanceKm, 1.0)
	})
}
