package ghcnd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationsForCountry(t *testing.T) {
	t.Run("single territory", func(t *testing.T) {
		ref := &fakeRef{
			territories: map[string][]string{"US": {"US"}},
			stations: map[string][]string{
				"US": {"USC00000001", "USC00000002", "USC00000003"},
			},
		}
		resolver := NewStationResolver(ref)

		stations, err := resolver.StationsForCountry("US")

		require.NoError(t, err)
		assert.Equal(t, []string{"USC00000001", "USC00000002", "USC00000003"}, stations)
	})

	t.Run("unknown country", func(t *testing.T) {
		resolver := NewStationResolver(&fakeRef{territories: map[string][]string{}})

		stations, err := resolver.StationsForCountry("ZZ")

		require.Error(t, err)
		var unknown *UnknownCountryError
		assert.True(t, errors.As(err, &unknown))
		assert.Equal(t, "ZZ", unknown.Country)
		assert.Nil(t, stations)
	})

	t.Run("territory without stations is skipped", func(t *testing.T) {
		ref := &fakeRef{
			territories: map[string][]string{"FR": {"FR", "FG", "RE"}},
			stations: map[string][]string{
				"FR": {"FR000000001"},
				"RE": {"RE000000001", "RE000000002"},
			},
		}
		resolver := NewStationResolver(ref)

		stations, err := resolver.StationsForCountry("FR")

		require.NoError(t, err)
		assert.Equal(t, []string{"FR000000001", "RE000000001", "RE000000002"}, stations)
	})

	t.Run("duplicates across territories are preserved", func(t *testing.T) {
		ref := &fakeRef{
			territories: map[string][]string{"US": {"US", "AQ"}},
			stations: map[string][]string{
				"US": {"USC00000001", "SHARED00001"},
				"AQ": {"SHARED00001", "AQC00000001"},
			},
		}
		resolver := NewStationResolver(ref)

		stations, err := resolver.StationsForCountry("US")

		require.NoError(t, err)
		assert.Equal(t, []string{"USC00000001", "SHARED00001", "SHARED00001", "AQC00000001"}, stations)
	})

	t.Run("no stations at all", func(t *testing.T) {
		ref := &fakeRef{territories: map[string][]string{"PL": {"PL"}}}
		resolver := NewStationResolver(ref)

		stations, err := resolver.StationsForCountry("PL")

		require.NoError(t, err)
		assert.Empty(t, stations)
	})
}
