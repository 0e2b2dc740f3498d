package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatMap(t *testing.T) {
	t.Run("row-major deterministic layout", func(t *testing.T) {
		first := GenerateSeatMap(3, 4, nil)
		second := GenerateSeatMap(3, 4, nil)
		require.Equal(t, first, second)

		require.Len(t, first, 12)
		assert.Equal(t, Seat{Row: "A", Number: 1, Tier: SeatTierVIP}, first[0])
		assert.Equal(t, Seat{Row: "A", Number: 4, Tier: SeatTierVIP}, first[3])
		assert.Equal(t, Seat{Row: "B", Number: 1, Tier: SeatTierVIP}, first[4])
		assert.Equal(t, Seat{Row: "C", Number: 4, Tier: SeatTierRegular}, first[11])
	})

	t.Run("default tier rule marks first two rows vip", func(t *testing.T) {
		seats := GenerateSeatMap(4, 1, nil)
		assert.Equal(t, SeatTierVIP, seats[0].Tier)
		assert.Equal(t, SeatTierVIP, seats[1].Tier)
		assert.Equal(t, SeatTierRegular, seats[2].Tier)
		assert.Equal(t, SeatTierRegular, seats[3].Tier)
	})

	t.Run("caps layouts at 26 rows", func(t *testing.T) {
		seats := GenerateSeatMap(30, 2, nil)
		assert.Len(t, seats, 52)
		assert.Equal(t, "Z", seats[len(seats)-1].Row)
	})

	t.Run("custom tier rule", func(t *testing.T) {
		allVIP := func(string) SeatTier { return SeatTierVIP }
		for _, seat := range GenerateSeatMap(3, 3, allVIP) {
			assert.Equal(t, SeatTierVIP, seat.Tier)
		}
	})
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "A5", Seat{Row: "A", Number: 5}.Label())
	assert.Equal(t, "J12", Seat{Row: "J", Number: 12}.Label())
}

func TestTierPrice(t *testing.T) {
	assert.Equal(t, 250.0, TierPrice(SeatTierRegular, 250, 1.5))
	assert.Equal(t, 375.0, TierPrice(SeatTierVIP, 250, 1.5))
}
