package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources(t *testing.T) {
	t.Run("add and sub drop zero entries", func(t *testing.T) {
		r := Resources{"LUT": 10}
		r.Add(Resources{"LUT": 5, "BRAM": 2})
		assert.Equal(t, Resources{"LUT": 15, "BRAM": 2}, r)

		r.Sub(Resources{"BRAM": 2})
		assert.Equal(t, Resources{"LUT": 15}, r)
		assert.Equal(t, int64(15), r.Total())
	})

	t.Run("string is sorted", func(t *testing.T) {
		assert.Equal(t, "{BRAM:4, LUT:60}", Resources{"LUT": 60, "BRAM": 4}.String())
		assert.Equal(t, "{}", Resources{}.String())
	})

	t.Run("equal ignores zero entries", func(t *testing.T) {
		assert.True(t, Resources{"LUT": 1}.Equal(Resources{"LUT": 1}))
		assert.False(t, Resources{"LUT": 1}.Equal(Resources{"LUT": 2}))
		assert.False(t, Resources{"LUT": 1}.Equal(Resources{"LUT": 1, "DSP": 3}))
	})

	t.Run("parse list", func(t *testing.T) {
		r, err := ParseList([]string{"LUT=60", "BRAM=4", "LUT=5"})
		require.NoError(t, err)
		assert.Equal(t, Resources{"LUT": 65, "BRAM": 4}, r)

		_, err = ParseList([]string{"LUT"})
		assert.Error(t, err)
		_, err = ParseList([]string{"LUT=-1"})
		assert.Error(t, err)
		_, err = ParseList([]string{"LUT=abc"})
		assert.Error(t, err)
	})

	t.Run("amounts are bounded", func(t *testing.T) {
		_, err := ParseAmount("9223372036854775807")
		assert.ErrorContains(t, err, "exceeds")
		v, err := ParseAmount("9007199254740992")
		require.NoError(t, err)
		assert.Equal(t, MaxAmount, v)
		_, err = ParseList([]string{"LUT=9007199254740992", "LUT=1"})
		assert.ErrorContains(t, err, "exceeds")
	})

	t.Run("add saturates", func(t *testing.T) {
		r := Resources{"LUT": 1 << 62}
		r.Add(Resources{"LUT": 1 << 62})
		assert.Equal(t, int64(math.MaxInt64), r["LUT"])
		r.Add(Resources{"LUT": 1})
		assert.Equal(t, int64(math.MaxInt64), r["LUT"])

		n := Resources{"LUT": math.MinInt64 + 1}
		n.Add(Resources{"LUT": -2})
		assert.Equal(t, int64(math.MinInt64), n["LUT"])
	})
}

func TestLedgerRejectsHugeAndNegativeDemand(t *testing.T) {
	l := New()
	require.NoError(t, l.Register("F1", Resources{"LUT": 100}))
	require.NoError(t, l.Reserve("F1", Resources{"LUT": 60}))

	for _, demand := range []Resources{
		{"LUT": math.MaxInt64},
		{"LUT": math.MaxInt64 - 59},
		{"LUT": -10},
	} {
		assert.False(t, l.CanFit("F1", demand), demand.String())
		assert.ErrorIs(t, l.Reserve("F1", demand), ErrInsufficientCapacity, demand.String())
	}
	assert.Equal(t, Resources{"LUT": 60}, l.Consumed("F1"))
}

func TestLedgerReserveRelease(t *testing.T) {
	l := New()
	require.NoError(t, l.Register("F1", Resources{"LUT": 100, "BRAM": 10}))

	assert.True(t, l.CanFit("F1", Resources{"LUT": 60}))
	require.NoError(t, l.Reserve("F1", Resources{"LUT": 60, "BRAM": 2}))

	t.Run("overcommit is rejected without partial effect", func(t *testing.T) {
		assert.False(t, l.CanFit("F1", Resources{"LUT": 30, "BRAM": 9}))
		err := l.Reserve("F1", Resources{"LUT": 30, "BRAM": 9})
		require.ErrorIs(t, err, ErrInsufficientCapacity)
		assert.Equal(t, Resources{"LUT": 60, "BRAM": 2}, l.Consumed("F1"))
	})

	t.Run("resource the fpga lacks does not fit", func(t *testing.T) {
		assert.False(t, l.CanFit("F1", Resources{"DSP": 1}))
		assert.True(t, l.CanFit("F1", Resources{"DSP": 0}))
	})

	t.Run("unknown fpga", func(t *testing.T) {
		assert.False(t, l.CanFit("F9", Resources{}))
		assert.ErrorIs(t, l.Reserve("F9", Resources{}), ErrUnknownFPGA)
	})

	t.Run("utilization", func(t *testing.T) {
		util := l.UtilizationOf("F1")
		assert.InDelta(t, 0.6, util["LUT"], 1e-9)
		assert.InDelta(t, 0.2, util["BRAM"], 1e-9)
		assert.InDelta(t, 0.4, l.AverageUtilization("F1", nil), 1e-9)
		assert.InDelta(t, 0.5, l.AverageUtilization("F1", Resources{"LUT": 20}), 1e-9)
	})

	t.Run("release never goes negative", func(t *testing.T) {
		err := l.Release("F1", Resources{"LUT": 61})
		require.ErrorIs(t, err, ErrOverRelease)
		require.NoError(t, l.Release("F1", Resources{"LUT": 60, "BRAM": 2}))
		assert.Equal(t, int64(0), l.Consumed("F1").Total())
	})
}

func TestLedgerCapacityChanges(t *testing.T) {
	l := New()
	require.NoError(t, l.Register("F1", Resources{"LUT": 100}))
	require.ErrorIs(t, l.Register("F1", Resources{}), ErrDuplicateFPGA)
	require.NoError(t, l.Reserve("F1", Resources{"LUT": 80}))

	err := l.SetCapacity("F1", Resources{"LUT": 50})
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, Resources{"LUT": 100}, l.Capacity("F1"))

	require.NoError(t, l.SetCapacity("F1", Resources{"LUT": 90, "DSP": 4}))
	assert.Equal(t, Resources{"LUT": 10, "DSP": 4}, l.Remaining("F1"))

	assert.Error(t, l.Unregister("F1"))
	require.NoError(t, l.Rename("F1", "F2"))
	assert.Nil(t, l.Capacity("F1"))
	assert.Equal(t, []string{"F2"}, l.FPGAs())

	clone := l.Clone()
	require.NoError(t, clone.Release("F2", Resources{"LUT": 80}))
	assert.Equal(t, Resources{"LUT": 80}, l.Consumed("F2"))
	require.NoError(t, clone.Unregister("F2"))
}
