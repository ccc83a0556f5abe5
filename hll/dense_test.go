package hll

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_DenseSize(t *testing.T) {
	for p := minimumPrecision; p <= maximumPrecision; p++ {
		s, err := Settings{Precision: p}.toInternal()
		require.NoError(t, err)

		ds := newDenseStorage(s)
		words := (s.registerCount*registerWidth + 63) / 64
		assert.Equal(t, words, len(ds), "precision %d", p)
	}
}

func Test_DenseRegisters(t *testing.T) {

	tests := []struct {
		label     string
		rank      Rank
		values    []uint64
		registers map[int]int
	}{
		{
			label: "TrailingZeros",
			rank:  TrailingZeros,
			values: []uint64{
				0x0000000000000011, /*'j'=1*/
				0x0000000000000022, /*'j'=2*/
				0x0000000000000043, /*'j'=3*/
				0x0000000000000084, /*'j'=4*/
				0x0000000100000005, /*'j'=5*/
				// sanity checks to ensure that no other bits above the
				// lowest-set bit matters
				0x0000000300000006, /*'j'=6*/
				0x1000000100000007, /*'j'=7*/
				// zero remainder
				0x0000000000000008, /*'j'=8*/
			},
			registers: map[int]int{
				0: 0,
				1: 1,
				2: 2,
				3: 3,
				4: 4,
				5: 29,
				6: 29,
				7: 29,
				8: 61,
			},
		},
		{
			label: "LeadingZeros",
			rank:  LeadingZeros,
			values: []uint64{
				0x8000000000000001, /*'j'=1*/
				0x4000000000000002, /*'j'=2*/
				0x2000000000000003, /*'j'=3*/
				0x1000000000000004, /*'j'=4*/
				// sanity checks to ensure that no bits below the highest set
				// bit matter
				0x10000000000000f5, /*'j'=5*/
				0x0000000000000016, /*'j'=6*/
				// zero remainder
				0x0000000000000007, /*'j'=7*/
			},
			registers: map[int]int{
				0: 0,
				1: 1,
				2: 2,
				3: 3,
				4: 4,
				5: 4,
				6: 60,
				7: 61,
			},
		},
	}

	const precision = 4

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			hll := newHll(t, Settings{Precision: precision, Rank: tt.rank})

			for _, value := range tt.values {
				hll.AddRaw(value)
			}

			for regnum, value := range tt.registers {
				assert.Equal(t, byte(value), hll.storage.get(hll.settings, regnum), "register %d", regnum)
			}
		})
	}
}

// Test_DenseGet ensures that borders of 64 bit words are properly handled.  6
// bit registers straddle a word boundary every 32 registers.
func Test_DenseGet(t *testing.T) {
	for _, p := range []int{1, 2, 5, 7, 10} {
		t.Run(fmt.Sprint("Precision_", p), func(t *testing.T) {
			settings, err := Settings{Precision: p}.toInternal()
			require.NoError(t, err)

			ds := newDenseStorage(settings)
			for i := 0; i < settings.registerCount; i++ {
				ds.setIfGreater(settings, i, byte(i%64))
			}
			for i := 0; i < settings.registerCount; i++ {
				require.Equal(t, byte(i%64), ds.get(settings, i), "loop: %d", i)
			}
		})
	}
}

// Test_DenseSetIfGreater_Neighbors ensures writes never bleed into the
// adjacent registers, including across word boundaries.
func Test_DenseSetIfGreater_Neighbors(t *testing.T) {
	settings, err := Settings{Precision: 7}.toInternal()
	require.NoError(t, err)

	for regnum := 0; regnum < settings.registerCount; regnum++ {
		ds := newDenseStorage(settings)
		ds.setIfGreater(settings, regnum, 63)

		for other := 0; other < settings.registerCount; other++ {
			expected := byte(0)
			if other == regnum {
				expected = 63
			}
			require.Equal(t, expected, ds.get(settings, other), "set %d, read %d", regnum, other)
		}

		// smaller and equal values are ignored.
		ds.setIfGreater(settings, regnum, 12)
		ds.setIfGreater(settings, regnum, 63)
		require.Equal(t, byte(63), ds.get(settings, regnum))
	}
}

func Test_DenseIndicator(t *testing.T) {
	settings, err := Settings{Precision: 6}.toInternal()
	require.NoError(t, err)

	ds := newDenseStorage(settings)

	sum, zeros := ds.indicator(settings)
	assert.Equal(t, float64(64), sum)
	assert.Equal(t, 64, zeros)

	expected := float64(0)
	for i := 0; i < settings.registerCount; i++ {
		value := byte(i % 8)
		ds.setIfGreater(settings, i, value)
		expected += 1.0 / float64(uint64(1)<<value)
	}

	sum, zeros = ds.indicator(settings)
	assert.Equal(t, expected, sum)
	assert.Equal(t, 8, zeros)
}

func Test_DenseCopy(t *testing.T) {
	settings, err := Settings{Precision: 4}.toInternal()
	require.NoError(t, err)

	ds := newDenseStorage(settings)
	ds.setIfGreater(settings, 3, 9)

	cp := ds.copy()
	ds.setIfGreater(settings, 3, 10)

	assert.Equal(t, byte(9), cp.get(settings, 3))
	assert.Equal(t, byte(10), ds.get(settings, 3))
}
