package hll

import (
	"github.com/pkg/errors"

	"github.com/segmentio/go-sketch/hashing"
)

const (
	// minimum and maximum values for the log-base-2 of the number of registers
	// in the Hll.  the maximum bounds memory at 2^18 registers of 6 bits each.
	minimumPrecision = 1
	maximumPrecision = 18

	// DefaultPrecision gives 4096 registers, roughly 1.6% standard error.
	DefaultPrecision = 12

	// registerWidth is the number of bits dedicated to each register value.
	// the largest rank a 64 bit hash can produce is 64, which is capped to the
	// largest value that fits.
	registerWidth = 6
)

// ErrInvalidPrecision is returned by New and NewHll when the precision is out
// of range.
var ErrInvalidPrecision = errors.New("invalid precision")

// ErrInvalidRank is returned by NewHll when Settings.Rank is not a known rank
// function.
var ErrInvalidRank = errors.New("invalid rank function")

// Rank selects the statistic computed from the remainder bits of a hash.
type Rank int

const (
	// LeadingZeros is the classical HyperLogLog rank: one plus the number of
	// zero bits before the first set bit, scanning the remainder from its
	// most significant end.
	LeadingZeros Rank = iota

	// TrailingZeros is one plus the number of zero bits below the lowest set
	// bit of the remainder.
	TrailingZeros
)

func (r Rank) String() string {
	switch r {
	case LeadingZeros:
		return "LeadingZeros"
	case TrailingZeros:
		return "TrailingZeros"
	default:
		return "Rank(?)"
	}
}

// Settings are used to configure the Hll.
type Settings struct {
	// Precision determines the number of registers in the Hll.  The minimum
	// value is 1 and the maximum value is 18.  The number of registers will
	// be calculated as 2^Precision.  There is no fallback for the zero value:
	// a Precision of 0 is rejected.
	Precision int

	// Rank selects the rank function.  The zero value is LeadingZeros.
	Rank Rank

	// SmallRangeCorrection enables linear counting when the raw estimate is
	// at most 5m/2 and some registers are still empty.  The raw estimator is
	// biased upward for cardinalities well below the register count, so this
	// should be enabled when such inputs are expected.  With it enabled Count
	// is not monotonic: it can drop when the estimate crosses 5m/2 or the
	// last empty register fills, as Count switches back to the raw estimator.
	SmallRangeCorrection bool

	// Hasher hashes items passed to Add and AddString.  When nil,
	// hashing.Default() is used.
	Hasher hashing.Hasher
}

type settings struct {
	precision, regwidth int
	registerCount       int
	rank                Rank
	smallRange          bool
	hasher              hashing.Hasher

	// pwMaxMask is a mask that prevents overflow of HyperLogLog registers.
	pwMaxMask uint64

	// mBitsMask is a precomputed mask where the bottom-most precision bits
	// are set.  it selects the register index from a hash.
	mBitsMask uint64

	// valueMask is a precomputed mask where the bottom-most regwidth bits are
	// set.
	valueMask uint64

	// maxRank is the largest value a register can hold.
	maxRank byte

	// alpha * m^2 (the constant in the "'raw' HyperLogLog estimator")
	alphaMSquared float64

	// smallEstimatorCutoff is the cutoff value of the estimator for using the
	// "small" range cardinality correction formula
	smallEstimatorCutoff float64
}

// toInternal translates Settings to settings, validating them in the process.
// This function will also compute the constant values used by the Hll
// calculations.
func (s Settings) toInternal() (*settings, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	hasher := s.Hasher
	if hasher == nil {
		hasher = hashing.Default()
	}

	m := 1 << uint(s.Precision)

	return &settings{
		precision:            s.Precision,
		regwidth:             registerWidth,
		registerCount:        m,
		rank:                 s.Rank,
		smallRange:           s.SmallRangeCorrection,
		hasher:               hasher,
		pwMaxMask:            pwMaxMask(registerWidth),
		mBitsMask:            uint64(m - 1),
		valueMask:            uint64((1 << uint(registerWidth)) - 1),
		maxRank:              byte((1 << uint(registerWidth)) - 1),
		alphaMSquared:        alphaMSquared(s.Precision),
		smallEstimatorCutoff: smallEstimatorCutoff(m),
	}, nil
}

// validate ensures that all of the settings in s are within bounds.  It will
// return an error if any of them are not.
func (s *Settings) validate() error {

	if s.Precision < minimumPrecision {
		return errors.Wrapf(ErrInvalidPrecision, "Precision is too small.  Requires at least %d but got %d", minimumPrecision, s.Precision)
	} else if s.Precision > maximumPrecision {
		return errors.Wrapf(ErrInvalidPrecision, "Precision is too large.  Allows at most %d but got %d", maximumPrecision, s.Precision)
	}

	if s.Rank != LeadingZeros && s.Rank != TrailingZeros {
		return errors.Wrapf(ErrInvalidRank, "Rank %d is not supported", int(s.Rank))
	}

	return nil
}

// toExternal translates the internal settings back to their exported version.
func (s *settings) toExternal() Settings {
	return Settings{
		Precision:            s.precision,
		Rank:                 s.rank,
		SmallRangeCorrection: s.smallRange,
		Hasher:               s.hasher,
	}
}

// pwMaxMask calculates the mask that is used to prevent overflow of HyperLogLog
// registers.  OR-ing it into a remainder caps the trailing zero count at
// maxRegisterValue - 1, so one plus that count still fits in a register.
func pwMaxMask(regwidth int) uint64 {
	maxRegisterValue := (1 << uint(regwidth)) - 1
	return ^((uint64(1) << uint(maxRegisterValue-1)) - 1)
}

// alphaMSquared calculates the 'alpha-m-squared' constant used by the raw
// HyperLogLog estimator.  alpha_m = 0.7213 / (1 + 1.079/m) is used for every
// register count.
func alphaMSquared(precision int) float64 {
	m := float64(int(1) << uint(precision))
	return (0.7213 / (1.0 + 1.079/m)) * m * m
}

// smallEstimatorCutoff calculates the cutoff below which the "small range
// correction" formula applies, based on the total number of registers (m).
func smallEstimatorCutoff(m int) float64 {
	return (float64(m) * 5) / 2
}
