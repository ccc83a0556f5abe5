package hll

import (
	"math"
	"math/bits"
)

// Hll is a probabilistic set of hashed elements.  It estimates the number of
// distinct items that have been added to it using a fixed array of 2^p
// registers, each holding the largest rank observed among the items that hash
// to it.
//
// The zero value is not usable; operations on it panic as it would be a coding
// error to attempt operations without first constructing the Hll via New or
// NewHll.  An Hll is not safe for concurrent use.  Copies of an Hll share the
// same registers.
type Hll struct {
	settings *settings
	storage  denseStorage
}

// New creates a new Hll with 2^precision registers, the default rank function
// and hasher, and no small range correction.  It returns an error wrapping
// ErrInvalidPrecision if precision is out of range.
func New(precision int) (Hll, error) {
	return NewHll(Settings{Precision: precision})
}

// NewHll creates a new Hll with the provided settings.  It will return an error
// if the settings are invalid.
func NewHll(s Settings) (Hll, error) {

	settings, err := s.toInternal()
	if err != nil {
		return Hll{}, err
	}

	return Hll{settings: settings, storage: newDenseStorage(settings)}, nil
}

// Settings returns the Settings for this Hll.
func (h *Hll) Settings() Settings {
	h.initOrPanic()
	return h.settings.toExternal()
}

// Precision returns the number of hash bits used to select a register.
func (h *Hll) Precision() int {
	h.initOrPanic()
	return h.settings.precision
}

// RegisterCount returns the number of registers, always 2^Precision.
func (h *Hll) RegisterCount() int {
	h.initOrPanic()
	return h.settings.registerCount
}

// Add hashes item with the configured Hasher and adds it to the Hll.
func (h *Hll) Add(item []byte) {
	h.initOrPanic()
	h.AddRaw(h.settings.hasher.Sum64(item, 0))
}

// AddString is a convenience wrapper around Add.
func (h *Hll) AddString(item string) {
	h.Add([]byte(item))
}

// AddRaw adds an already hashed value into the Hll.  The value is expected to
// have been hashed with a good hash function such as Murmur3 or xxHash.  If
// the value does not have sufficient entropy, then the resulting cardinality
// estimations will not be accurate.
//
// The low Precision bits select the register.  The remaining high bits are
// the remainder from which the rank is computed, so index selection and rank
// never share bits.
func (h *Hll) AddRaw(value uint64) {

	h.initOrPanic()

	// NOTE:  no +1 as in paper since 0-based indexing
	i := int(value & h.settings.mBitsMask)
	remainder := value >> uint(h.settings.precision)

	h.storage.setIfGreater(h.settings, i, rank(h.settings, remainder))
}

// rank computes the register value for a remainder of 64 - precision bits.
// The result is in [1, maxRank].  A zero remainder yields the largest rank the
// remainder width allows, capped to maxRank.
func rank(settings *settings, remainder uint64) byte {

	var r int
	switch settings.rank {
	case TrailingZeros:
		// following documentation courtesy of the java implementation:
		//
		// By construction of pwMaxMask,
		//      lsb(pwMaxMask) = 2^(registerValueInBits) - 2,
		// thus lsb(any_long | pwMaxMask) <= 2^(registerValueInBits) - 2,
		// thus 1 + lsb(any_long | pwMaxMask) <= 2^(registerValueInBits) -1.
		if remainder == 0 {
			r = 64 - settings.precision + 1
		} else {
			r = 1 + bits.TrailingZeros64(remainder|settings.pwMaxMask)
		}
	default:
		// the remainder occupies the low 64 - precision bits, so the top
		// precision leading zeros are not part of it.  a zero remainder
		// counts as 64 - precision zeros.
		r = bits.LeadingZeros64(remainder) - settings.precision + 1
	}

	if r > int(settings.maxRank) {
		return settings.maxRank
	}
	return byte(r)
}

// Count estimates the number of distinct values that have been added to this
// Hll.  It does not modify the Hll.
//
// The estimate is the raw HyperLogLog estimator alpha_m * m^2 / Z truncated
// toward zero, where Z is the sum of 2^-M[j] over every register.  An Hll with
// no items returns 0.  Linear counting replaces the raw estimate in the small
// range only when Settings.SmallRangeCorrection is set.  There is no large
// range correction: with 64 bit hashes the hash space never saturates at
// realistic cardinalities.
func (h *Hll) Count() uint64 {

	h.initOrPanic()

	sum, numberOfZeroes /*"V" in the paper*/ := h.storage.indicator(h.settings)

	m := h.settings.registerCount
	if numberOfZeroes == m {
		return 0
	}

	// apply the estimate and correction to the indicator function
	estimator := h.settings.alphaMSquared / sum

	if h.settings.smallRange && numberOfZeroes != 0 && estimator <= h.settings.smallEstimatorCutoff {
		// following documentation courtesy of the java implementation:
		// The "small range correction" formula from the HyperLogLog
		// algorithm. Only appropriate if both the estimator is smaller than
		// (5/2) * m and there are still registers that have the zero value.
		return uint64(linearCounting(m, numberOfZeroes))
	}

	if estimator >= maxEstimate {
		return math.MaxUint64
	}

	return uint64(estimator)
}

// maxEstimate is 2^64.  a saturated Hll at low precision can produce a raw
// estimate beyond what a uint64 holds.
const maxEstimate = float64(math.MaxUint64)

// initOrPanic panics if the operation is being evaluated against an Hll that
// was not created by New or NewHll.
func (h *Hll) initOrPanic() {
	if h.settings == nil {
		panic("attempted operation on uninitialized Hll")
	}
}
