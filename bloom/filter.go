package bloom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/segmentio/go-sketch/hashing"
)

// ErrInvalidParameters is returned when a filter is constructed with a
// non-positive size or hash count.
var ErrInvalidParameters = errors.New("bloom: invalid parameters")

// Filter is a non-thread-safe Bloom filter over a fixed array of bits.
//
// The zero value is not usable; operations on it panic.  Construct a Filter
// with New, NewWithHasher or NewWithEstimates.
type Filter struct {
	bits   *bitset.BitSet // fixed at size bits, never grown
	size   uint64         // Total number of bits
	k      uint32         // Number of hash functions
	hasher hashing.Hasher // Seeded with 0..k-1
	count  uint64         // Number of Add calls
}

// New creates a filter of size bits probed by numHashes hash functions, using
// the default hasher.
func New(size, numHashes int) (*Filter, error) {
	return NewWithHasher(size, numHashes, hashing.Default())
}

// NewWithHasher creates a filter of size bits probed by numHashes seeded
// evaluations of hasher.  A nil hasher selects the default.
func NewWithHasher(size, numHashes int, hasher hashing.Hasher) (*Filter, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameters, "size must be positive, got %d", size)
	}
	if numHashes <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameters, "hash count must be positive, got %d", numHashes)
	}
	if uint64(numHashes) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrInvalidParameters, "hash count too large, got %d", numHashes)
	}
	if hasher == nil {
		hasher = hashing.Default()
	}

	return &Filter{
		bits:   bitset.New(uint(size)),
		size:   uint64(size),
		k:      uint32(numHashes),
		hasher: hasher,
	}, nil
}

// NewWithEstimates creates a filter sized for the expected number of items
// and desired false positive rate.
func NewWithEstimates(expectedItems uint64, fpRate float64) (*Filter, error) {
	size, k := OptimalParams(expectedItems, fpRate)
	if size > math.MaxInt {
		return nil, errors.Wrapf(ErrInvalidParameters, "%d items at rate %g needs %d bits", expectedItems, fpRate, size)
	}
	return New(int(size), int(k))
}

// location returns the bit index probed by the i'th hash function.
func (f *Filter) location(data []byte, i uint32) uint {
	return uint(f.hasher.Sum64(data, i) % f.size)
}

// Add adds data to the bloom filter.  Adding the same data again has no
// further effect on the bits.
func (f *Filter) Add(data []byte) {
	f.initOrPanic()
	for i := uint32(0); i < f.k; i++ {
		f.bits.Set(f.location(data, i))
	}

	f.count++
}

// AddString adds a string to the bloom filter.
func (f *Filter) AddString(s string) {
	f.Add([]byte(s))
}

// Contains checks if data might be in the bloom filter.
// Returns true if the data might be present (with false positive probability),
// or false if the data is definitely not present.
func (f *Filter) Contains(data []byte) bool {
	f.initOrPanic()
	for i := uint32(0); i < f.k; i++ {
		if !f.bits.Test(f.location(data, i)) {
			return false
		}
	}

	return true
}

// ContainsString checks if a string might be in the bloom filter.
func (f *Filter) ContainsString(s string) bool {
	return f.Contains([]byte(s))
}

// TestAndAdd reports whether data might have been in the filter, then adds
// it.
func (f *Filter) TestAndAdd(data []byte) bool {
	f.initOrPanic()
	present := true
	for i := uint32(0); i < f.k; i++ {
		loc := f.location(data, i)
		if !f.bits.Test(loc) {
			present = false
			f.bits.Set(loc)
		}
	}

	f.count++
	return present
}

// Cap returns the capacity of the filter in bits.
func (f *Filter) Cap() uint64 {
	return f.size
}

// K returns the number of hash functions used.
func (f *Filter) K() uint32 {
	return f.k
}

// Count returns the number of Add calls, including repeats.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	f.initOrPanic()
	return float64(f.bits.Count()) / float64(f.size)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.size, f.k, f.count)
}

// initOrPanic panics if the operation is being evaluated against a Filter that
// was not created by one of the constructors.
func (f *Filter) initOrPanic() {
	if f.bits == nil {
		panic("attempted operation on uninitialized Filter")
	}
}
