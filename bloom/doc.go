// Package bloom provides a Bloom filter for probabilistic membership tests.
//
// A Bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set.  False positive matches are
// possible, but false negatives are not: if the filter says an element is not
// present, it definitely is not.  If it says an element might be present, it
// could be a false positive, with a probability that rises as more items are
// added and the bit array fills.
//
// # Hashing
//
// Each operation evaluates k hash functions, taken from a single
// [hashing.Hasher] seeded with 0..k-1.  Every hash is reduced modulo the
// filter size with unsigned arithmetic, so every index is in [0, size)
// whatever the sign of the hash when read as a two's-complement integer.
//
// # Sizing
//
// [New] takes the bit count and hash count directly.  [NewWithEstimates]
// derives them from an expected item count and target false positive rate
// via [OptimalParams].
//
// # Thread Safety
//
// A [Filter] is not safe for concurrent use.  Wrap it with a sync.RWMutex if
// it is shared between goroutines.
//
// Filters support neither deletion nor merging, and are not serialized.
package bloom
