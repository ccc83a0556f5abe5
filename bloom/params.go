package bloom

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates the bit count and number of hash functions that
// minimize the false positive rate for the expected number of items.
func OptimalParams(expectedItems uint64, fpRate float64) (size uint64, k uint32) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 || math.IsNaN(fpRate) {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits: -n * ln(fpRate) / ln(2)^2
	size = uint64(math.Ceil(-float64(expectedItems) * math.Log(fpRate) / ln2Squared))
	if size == 0 {
		size = 1
	}

	// Optimal k: (m/n) * ln(2)
	k = uint32(math.Round(float64(size) / float64(expectedItems) * ln2))
	if k < 1 {
		k = 1
	}

	return size, k
}

// EstimateFalsePositiveRate estimates the false positive rate for given parameters.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(size uint64, k uint32, itemsAdded uint64) float64 {
	m := float64(size)
	n := float64(itemsAdded)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}
