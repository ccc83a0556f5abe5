package hll

import "math"

func divideBy8RoundUp(i int) int {
	result := i >> 3
	if remainder := i & 0x7; remainder > 0 {
		result++
	}
	return result
}

// linearCounting estimates the cardinality from the number of registers that
// are still zero: m * ln(m/V).
func linearCounting(m, numberOfZeroes int) float64 {
	return float64(m) * math.Log(float64(m)/float64(numberOfZeroes))
}
