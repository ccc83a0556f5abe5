// Package hll estimates the number of distinct items in a stream with the
// HyperLogLog algorithm.  An Hll keeps 2^p small registers; each item is
// hashed, the low p bits of the hash select a register and the remaining bits
// yield a rank that the register keeps the maximum of.  The harmonic mean of
// the registers gives the estimate, with a standard error of about
// 1.04/sqrt(2^p).
//
// Hlls cannot be merged, serialized or have items removed.
package hll
