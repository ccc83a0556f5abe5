// Package hashing provides the seeded 64 bit hash families consumed by the
// hll and bloom packages.  Both structures take a Hasher so that tests can
// inject a deterministic function and deployments can pick the hash they
// trust.  Changing the hash changes accuracy characteristics, never the API
// contract of the structures built on top of it.
package hashing

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher maps an arbitrary byte sequence and a seed to a 64 bit value.
// Implementations must be deterministic and should have good avalanche
// properties: every output bit is consumed by the estimator.
type Hasher interface {
	Sum64(data []byte, seed uint32) uint64
}

// Func adapts an ordinary function to the Hasher interface.
type Func func(data []byte, seed uint32) uint64

// Sum64 calls f(data, seed).
func (f Func) Sum64(data []byte, seed uint32) uint64 {
	return f(data, seed)
}

// Murmur3 is the 64 bit half of MurmurHash3 x64_128.
type Murmur3 struct{}

func (Murmur3) Sum64(data []byte, seed uint32) uint64 {
	return murmur3.Sum64WithSeed(data, seed)
}

// XXH3 is the 64 bit XXH3 hash.
type XXH3 struct{}

func (XXH3) Sum64(data []byte, seed uint32) uint64 {
	if seed == 0 {
		return xxh3.Hash(data)
	}
	return xxh3.HashSeed(data, uint64(seed))
}

// XXHash is the 64 bit xxHash (XXH64).
type XXHash struct{}

func (XXHash) Sum64(data []byte, seed uint32) uint64 {
	if seed == 0 {
		return xxhash.Sum64(data)
	}

	d := xxhash.NewWithSeed(uint64(seed))
	// Digest.Write never returns an error.
	_, _ = d.Write(data)
	return d.Sum64()
}

// Default returns the hasher used when none is configured.
func Default() Hasher {
	return Murmur3{}
}
