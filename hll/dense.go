package hll

// denseStorage packs every register value back to back in uint64 words,
// regwidth bits each, most significant bit first.  A register may straddle
// two words.  The slice is allocated at its final length and never grows.
type denseStorage []uint64

// newDenseStorage allocates a new instance with sufficient space to store all
// of the register values.
func newDenseStorage(settings *settings) denseStorage {
	bytes := divideBy8RoundUp(settings.registerCount * settings.regwidth)
	return make(denseStorage, divideBy8RoundUp(bytes))
}

// copy returns a deep copy of the registers.
func (s denseStorage) copy() denseStorage {
	o := make(denseStorage, len(s))
	copy(o, s)
	return o
}

// locate returns the word holding the first bit of register regnum and the
// number of bits in that word below the register's last bit.  A negative
// shift means the register spills -shift bits into the next word.
func locate(regnum, regwidth int) (word, shift int) {
	bit := regnum * regwidth
	return bit >> 6, 64 - (bit & 0x3f) - regwidth
}

func (s denseStorage) read(regnum int, settings *settings) uint64 {
	word, shift := locate(regnum, settings.regwidth)
	if shift >= 0 {
		return (s[word] >> uint(shift)) & settings.valueMask
	}

	spill := uint(-shift)
	return (s[word]<<spill | s[word+1]>>(64-spill)) & settings.valueMask
}

func (s denseStorage) write(regnum int, settings *settings, value uint64) {
	mask := settings.valueMask
	value &= mask

	word, shift := locate(regnum, settings.regwidth)
	if shift >= 0 {
		s[word] = s[word]&^(mask<<uint(shift)) | value<<uint(shift)
		return
	}

	// high bits finish the first word, low bits start the next one.
	spill := uint(-shift)
	s[word] = s[word]&^(mask>>spill) | value>>spill
	s[word+1] = s[word+1]&^(mask<<(64-spill)) | value<<(64-spill)
}

// setIfGreater raises register regnum to value.  It is the only mutation a
// register ever sees, so register values never decrease.
func (s denseStorage) setIfGreater(settings *settings, regnum int, value byte) {
	if uint64(value) > s.read(regnum, settings) {
		s.write(regnum, settings, uint64(value))
	}
}

// get extracts a single register value.
func (s denseStorage) get(settings *settings, regnum int) byte {
	return byte(s.read(regnum, settings))
}

// indicator computes Z = sum of 2^(-M[j]) over every register j, along with
// V, the number of registers that are still zero.
func (s denseStorage) indicator(settings *settings) (float64, int) {
	sum := float64(0)
	numberOfZeros := 0

	for i := 0; i < settings.registerCount; i++ {
		value := s.read(i, settings)

		sum += 1.0 / float64(uint64(1)<<value)
		if value == 0 {
			numberOfZeros++
		}
	}

	return sum, numberOfZeros
}
