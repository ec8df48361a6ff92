package libcox

import "strconv"

const maskChunkBits = 32

// Masks iterates over all 2^L binary masks of a word of length L, in increasing numeric order.
//
// Bit i of the current mask selects position i of the word.  Exhausted() returns false for the
// all-ones mask the first time it is seen and latches, so the caller sees every mask exactly once:
//
//	for masks := NewMasks(L); !masks.Exhausted(); masks.Next() {
//	    ...
//	}
type Masks struct {
	chunks    []uint32
	length    int
	exhausted bool
}

// NewMasks returns a Masks positioned at the all-zero mask.
func NewMasks(length int) *Masks {
	return &Masks{
		chunks: make([]uint32, length/maskChunkBits+1),
		length: length,
	}
}

// Len returns the word length these masks select from.
func (m *Masks) Len() int {
	return m.length
}

// Next advances to the next mask (ripple-carry increment over the chunks).
func (m *Masks) Next() {
	i := 0
	for m.chunks[i] == ^uint32(0) {
		m.chunks[i] = 0
		i++
	}
	m.chunks[i]++
}

// Value returns the bit (0 or 1) of the current mask at the given position.
func (m *Masks) Value(pos int) int {
	return int((m.chunks[pos/maskChunkBits] >> uint(pos%maskChunkBits)) & 1)
}

// Proper returns true if the current mask has at least one 0 bit (it is not the full mask).
func (m *Masks) Proper() bool {
	for i := 0; i < m.length; i++ {
		if m.Value(i) == 0 {
			return true
		}
	}
	return false
}

// Exhausted returns true once every mask has been visited.
//
// A zero-length Masks is exhausted immediately.  When the current mask is all ones, the
// exhausted flag latches and false is returned, so the full mask is still processed.
func (m *Masks) Exhausted() bool {
	if m.length == 0 {
		return true
	}
	if !m.Proper() {
		m.exhausted = true
		return false
	}
	return m.exhausted
}

// AppendString appends the current mask as "( 0 1 1 )" to dst.
// The separator following position i is replaced with 'd' for each i where defect(i) is true.
func (m *Masks) AppendString(dst []byte, defect func(pos int) bool) []byte {
	dst = append(dst, '(', ' ')
	for i := 0; i < m.length; i++ {
		dst = strconv.AppendInt(dst, int64(m.Value(i)), 10)
		if defect != nil && defect(i) {
			dst = append(dst, 'd')
		} else {
			dst = append(dst, ' ')
		}
	}
	return append(dst, ')')
}

// String returns the current mask as "( 0 1 1 )".
func (m *Masks) String() string {
	return string(m.AppendString(nil, nil))
}
