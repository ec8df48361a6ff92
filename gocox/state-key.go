package gocox

import (
	"bytes"
	"encoding/binary"
	"io"
)

// StateKey is a canonical binary encoding of a numbers game state vector.
//
// Two elements of the same Coxeter system are equal iff their StateKeys are byte-equal.
type StateKey []byte

// StateKeyBuf is scratch space large enough for the StateKey of any supported system.
type StateKeyBuf [MaxGenerators * binary.MaxVarintLen64]byte

// AppendStateKey appends the canonical encoding of state to out, returning it as a StateKey.
func AppendStateKey(out []byte, state []int) StateKey {
	var scrap [binary.MaxVarintLen64]byte

	key := out
	for _, Si := range state {
		n := binary.PutVarint(scrap[:], int64(Si))
		key = append(key, scrap[:n]...)
	}
	return key
}

// DecodeState appends the state vector encoded in this key to dst.
func (key StateKey) DecodeState(dst []int) ([]int, error) {
	rdr := bytes.NewReader(key)
	for rdr.Len() > 0 {
		Si, err := binary.ReadVarint(rdr)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = ErrBadKey
			}
			return dst, err
		}
		dst = append(dst, int(Si))
	}
	return dst, nil
}
