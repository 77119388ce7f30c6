package sha2

import (
	"encoding"
	"errors"

	"github.com/codahale/sha2/internal/words"
)

// ErrInvalidState is returned by [Hasher.UnmarshalBinary] when the encoded state is malformed or belongs to a different
// variant, and by [Hasher.MarshalBinary] for a Hasher that was never initialized.
var ErrInvalidState = errors.New("sha2: invalid hash state")

const magic = "sha2"

// MarshalBinary encodes the Hasher's intermediate state, including buffered input, so that hashing can be resumed
// later with [Hasher.UnmarshalBinary].
//
// The encoding is magic || variant || hash words || buffer (zero-padded to the block size) || length.
func (h *Hasher) MarshalBinary() ([]byte, error) {
	if !h.v.Valid() {
		return nil, ErrInvalidState
	}
	return h.AppendBinary(make([]byte, 0, marshaledSize(h.v)))
}

// AppendBinary appends the encoding produced by [Hasher.MarshalBinary] to b.
func (h *Hasher) AppendBinary(b []byte) ([]byte, error) {
	if !h.v.Valid() {
		return nil, ErrInvalidState
	}
	b = append(b, magic...)
	b = append(b, byte(h.v))
	switch h.v {
	case SHA256:
		for _, w := range h.h32 {
			b = words.Append(b, w)
		}
	case SHA512:
		for _, w := range h.h64 {
			b = words.Append(b, w)
		}
	}
	b = append(b, h.buf[:h.nx]...)
	b = append(b, make([]byte, h.v.BlockSize()-h.nx)...)
	return words.Append(b, h.n), nil
}

// UnmarshalBinary restores state encoded by [Hasher.MarshalBinary]. A zero Hasher adopts the encoded variant; an
// initialized Hasher rejects state from a different variant.
func (h *Hasher) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic)+1 || string(b[:len(magic)]) != magic {
		return ErrInvalidState
	}

	v := Variant(b[len(magic)])
	if !v.Valid() || (h.v != 0 && h.v != v) || len(b) != marshaledSize(v) {
		return ErrInvalidState
	}

	b = b[len(magic)+1:]
	state, b := b[:8*wordSize(v)], b[8*wordSize(v):]
	bs := v.BlockSize()
	n := words.Load[uint64](b, bs)
	nx := int(n % uint64(bs))

	// Bytes past the buffered input must be zero padding.
	for _, c := range b[nx:bs] {
		if c != 0 {
			return ErrInvalidState
		}
	}

	h.v = v
	switch v {
	case SHA256:
		for i := range h.h32 {
			h.h32[i] = words.Load[uint32](state, i*4)
		}
	case SHA512:
		for i := range h.h64 {
			h.h64[i] = words.Load[uint64](state, i*8)
		}
	}
	h.n = n
	h.nx = nx
	clear(h.buf[:])
	copy(h.buf[:], b[:nx])
	return nil
}

func wordSize(v Variant) int {
	if v == SHA512 {
		return 8
	}
	return 4
}

func marshaledSize(v Variant) int {
	return len(magic) + 1 + 8*wordSize(v) + v.BlockSize() + 8
}

var (
	_ encoding.BinaryMarshaler   = (*Hasher)(nil)
	_ encoding.BinaryUnmarshaler = (*Hasher)(nil)
	_ encoding.BinaryAppender    = (*Hasher)(nil)
)
