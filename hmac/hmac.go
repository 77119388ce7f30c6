// Package hmac implements the Keyed-Hash Message Authentication Code (HMAC) as specified in RFC 2104 over SHA-256 and
// SHA-512.
//
// Keys longer than the variant's block size are first compressed with the variant's digest; shorter keys are
// right-padded with zeros.
package hmac

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"hash"

	"github.com/codahale/sha2"
	"github.com/codahale/sha2/internal/mem"
)

const (
	ipad = 0x36
	opad = 0x5c
)

// ErrUnknownVariant is returned by [New] when the variant is not a supported SHA-2 variant.
var ErrUnknownVariant = errors.New("hmac: unknown variant")

// MAC is an HMAC key bound to a SHA-2 variant. It is immutable once constructed and safe for concurrent use.
type MAC struct {
	v          sha2.Variant
	ipad, opad []byte // block-sized key XOR pad constant
}

// New returns a MAC for key under v. The key may be of any length, including zero.
func New(key []byte, v sha2.Variant) (*MAC, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnknownVariant, v, sha2.ErrUnknownVariant)
	}

	bs := v.BlockSize()
	if len(key) > bs {
		key = sha2.Compute(v, key)
	}

	m := &MAC{
		v:    v,
		ipad: make([]byte, bs),
		opad: make([]byte, bs),
	}
	copy(m.ipad, key)
	copy(m.opad, key)
	mem.XORByte(m.ipad, ipad)
	mem.XORByte(m.opad, opad)
	return m, nil
}

// NewString returns a MAC keyed with the UTF-8 bytes of key.
func NewString(key string, v sha2.Variant) (*MAC, error) {
	return New([]byte(key), v)
}

// Authenticate returns the full-length HMAC of msg.
func (m *MAC) Authenticate(msg []byte) []byte {
	h := sha2.New(m.v)
	_, _ = h.Write(m.ipad)
	inner := h.Update(msg, true)

	_, _ = h.Write(m.opad)
	return h.Update(inner, true)
}

// Verify reports whether tag is the HMAC of msg, comparing in constant time.
func (m *MAC) Verify(msg, tag []byte) bool {
	return Equal(m.Authenticate(msg), tag)
}

// Variant returns the SHA-2 variant of m.
func (m *MAC) Variant() sha2.Variant { return m.v }

// Size returns the length of m's tags in bytes.
func (m *MAC) Size() int { return m.v.Size() }

// BlockSize returns the block size of the underlying digest in bytes.
func (m *MAC) BlockSize() int { return m.v.BlockSize() }

// NewHasher returns a streaming HMAC instance keyed with m.
func (m *MAC) NewHasher() *Hasher {
	h := &Hasher{mac: m, inner: sha2.New(m.v)}
	h.Reset()
	return h
}

// Equal compares two MACs for equality without leaking timing information.
func Equal(mac1, mac2 []byte) bool {
	return subtle.ConstantTimeCompare(mac1, mac2) == 1
}

// Hasher is an incremental HMAC instance that implements hash.Hash. It is not safe for concurrent use.
type Hasher struct {
	mac   *MAC
	inner *sha2.Hasher
}

// Write absorbs p into the inner digest. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

// Sum appends the HMAC of everything written so far to b without changing the underlying state.
func (h *Hasher) Sum(b []byte) []byte {
	inner := h.inner.Sum(nil)

	outer := sha2.New(h.mac.v)
	_, _ = outer.Write(h.mac.opad)
	return append(b, outer.Update(inner, true)...)
}

// Reset discards everything written so far.
func (h *Hasher) Reset() {
	h.inner.Reset()
	_, _ = h.inner.Write(h.mac.ipad)
}

// Size returns the tag length in bytes.
func (h *Hasher) Size() int { return h.mac.Size() }

// BlockSize returns the block size of the underlying digest in bytes.
func (h *Hasher) BlockSize() int { return h.mac.BlockSize() }

var _ hash.Hash = (*Hasher)(nil)
