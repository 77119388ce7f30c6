// Package sha2 implements the SHA-256 and SHA-512 hash functions as specified in FIPS 180-4.
//
// A [Hasher] accumulates input across calls and compresses every complete block as soon as it is available, so
// arbitrarily large messages can be streamed in bounded-size chunks. Finalizing a Hasher returns the digest and resets
// it to its initial state, ready for the next message.
package sha2

import (
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/codahale/sha2/internal/mem"
	"github.com/codahale/sha2/internal/words"
)

// Variant selects one of the supported SHA-2 parameter sets.
type Variant int

const (
	// SHA256 is SHA-256: 32-bit words, 64-byte blocks, 32-byte digests.
	SHA256 Variant = 1 + iota

	// SHA512 is SHA-512: 64-bit words, 128-byte blocks, 64-byte digests.
	SHA512
)

const (
	// Size256 is the size, in bytes, of a SHA-256 digest.
	Size256 = 32

	// Size512 is the size, in bytes, of a SHA-512 digest.
	Size512 = 64

	// BlockSize256 is the block size, in bytes, of SHA-256.
	BlockSize256 = 64

	// BlockSize512 is the block size, in bytes, of SHA-512.
	BlockSize512 = 128
)

// ErrUnknownVariant is returned when a variant name or value does not identify a supported SHA-2 variant.
var ErrUnknownVariant = errors.New("sha2: unknown variant")

// ParseVariant returns the variant named by s. It accepts "sha256", "sha-256", "256" and the SHA-512 equivalents,
// ignoring case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sha256", "sha-256", "256":
		return SHA256, nil
	case "sha512", "sha-512", "512":
		return SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Valid reports whether v is a supported variant.
func (v Variant) Valid() bool {
	return v == SHA256 || v == SHA512
}

// Size returns the digest length of v in bytes.
func (v Variant) Size() int {
	switch v {
	case SHA256:
		return Size256
	case SHA512:
		return Size512
	default:
		panic(v.invalid())
	}
}

// BlockSize returns the block size of v in bytes.
func (v Variant) BlockSize() int {
	switch v {
	case SHA256:
		return BlockSize256
	case SHA512:
		return BlockSize512
	default:
		panic(v.invalid())
	}
}

func (v Variant) String() string {
	switch v {
	case SHA256:
		return "SHA-256"
	case SHA512:
		return "SHA-512"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

func (v Variant) invalid() error {
	return fmt.Errorf("sha2: invalid variant %d", int(v))
}

// Compute returns the digest of msg under v.
func Compute(v Variant, msg []byte) []byte {
	return New(v).Update(msg, true)
}

// Sum256 returns the SHA-256 digest of msg.
func Sum256(msg []byte) (sum [Size256]byte) {
	copy(sum[:], Compute(SHA256, msg))
	return sum
}

// Sum512 returns the SHA-512 digest of msg.
func Sum512(msg []byte) (sum [Size512]byte) {
	copy(sum[:], Compute(SHA512, msg))
	return sum
}

// Hasher is an incremental SHA-2 instance. It implements hash.Hash.
//
// Create Hashers with [New]; the zero value is only useful as a target for [Hasher.UnmarshalBinary]. A Hasher is not
// safe for concurrent use. Independent Hashers share no state.
type Hasher struct {
	v   Variant
	h32 [8]uint32 // hash state for SHA-256
	h64 [8]uint64 // hash state for SHA-512
	buf [BlockSize512]byte
	nx  int    // buffered bytes in buf, always < v.BlockSize() between calls
	n   uint64 // total bytes written since the last reset
}

// New returns a new Hasher for v. It panics if v is not a supported variant.
func New(v Variant) *Hasher {
	if !v.Valid() {
		panic(v.invalid())
	}

	h := &Hasher{v: v}
	h.Reset()
	return h
}

// New256 returns a new SHA-256 hash.Hash.
func New256() hash.Hash {
	return New(SHA256)
}

// New512 returns a new SHA-512 hash.Hash.
func New512() hash.Hash {
	return New(SHA512)
}

// Update absorbs p, compressing every complete block. If isLast is false, the remainder is buffered and Update returns
// nil. If isLast is true, Update pads the message, returns its digest, and resets the Hasher so it can be reused for a
// new message.
func (h *Hasher) Update(p []byte, isLast bool) []byte {
	h.write(p)
	if !isLast {
		return nil
	}

	digest := h.checkSum(make([]byte, 0, h.v.Size()))
	h.Reset()
	return digest
}

// Write absorbs p. It never returns an error.
func (h *Hasher) Write(p []byte) (int, error) {
	h.write(p)
	return len(p), nil
}

// Sum appends the digest of everything written so far to b without changing the underlying state.
func (h *Hasher) Sum(b []byte) []byte {
	d := *h
	return d.checkSum(b)
}

// Reset restores the initial hash state and discards any buffered input.
func (h *Hasher) Reset() {
	switch h.v {
	case SHA256:
		h.h32 = params256.iv
	case SHA512:
		h.h64 = params512.iv
	}
	clear(h.buf[:])
	h.nx = 0
	h.n = 0
}

// Size returns the digest length in bytes.
func (h *Hasher) Size() int { return h.v.Size() }

// BlockSize returns the block size in bytes.
func (h *Hasher) BlockSize() int { return h.v.BlockSize() }

// Variant returns the Hasher's variant.
func (h *Hasher) Variant() Variant { return h.v }

// Len returns the number of bytes written since the last reset.
func (h *Hasher) Len() uint64 { return h.n }

func (h *Hasher) write(p []byte) {
	bs := h.v.BlockSize()
	h.n += uint64(len(p))

	if h.nx > 0 {
		n := copy(h.buf[h.nx:bs], p)
		h.nx += n
		p = p[n:]
		if h.nx == bs {
			h.compress(h.buf[:bs])
			h.nx = 0
		}
	}

	// Compress complete blocks straight from p.
	if len(p) >= bs {
		n := len(p) - len(p)%bs
		h.compress(p[:n])
		p = p[n:]
	}

	h.nx += copy(h.buf[h.nx:bs], p)
}

// checkSum pads the buffered input, compresses the final block(s), and appends the digest to b. It leaves h in an
// unusable state.
func (h *Hasher) checkSum(b []byte) []byte {
	bs := h.v.BlockSize()

	// The length field takes the trailing bs/8 bytes: 64 bits for SHA-256, 128 bits for SHA-512.
	var scratch [2 * BlockSize512]byte
	tail := append(scratch[:0], h.buf[:h.nx]...)
	tail = words.Pad(tail, bs, bs/8)
	tail = words.AppendFixed(tail, h.n>>61, bs/8-8)
	tail = words.AppendFixed(tail, h.n<<3, 8)
	h.compress(tail)

	ret, out := mem.SliceForAppend(b, h.v.Size())
	switch h.v {
	case SHA256:
		for i, w := range h.h32 {
			words.Put(out, i*4, w)
		}
	case SHA512:
		for i, w := range h.h64 {
			words.Put(out, i*8, w)
		}
	}
	return ret
}

func (h *Hasher) compress(p []byte) {
	switch h.v {
	case SHA256:
		block(&h.h32, p, &params256)
	case SHA512:
		block(&h.h64, p, &params512)
	}
}

var _ hash.Hash = (*Hasher)(nil)
