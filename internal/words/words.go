// Package words provides the fixed-width integer arithmetic shared by the SHA-2 engine and HMAC: rotations, big-endian
// packing, fixed-length integer encoding, and Merkle–Damgård bit padding.
package words

// Word is the set of unsigned integer types the helpers operate on.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits returns the width of W in bits.
func Bits[W Word]() uint {
	n := uint(0)
	for x := ^W(0); x != 0; x >>= 8 {
		n += 8
	}
	return n
}

// Bytes returns the width of W in bytes.
func Bytes[W Word]() int {
	return int(Bits[W]() / 8)
}

// RotateLeft returns x rotated left by k bits. k is reduced modulo the width of W.
func RotateLeft[W Word](x W, k uint) W {
	n := Bits[W]()
	k %= n
	return x<<k | x>>(n-k)
}

// RotateRight returns x rotated right by k bits. k is reduced modulo the width of W.
func RotateRight[W Word](x W, k uint) W {
	n := Bits[W]()
	k %= n
	return x>>k | x<<(n-k)
}

// Load reads a big-endian W from p starting at off.
func Load[W Word](p []byte, off int) W {
	n := Bytes[W]()
	_ = p[off+n-1] // bounds check hint
	var w W
	for _, b := range p[off : off+n] {
		w = w<<8 | W(b)
	}
	return w
}

// Put writes w into p starting at off in big-endian order.
func Put[W Word](p []byte, off int, w W) {
	n := Bytes[W]()
	_ = p[off+n-1] // bounds check hint
	for i := off + n - 1; i >= off; i-- {
		p[i] = byte(w)
		w >>= 8
	}
}

// Append appends the big-endian encoding of w to b.
func Append[W Word](b []byte, w W) []byte {
	n := Bytes[W]()
	b = append(b, make([]byte, n)...)
	Put(b, len(b)-n, w)
	return b
}

// AppendFixed appends x to b as a big-endian integer occupying exactly n bytes. If n is larger than eight, the encoding
// is zero-extended on the left; if n is smaller, only the n low-order bytes of x are kept.
func AppendFixed(b []byte, x uint64, n int) []byte {
	b = append(b, make([]byte, n)...)
	for i := len(b) - 1; i >= len(b)-min(n, 8); i-- {
		b[i] = byte(x)
		x >>= 8
	}
	return b
}

// Pad appends a single 0x80 byte to b followed by zero bytes until len(b) mod blockSize equals blockSize-allowance,
// leaving room for an allowance-byte trailer in the final block. If the 0x80 byte leaves no room for the trailer, the
// padding spills into an additional block.
func Pad(b []byte, blockSize, allowance int) []byte {
	limit := blockSize - allowance
	r := len(b) % blockSize
	zeros := limit - 1 - r
	if r >= limit {
		zeros += blockSize
	}
	b = append(b, 0x80)
	return append(b, make([]byte, zeros)...)
}
