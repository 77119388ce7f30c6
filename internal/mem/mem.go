// Package mem provides byte-slice helpers shared by the digest and MAC implementations.
package mem

// XORByte sets dst[i] ^= b for each i.
func XORByte(dst []byte, b byte) {
	for i := range dst {
		dst[i] ^= b
	}
}

// SliceForAppend takes a slice and a requested number of bytes. It returns a slice with the contents of the given slice
// followed by that many bytes and a second slice that aliases into it and contains only the extra bytes. If the
// original slice has sufficient capacity then no allocation is performed.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
