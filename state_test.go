package sha2

import (
	"bytes"
	"errors"
	"testing"

	"github.com/codahale/sha2/internal/testdata"
)

func TestMarshalBinary(t *testing.T) {
	msg := testdata.Ptn(1000)
	for _, v := range []Variant{SHA256, SHA512} {
		want := Compute(v, msg)
		for _, split := range []int{0, 1, 63, 64, 65, 127, 128, 129, 999, 1000} {
			h := New(v)
			_, _ = h.Write(msg[:split])

			state, err := h.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			if got, want := len(state), marshaledSize(v); got != want {
				t.Fatalf("len(MarshalBinary()) = %d, want %d", got, want)
			}

			var resumed Hasher
			if err := resumed.UnmarshalBinary(state); err != nil {
				t.Fatalf("%s split=%d: UnmarshalBinary() err = %v", v, split, err)
			}
			if got, want := resumed.Len(), uint64(split); got != want {
				t.Errorf("%s split=%d: Len() = %d, want %d", v, split, got, want)
			}

			if got := resumed.Update(msg[split:], true); !bytes.Equal(got, want) {
				t.Errorf("%s split=%d: got %x, want %x", v, split, got, want)
			}
		}
	}
}

func TestAppendBinary(t *testing.T) {
	h := New(SHA256)
	_, _ = h.Write([]byte("abc"))

	state, _ := h.MarshalBinary()
	appended, err := h.AppendBinary([]byte("prefix"))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := appended, append([]byte("prefix"), state...); !bytes.Equal(got, want) {
		t.Errorf("AppendBinary() = %x, want %x", got, want)
	}
}

func TestUnmarshalBinaryInvalid(t *testing.T) {
	h := New(SHA256)
	_, _ = h.Write([]byte("abc"))
	valid, _ := h.MarshalBinary()

	badMagic := bytes.Clone(valid)
	badMagic[0] ^= 1

	badVariant := bytes.Clone(valid)
	badVariant[len(magic)] = 9

	dirtyPadding := bytes.Clone(valid)
	dirtyPadding[len(magic)+1+8*4+len("abc")] = 0xff

	for _, tc := range []struct {
		name   string
		target *Hasher
		state  []byte
	}{
		{"empty", new(Hasher), nil},
		{"bad magic", new(Hasher), badMagic},
		{"bad variant", new(Hasher), badVariant},
		{"truncated", new(Hasher), valid[:len(valid)-1]},
		{"trailing data", new(Hasher), append(bytes.Clone(valid), 0)},
		{"other variant", New(SHA512), valid},
		{"dirty padding", new(Hasher), dirtyPadding},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.target.UnmarshalBinary(tc.state); !errors.Is(err, ErrInvalidState) {
				t.Errorf("UnmarshalBinary() err = %v, want ErrInvalidState", err)
			}
		})
	}
}

func TestMarshalBinaryZeroHasher(t *testing.T) {
	var h Hasher

	if _, err := h.MarshalBinary(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("MarshalBinary() err = %v, want ErrInvalidState", err)
	}

	if _, err := h.AppendBinary(nil); !errors.Is(err, ErrInvalidState) {
		t.Errorf("AppendBinary() err = %v, want ErrInvalidState", err)
	}
}
