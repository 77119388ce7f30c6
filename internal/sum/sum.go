// Package sum computes and checks SHA-2 digests and HMAC tags of files and streams in the coreutils
// "<hex>  <name>" format.
package sum

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codahale/sha2"
	"github.com/codahale/sha2/hmac"
	"go.uber.org/zap"
)

// ChunkSize is the size of the reads used to stream inputs through the digest.
const ChunkSize = 32 * 1024

// Stdin is the input name that denotes standard input.
const Stdin = "-"

var (
	// ErrMismatch is returned by [Summer.Check] when at least one input does not match its listed checksum.
	ErrMismatch = errors.New("sum: checksum mismatch")

	// ErrMalformed is returned by [Summer.Check] when a checksum list contains no well-formed lines.
	ErrMalformed = errors.New("sum: no properly formatted checksum lines found")
)

// Opener opens a named input.
type Opener func(name string) (io.ReadCloser, error)

// Summer computes digests, or HMAC tags if keyed, of named inputs.
type Summer struct {
	v      sha2.Variant
	mac    *hmac.MAC
	open   Opener
	logger *zap.Logger
}

// New returns a Summer for v. If key is non-nil, it computes HMAC tags keyed with key instead of plain digests. If
// open is nil, inputs are opened from the file system, with [Stdin] read from os.Stdin.
func New(v sha2.Variant, key []byte, open Opener, logger *zap.Logger) (*Summer, error) {
	s := &Summer{v: v, open: open, logger: logger}
	if s.open == nil {
		s.open = openFile
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	if key != nil {
		mac, err := hmac.New(key, v)
		if err != nil {
			return nil, err
		}
		s.mac = mac
	} else if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", sha2.ErrUnknownVariant, v)
	}

	return s, nil
}

// Sum streams r in [ChunkSize] reads and returns its digest or tag along with the number of bytes read.
func (s *Summer) Sum(r io.Reader) ([]byte, int64, error) {
	buf := make([]byte, ChunkSize)

	if s.mac != nil {
		h := s.mac.NewHasher()
		n, err := io.CopyBuffer(h, onlyReader{r}, buf)
		if err != nil {
			return nil, n, err
		}
		return h.Sum(nil), n, nil
	}

	h := sha2.New(s.v)
	var n int64
	for {
		k, err := r.Read(buf)
		if k > 0 {
			_, _ = h.Write(buf[:k])
			n += int64(k)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, n, err
		}
	}
	return h.Update(nil, true), n, nil
}

// SumFile opens name and returns its digest or tag.
func (s *Summer) SumFile(name string) ([]byte, error) {
	f, err := s.open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	digest, n, err := s.Sum(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	s.logger.Debug("computed checksum",
		zap.Stringer("variant", s.v),
		zap.Bool("keyed", s.mac != nil),
		zap.String("path", name),
		zap.Int64("bytes", n),
	)
	return digest, nil
}

// Print writes one "<hex>  <name>" line to w for each input in names. No names means standard input.
func (s *Summer) Print(w io.Writer, names []string) error {
	if len(names) == 0 {
		names = []string{Stdin}
	}

	for _, name := range names {
		digest, err := s.SumFile(name)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%x  %s\n", digest, name); err != nil {
			return err
		}
	}
	return nil
}

// Check reads "<hex>  <name>" lines from list, recomputes each named input, and writes "<name>: OK" or
// "<name>: FAILED" to w. It returns [ErrMismatch] if any input failed and [ErrMalformed] if list held no valid lines.
func (s *Summer) Check(w io.Writer, list io.Reader) error {
	var checked, failed, malformed int

	scanner := bufio.NewScanner(list)
	for line := 1; scanner.Scan(); line++ {
		want, name, ok := s.parseLine(scanner.Text())
		if !ok {
			malformed++
			s.logger.Warn("improperly formatted checksum line", zap.Int("line", line))
			continue
		}
		checked++

		status := "OK"
		got, err := s.SumFile(name)
		switch {
		case err != nil:
			status = "FAILED open or read"
			failed++
			s.logger.Warn("unable to read input", zap.String("path", name), zap.Error(err))
		case !hmac.Equal(got, want):
			status = "FAILED"
			failed++
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n", name, status); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	switch {
	case checked == 0:
		return ErrMalformed
	case failed > 0:
		return fmt.Errorf("%w: %d of %d computed checksums did not match", ErrMismatch, failed, checked)
	}

	if malformed > 0 {
		s.logger.Warn("skipped improperly formatted lines", zap.Int("count", malformed))
	}
	return nil
}

// parseLine splits a "<hex>  <name>" or "<hex> *<name>" line, checking the digest length against the variant.
func (s *Summer) parseLine(line string) (digest []byte, name string, ok bool) {
	hexDigest, name, found := strings.Cut(line, " ")
	if !found || len(name) < 2 || (name[0] != ' ' && name[0] != '*') {
		return nil, "", false
	}
	name = name[1:]

	digest, err := hex.DecodeString(hexDigest)
	if err != nil || len(digest) != s.v.Size() {
		return nil, "", false
	}
	return digest, name, true
}

func openFile(name string) (io.ReadCloser, error) {
	if name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// onlyReader hides any io.WriterTo implementation so that io.CopyBuffer uses the bounded buffer.
type onlyReader struct {
	io.Reader
}
