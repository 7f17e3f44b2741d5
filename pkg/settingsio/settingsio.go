// Package settingsio implements the versioned binary stream every task uses to
// persist its settings. A stream starts with a uint32 schema version followed
// by the fields in declaration order; readers branch on the version to decide
// which fields are present.
package settingsio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// MaxStringLen bounds a single string or list so a corrupt length prefix
// cannot trigger a huge allocation.
const MaxStringLen = 16 << 20

var (
	ErrUnsupportedVersion = errors.New("unsupported settings version")
	ErrCorrupt            = errors.New("corrupt settings stream")
)

var byteOrder = binary.LittleEndian

// Writer writes primitive values. The first error is sticky; later writes are
// no-ops and Err reports it.
type Writer struct {
	w   io.Writer
	err error
	buf [8]byte
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (w *Writer) Err() error { return w.err }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

// Version writes the schema version tag.
func (w *Writer) Version(v uint32) { w.Uint32(v) }

func (w *Writer) Bool(b bool) {
	if b {
		w.write([]byte{1})
		return
	}
	w.write([]byte{0})
}

func (w *Writer) Uint32(v uint32) {
	byteOrder.PutUint32(w.buf[:4], v)
	w.write(w.buf[:4])
}

func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

func (w *Writer) Int64(v int64) {
	byteOrder.PutUint64(w.buf[:8], uint64(v))
	w.write(w.buf[:8])
}

func (w *Writer) Float64(v float64) {
	byteOrder.PutUint64(w.buf[:8], math.Float64bits(v))
	w.write(w.buf[:8])
}

func (w *Writer) String(s string) {
	if len(s) > MaxStringLen {
		if w.err == nil {
			w.err = fmt.Errorf("string of %d bytes exceeds limit: %w", len(s), ErrCorrupt)
		}
		return
	}
	w.Uint32(uint32(len(s)))
	w.write([]byte(s))
}

func (w *Writer) Strings(list []string) {
	if len(list) > MaxStringLen {
		if w.err == nil {
			w.err = fmt.Errorf("list of %d items exceeds limit: %w", len(list), ErrCorrupt)
		}
		return
	}
	w.Uint32(uint32(len(list)))
	for _, s := range list {
		w.String(s)
	}
}

// Bytes writes a length-prefixed blob.
func (w *Writer) Bytes(b []byte) {
	if len(b) > MaxStringLen {
		if w.err == nil {
			w.err = fmt.Errorf("blob of %d bytes exceeds limit: %w", len(b), ErrCorrupt)
		}
		return
	}
	w.Uint32(uint32(len(b)))
	w.write(b)
}

// Reader reads primitive values written by Writer. Like Writer, the first
// error is sticky and zero values are returned afterwards.
type Reader struct {
	r   io.Reader
	err error
	buf [8]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (r *Reader) Err() error { return r.err }

func (r *Reader) read(n int) []byte {
	if r.err != nil {
		return nil
	}
	if _, err := io.ReadFull(r.r, r.buf[:n]); err != nil {
		r.fail(err)
		return nil
	}
	return r.buf[:n]
}

func (r *Reader) fail(err error) {
	if r.err != nil {
		return
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		r.err = fmt.Errorf("truncated stream: %w", ErrCorrupt)
		return
	}
	r.err = err
}

// Version reads the schema version and rejects 0 and anything newer than
// current.
func (r *Reader) Version(current uint32) uint32 {
	v := r.Uint32()
	if r.err != nil {
		return 0
	}
	if v == 0 || v > current {
		r.err = fmt.Errorf("version %d (current %d): %w", v, current, ErrUnsupportedVersion)
		return 0
	}
	return v
}

func (r *Reader) Bool() bool {
	b := r.read(1)
	if b == nil {
		return false
	}
	switch b[0] {
	case 0:
		return false
	case 1:
		return true
	default:
		r.err = fmt.Errorf("invalid bool byte %#x: %w", b[0], ErrCorrupt)
		return false
	}
}

func (r *Reader) Uint32() uint32 {
	b := r.read(4)
	if b == nil {
		return 0
	}
	return byteOrder.Uint32(b)
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

func (r *Reader) Int64() int64 {
	b := r.read(8)
	if b == nil {
		return 0
	}
	return int64(byteOrder.Uint64(b))
}

func (r *Reader) Float64() float64 {
	b := r.read(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(byteOrder.Uint64(b))
}

func (r *Reader) String() string {
	b := r.Bytes()
	if b == nil {
		return ""
	}
	return string(b)
}

func (r *Reader) Strings() []string {
	n := r.Uint32()
	if r.err != nil {
		return nil
	}
	if n > MaxStringLen {
		r.err = fmt.Errorf("list length %d exceeds limit: %w", n, ErrCorrupt)
		return nil
	}
	list := make([]string, 0, min(int(n), 64))
	for i := uint32(0); i < n; i++ {
		s := r.String()
		if r.err != nil {
			return nil
		}
		list = append(list, s)
	}
	return list
}

func (r *Reader) Bytes() []byte {
	n := r.Uint32()
	if r.err != nil {
		return nil
	}
	if n > MaxStringLen {
		r.err = fmt.Errorf("length %d exceeds limit: %w", n, ErrCorrupt)
		return nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		r.fail(err)
		return nil
	}
	return b
}
