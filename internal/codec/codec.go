// Package codec reads and writes the NUL-delimited field format shared by
// item files and the index.
//
// A field is its raw UTF-8 bytes followed by a single 0x00 byte. Fields are
// concatenated without length prefixes or escaping, so a field value must not
// contain 0x00 itself.
package codec

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

// Terminator ends every encoded field.
const Terminator byte = 0x00

// ErrInvalidField is returned by Validate for values that cannot be encoded.
var ErrInvalidField = errors.New("field contains a NUL byte")

// Validate reports whether field can be encoded without ambiguity.
func Validate(field string) error {
	if bytes.IndexByte([]byte(field), Terminator) >= 0 {
		return ErrInvalidField
	}
	return nil
}

// AppendField appends the encoding of field to dst.
func AppendField(dst []byte, field string) []byte {
	dst = append(dst, field...)
	return append(dst, Terminator)
}

// Encode concatenates the encodings of fields.
func Encode(fields ...string) []byte {
	size := len(fields)
	for _, f := range fields {
		size += len(f)
	}
	buf := make([]byte, 0, size)
	for _, f := range fields {
		buf = AppendField(buf, f)
	}
	return buf
}

// Reader decodes fields from an underlying stream. Path is only used to
// name the source in errors.
type Reader struct {
	br   *bufio.Reader
	path string
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, path string) *Reader {
	return &Reader{br: bufio.NewReader(r), path: path}
}

// Next returns the next field. It returns io.EOF when the input ends before
// any byte of a new field was read, and a CorruptEntry error when the input
// ends inside a field or the field is not valid UTF-8.
func (r *Reader) Next() (string, error) {
	raw, err := r.br.ReadBytes(Terminator)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(raw) == 0 {
				return "", io.EOF
			}
			return "", kerrors.CorruptEntry(r.path, 0, 0, "unterminated field")
		}
		return "", kerrors.IO("read", r.path, err)
	}
	raw = raw[:len(raw)-1]
	if !utf8.Valid(raw) {
		return "", kerrors.CorruptEntry(r.path, 0, 0, "invalid UTF-8")
	}
	return string(raw), nil
}

// Last reads the final field of a record. Unlike Next it also accepts a
// field that ends at end-of-input without a terminator, which is how item
// files written by older oxio versions end. Reaching end-of-input before any
// byte is still a CorruptEntry error.
func (r *Reader) Last() (string, error) {
	raw, err := r.br.ReadBytes(Terminator)
	switch {
	case err == nil:
		raw = raw[:len(raw)-1]
	case errors.Is(err, io.EOF):
		if len(raw) == 0 {
			return "", kerrors.CorruptEntry(r.path, 0, 0, "missing final field")
		}
	default:
		return "", kerrors.IO("read", r.path, err)
	}
	if !utf8.Valid(raw) {
		return "", kerrors.CorruptEntry(r.path, 0, 0, "invalid UTF-8")
	}
	return string(raw), nil
}

// Fields reads exactly n fields. Running out of input before n fields is a
// CorruptEntry error, unless no byte at all was read, in which case io.EOF
// is returned so callers can detect the end of a record sequence.
func (r *Reader) Fields(n int) ([]string, error) {
	out := make([]string, 0, n)
	for len(out) < n {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			if len(out) == 0 {
				return nil, io.EOF
			}
			return nil, kerrors.CorruptEntry(r.path, n, len(out), "short record")
		}
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
