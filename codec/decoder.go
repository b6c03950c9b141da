package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"golang.org/x/text/encoding"
)

// Decoder reads records from an input stream.
type Decoder struct {
	r    *bufio.Reader
	opts options
	dec  *encoding.Decoder
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := newOptions(opts)

	return &Decoder{
		r:    bufio.NewReader(r),
		opts: o,
		dec:  o.decoder(),
	}
}

// Decode reads all records until the end of the stream and stores them in out,
// which has to be a pointer to a slice of structs. The previous content of the slice is replaced.
//
// If the stream ends inside a record, the records read so far are kept in out and
// an error wrapping ErrTruncated is returned. With Lenient the partial record is dropped silently.
func (d *Decoder) Decode(out any) error {
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%w: %w: expected pointer to slice, got %T", ErrDecode, ErrUnsupportedType, out)
	}

	slice := ptr.Elem()
	elemType := slice.Type().Elem()

	idx, err := fieldIndexes(elemType)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	result := reflect.MakeSlice(slice.Type(), 0, 0)
	defer func() { slice.Set(result) }()

	for n := 0; ; n++ {
		rec := reflect.New(elemType).Elem()

		for i, f := range idx {
			s, err := d.readField()
			if err != nil {
				if i == 0 && errors.Is(err, io.EOF) {
					return nil
				}

				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					err = ErrTruncated
				}

				if d.opts.lenient && (errors.Is(err, ErrTruncated) || errors.Is(err, ErrCorrupt)) {
					return nil
				}

				return fmt.Errorf("%w: record %d field %s: %w", ErrDecode, n, elemType.Field(f).Name, err)
			}

			rec.Field(f).SetString(s)
		}

		result = reflect.Append(result, rec)
	}
}

// readField reads one length prefixed field.
// It returns io.EOF only if the stream ended before the first byte of the field.
func (d *Decoder) readField() (string, error) {
	var prefix [lenSize]byte

	if _, err := io.ReadFull(d.r, prefix[:]); err != nil {
		return "", err //nolint:wrapcheck // inspected by Decode
	}

	size := d.opts.order.Uint64(prefix[:])
	if size > MaxFieldLen {
		return "", fmt.Errorf("%w: field length %d exceeds %d", ErrCorrupt, size, MaxFieldLen)
	}

	b := make([]byte, size)
	if _, err := io.ReadFull(d.r, b); err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}

		return "", err //nolint:wrapcheck // inspected by Decode
	}

	if d.dec != nil {
		var err error

		b, err = d.dec.Bytes(b)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return string(b), nil
}

// Unmarshal decodes data into out, see Decoder.Decode.
func Unmarshal(data []byte, out any, opts ...Option) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(out)
}
