package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"reflect"

	"golang.org/x/text/encoding"
)

// Encoder writes records to an output stream.
type Encoder struct {
	w    *bufio.Writer
	opts options
	enc  *encoding.Encoder
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := newOptions(opts)

	return &Encoder{
		w:    bufio.NewWriter(w),
		opts: o,
		enc:  o.encoder(),
	}
}

// Encode writes all records to the stream.
// records is a slice of structs or a pointer to it. A single struct is written as one record.
func (e *Encoder) Encode(records any) error {
	val := reflect.Indirect(reflect.ValueOf(records))
	if !val.IsValid() {
		return fmt.Errorf("%w: %w: nil", ErrEncode, ErrUnsupportedType)
	}

	var elemType reflect.Type

	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		elemType = val.Type().Elem()
	case reflect.Struct:
		elemType = val.Type()
		val = reflect.Append(reflect.MakeSlice(reflect.SliceOf(elemType), 0, 1), val)
	default:
		return fmt.Errorf("%w: %w: %s", ErrEncode, ErrUnsupportedType, val.Type())
	}

	idx, err := fieldIndexes(elemType)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	for i := range val.Len() {
		rec := val.Index(i)

		for _, f := range idx {
			if err := e.writeField(rec.Field(f).String()); err != nil {
				return fmt.Errorf("%w: record %d: %w", ErrEncode, i, err)
			}
		}
	}

	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}

func (e *Encoder) writeField(s string) error {
	b := []byte(s)

	if e.enc != nil {
		var err error

		b, err = e.enc.Bytes(b)
		if err != nil {
			return err //nolint:wrapcheck // wrapped by Encode
		}
	}

	var prefix [lenSize]byte
	e.opts.order.PutUint64(prefix[:], uint64(len(b)))

	if _, err := e.w.Write(prefix[:]); err != nil {
		return err //nolint:wrapcheck // wrapped by Encode
	}

	_, err := e.w.Write(b)

	return err //nolint:wrapcheck // wrapped by Encode
}

// Marshal returns the encoding of records.
func Marshal(records any, opts ...Option) ([]byte, error) {
	buf := &bytes.Buffer{}

	if err := NewEncoder(buf, opts...).Encode(records); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
