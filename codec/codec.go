// Package codec implements the flat binary record format used for the data files.
//
// A file is a plain concatenation of records. A record is the sequence of its text
// fields in declaration order, every field written as an 8 byte unsigned length
// followed by the raw bytes of the text:
//
//	| len(ID) | ID | len(Name) | Name | ... | len(ID) | ID | ...
//
// There is no header, no record count, no version tag and no checksum.
// Changing the fields of a record struct changes the file format!
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTruncated       = errors.New("truncated record")
	ErrCorrupt         = errors.New("corrupt record")
	ErrEncode          = errors.New("could not encode records")
	ErrDecode          = errors.New("could not decode records")
)

// MaxFieldLen is the largest length prefix accepted when decoding.
// Anything above is considered garbage, e.g. a file written with a different byte order.
const MaxFieldLen = 1 << 20

// lenSize is the size of the length prefix of each field.
const lenSize = 8

// Option configures an Encoder or Decoder.
type Option func(*options)

type options struct {
	order   binary.ByteOrder
	charmap *charmap.Charmap
	lenient bool
}

// WithByteOrder sets the byte order of the length prefixes.
// The default is the native byte order of the machine.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithCharmap transcodes all text from and to the given single byte charset,
// e.g. charmap.Windows1252 for files written by the old Windows tool.
// Runes that the charset cannot represent are replaced when encoding.
func WithCharmap(cm *charmap.Charmap) Option {
	return func(o *options) {
		o.charmap = cm
	}
}

// Lenient makes the Decoder treat a short or corrupt trailing record as the end of the data.
// The partial record is dropped and no error is returned.
func Lenient() Option {
	return func(o *options) {
		o.lenient = true
	}
}

func newOptions(opts []Option) options {
	o := options{
		order:   binary.NativeEndian,
		charmap: nil,
		lenient: false,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func (o options) encoder() *encoding.Encoder {
	if o.charmap == nil {
		return nil
	}

	return encoding.ReplaceUnsupported(o.charmap.NewEncoder())
}

func (o options) decoder() *encoding.Decoder {
	if o.charmap == nil {
		return nil
	}

	return o.charmap.NewDecoder()
}

// fieldIndexes returns the indexes of all fields of the struct type t that are part of the record.
func fieldIndexes(t reflect.Type) ([]int, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrUnsupportedType, t)
	}

	idx := make([]int, 0, t.NumField())

	for i := range t.NumField() {
		f := t.Field(i)

		if !f.IsExported() || f.Tag.Get("bin") == "-" {
			continue
		}

		if f.Type.Kind() != reflect.String {
			return nil, fmt.Errorf("%w: field %s.%s is of kind %s, only strings are supported",
				ErrUnsupportedType, t.Name(), f.Name, f.Type.Kind())
		}

		idx = append(idx, i)
	}

	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s has no text fields", ErrUnsupportedType, t)
	}

	return idx, nil
}

// Fields returns the names of the fields that are written for a record of the given struct,
// in the order they appear in the file.
func Fields(record any) ([]string, error) {
	t := reflect.TypeOf(record)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}

	idx, err := fieldIndexes(t)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(idx))
	for _, i := range idx {
		names = append(names, t.Field(i).Name)
	}

	return names, nil
}
