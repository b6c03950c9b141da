package aassert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/stretchr/testify/assert"
)

// NumFields asserts that the struct object has expected number of public fields.
// Public fields of nested and embedded structs are counted as well.
//
// Use it to detect when a struct mapped to a file or a table changed,
// so all code building or printing it can be checked.
func NumFields(t assert.TestingT, expected int, object any, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	typ, ok := structType(object)
	if !ok {
		return assert.Fail(t, "invalid argument, it has to be a struct", msgAndArgs...)
	}

	if fields := numFields(typ); fields != expected {
		return assert.Fail(t, fmt.Sprintf("struct %s changed, it has: %d fields, expected: %d", typ, fields, expected), msgAndArgs...)
	}

	return true
}

// OnlyStringFields asserts that all public fields of the struct object are strings.
// Such a struct can be stored as a record of text fields.
func OnlyStringFields(t assert.TestingT, object any, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	typ, ok := structType(object)
	if !ok {
		return assert.Fail(t, "invalid argument, it has to be a struct", msgAndArgs...)
	}

	var wrong []string

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.IsExported() && f.Type.Kind() != reflect.String {
			wrong = append(wrong, f.Name+" "+f.Type.String())
		}
	}

	if len(wrong) > 0 {
		return assert.Fail(t, fmt.Sprintf("struct %s has fields that are no strings: %s", typ, strings.Join(wrong, ", ")), msgAndArgs...)
	}

	return true
}

func structType(object any) (reflect.Type, bool) {
	typ := reflect.TypeOf(object)
	if typ == nil {
		return nil, false
	}

	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return typ, typ.Kind() == reflect.Struct
}

func numFields(typ reflect.Type) int {
	var fields int

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}

		fields++

		ft := f.Type
		for ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice {
			ft = ft.Elem()
		}

		if ft.Kind() == reflect.Struct {
			fields += numFields(ft)
		}
	}

	return fields
}
