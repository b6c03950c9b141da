package catalog

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/angoly-ara/inventory/codec"
	"github.com/angoly-ara/inventory/repository"
)

// Kind describes an entity type, so records of every kind can be handled
// by the same catalog and menu code.
// The first field of every entity is its ID, all fields are strings.
type Kind[E any] struct {
	Singular string
	Plural   string
	// Category is the audit log category of changes to this kind.
	Category string
	// File is the name of the file the records are stored in.
	File  string
	Range repository.IDRange
	// Labels overwrites the label derived from a field name.
	Labels map[string]string
	// Widths are the column widths used to print a table, one per field.
	Widths []int
	// New builds a record from all its values, ID first.
	New func(values []string) E
}

// WithRange returns a copy of k using the given id range.
func (k Kind[E]) WithRange(r repository.IDRange) Kind[E] {
	k.Range = r

	return k
}

// Fields returns the Go field names of E in the order they are stored.
func (k Kind[E]) Fields() []string {
	names, err := codec.Fields(new(E))
	if err != nil {
		// entities are plain string structs, see entities.go
		panic(fmt.Sprintf("catalog: %T is not a valid entity: %v", *new(E), err))
	}

	return names
}

// Headers returns the human-readable label of every field, ID included.
// "TaxID" becomes "Tax ID".
func (k Kind[E]) Headers() []string {
	fields := k.Fields()
	headers := make([]string, 0, len(fields))

	for _, name := range fields {
		headers = append(headers, k.label(name))
	}

	return headers
}

// Prompts returns the labels of the fields a user enters, which are all but the ID.
func (k Kind[E]) Prompts() []string {
	return k.Headers()[1:]
}

func (k Kind[E]) label(field string) string {
	if l, ok := k.Labels[field]; ok {
		return l
	}

	words := camelcase.Split(field)
	for i := 1; i < len(words); i++ {
		if words[i] != strings.ToUpper(words[i]) {
			words[i] = strings.ToLower(words[i])
		}
	}

	return strings.Join(words, " ")
}

// Values returns all values of record, ID first.
func (k Kind[E]) Values(record E) []string {
	v := reflect.ValueOf(record)
	fields := k.Fields()
	values := make([]string, 0, len(fields))

	for _, name := range fields {
		values = append(values, v.FieldByName(name).String())
	}

	return values
}

// ID returns the ID of record.
func (k Kind[E]) ID(record E) string {
	return k.Values(record)[0]
}

// build creates a record from id and the values entered by a user.
func (k Kind[E]) build(id string, values []string) (E, error) {
	if want := len(k.Fields()) - 1; len(values) != want {
		return *new(E), fmt.Errorf("%w: %s needs %d values, got %d", ErrFieldCount, k.Singular, want, len(values))
	}

	return k.New(append([]string{id}, values...)), nil
}
