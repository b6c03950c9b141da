package codec_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/angoly-ara/inventory/codec"
)

type record struct {
	ID      string
	Name    string
	Address string
}

type recordWithSkip struct {
	ID       string
	Internal string `bin:"-"`
	Name     string
	hidden   string //nolint:unused // proves unexported fields are ignored
}

type recordWithInt struct {
	ID    string
	Count int
}

func fakeRecords(n int) []record {
	records := make([]record, 0, n)

	for range n {
		records = append(records, record{
			ID:      gofakeit.DigitN(4),
			Name:    gofakeit.Name(),
			Address: gofakeit.Street(),
		})
	}

	return records
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	t.Run("layout", func(t *testing.T) {
		t.Parallel()

		b, err := codec.Marshal([]record{{ID: "3107", Name: "Ana", Address: ""}}, codec.WithByteOrder(binary.LittleEndian))
		require.NoError(t, err)

		expected := []byte{}
		expected = binary.LittleEndian.AppendUint64(expected, 4)
		expected = append(expected, "3107"...)
		expected = binary.LittleEndian.AppendUint64(expected, 3)
		expected = append(expected, "Ana"...)
		expected = binary.LittleEndian.AppendUint64(expected, 0)

		assert.Equal(t, expected, b)
	})

	t.Run("no header for an empty list", func(t *testing.T) {
		t.Parallel()

		b, err := codec.Marshal([]record{})
		assert.NoError(t, err)
		assert.Empty(t, b)
	})

	t.Run("single struct", func(t *testing.T) {
		t.Parallel()

		one, err := codec.Marshal(record{ID: "1", Name: "a", Address: "b"})
		require.NoError(t, err)

		list, err := codec.Marshal([]record{{ID: "1", Name: "a", Address: "b"}})
		require.NoError(t, err)

		assert.Equal(t, list, one)
	})

	t.Run("skip tagged fields", func(t *testing.T) {
		t.Parallel()

		b, err := codec.Marshal([]recordWithSkip{{ID: "1", Internal: "secret", Name: "x"}})
		require.NoError(t, err)
		assert.NotContains(t, string(b), "secret")
		assert.Len(t, b, 2*8+2)
	})

	t.Run("unsupported field kind", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Marshal([]recordWithInt{{ID: "1", Count: 1}})
		assert.ErrorIs(t, err, codec.ErrUnsupportedType)
		assert.ErrorIs(t, err, codec.ErrEncode)
	})

	t.Run("not a struct", func(t *testing.T) {
		t.Parallel()

		_, err := codec.Marshal([]string{"a"})
		assert.ErrorIs(t, err, codec.ErrUnsupportedType)

		_, err = codec.Marshal(nil)
		assert.ErrorIs(t, err, codec.ErrUnsupportedType)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	orders := map[string]binary.ByteOrder{
		"native": binary.NativeEndian,
		"little": binary.LittleEndian,
		"big":    binary.BigEndian,
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			records := fakeRecords(25)

			b, err := codec.Marshal(records, codec.WithByteOrder(order))
			require.NoError(t, err)

			var got []record
			err = codec.Unmarshal(b, &got, codec.WithByteOrder(order))
			assert.NoError(t, err)
			assert.Equal(t, records, got, "same fields in the same order")
		})
	}

	t.Run("streaming", func(t *testing.T) {
		t.Parallel()

		records := fakeRecords(3)
		buf := &bytes.Buffer{}

		err := codec.NewEncoder(buf).Encode(&records)
		require.NoError(t, err)

		var got []record
		err = codec.NewDecoder(buf).Decode(&got)
		assert.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("decode replaces previous content", func(t *testing.T) {
		t.Parallel()

		b, err := codec.Marshal([]record{{ID: "1"}})
		require.NoError(t, err)

		got := fakeRecords(4)
		err = codec.Unmarshal(b, &got)
		assert.NoError(t, err)
		assert.Equal(t, []record{{ID: "1"}}, got)
	})

	t.Run("empty input is an empty list", func(t *testing.T) {
		t.Parallel()

		got := fakeRecords(1)
		err := codec.Unmarshal(nil, &got)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDecoder_Truncated(t *testing.T) {
	t.Parallel()

	records := fakeRecords(3)

	b, err := codec.Marshal(records)
	require.NoError(t, err)

	// cut into the last field of the last record
	truncated := b[:len(b)-1]

	t.Run("strict", func(t *testing.T) {
		t.Parallel()

		var got []record
		err := codec.Unmarshal(truncated, &got)
		assert.ErrorIs(t, err, codec.ErrTruncated)
		assert.ErrorIs(t, err, codec.ErrDecode)
		assert.Equal(t, records[:2], got, "complete records before the damage are kept")
	})

	t.Run("lenient", func(t *testing.T) {
		t.Parallel()

		var got []record
		err := codec.Unmarshal(truncated, &got, codec.Lenient())
		assert.NoError(t, err)
		assert.Equal(t, records[:2], got)
	})

	t.Run("partial length prefix", func(t *testing.T) {
		t.Parallel()

		var got []record
		err := codec.Unmarshal(append(b, 1, 2, 3), &got)
		assert.ErrorIs(t, err, codec.ErrTruncated)
		assert.Equal(t, records, got)
	})
}

func TestDecoder_Corrupt(t *testing.T) {
	t.Parallel()

	b := binary.NativeEndian.AppendUint64(nil, codec.MaxFieldLen+1)
	b = append(b, "x"...)

	var got []record
	err := codec.Unmarshal(b, &got)
	assert.ErrorIs(t, err, codec.ErrCorrupt)

	err = codec.Unmarshal(b, &got, codec.Lenient())
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecoder_InvalidTarget(t *testing.T) {
	t.Parallel()

	var got []record

	assert.ErrorIs(t, codec.Unmarshal(nil, got), codec.ErrUnsupportedType, "not a pointer")
	assert.ErrorIs(t, codec.Unmarshal(nil, &record{}), codec.ErrUnsupportedType, "not a slice")
}

func TestWithCharmap(t *testing.T) {
	t.Parallel()

	records := []record{{ID: "3107", Name: "José Núñez", Address: "Dirección"}}

	b, err := codec.Marshal(records, codec.WithCharmap(charmap.Windows1252), codec.WithByteOrder(binary.LittleEndian))
	require.NoError(t, err)

	assert.Contains(t, string(b), "Direcci\xf3n", "single byte encoding on disk")

	var got []record
	err = codec.Unmarshal(b, &got, codec.WithCharmap(charmap.Windows1252), codec.WithByteOrder(binary.LittleEndian))
	assert.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestFields(t *testing.T) {
	t.Parallel()

	fields, err := codec.Fields(record{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name", "Address"}, fields)

	fields, err = codec.Fields(&recordWithSkip{})
	assert.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name"}, fields)

	_, err = codec.Fields(recordWithInt{})
	assert.ErrorIs(t, err, codec.ErrUnsupportedType)
}
