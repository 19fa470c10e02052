package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_RoundTripAllForms(t *testing.T) {
	t.Parallel()

	for _, f := range fixtures(t, 777) {
		f := f
		t.Run(f.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f.c))
			assert.Equal(t, f.c.SerializedSize(), buf.Len())

			back, err := Read(&buf)
			require.NoError(t, err)

			assert.Equal(t, f.c.Kind(), back.Kind())
			assert.Equal(t, f.c.Cardinality(), back.Cardinality())
			assert.Equal(t, contents(f.c), contents(back))
		})
	}
}

func TestSerialize_RejectsBadInput(t *testing.T) {
	t.Parallel()

	for _, tcase := range []struct {
		Name string
		Data []byte
	}{
		{"unknown kind", []byte{9, 0, 0}},
		{"array too long", withLength(byte(ArrayKind), ArrayMaxSize+1)},
		{"too many runs", withLength(byte(RunKind), maxRuns+2)},
		{"truncated header", []byte{byte(ArrayKind), 1}},
		{"truncated body", []byte{byte(ArrayKind), 2, 0, 5, 0}},
		{"unsorted array", []byte{byte(ArrayKind), 2, 0, 5, 0, 4, 0}},
		{"overlapping runs", []byte{byte(RunKind), 2, 0, 0, 0, 10, 0, 5, 0, 10, 0}},
		{"run past top", []byte{byte(RunKind), 1, 0, 0xFF, 0xFF, 1, 0}},
	} {
		tcase := tcase
		t.Run(tcase.Name, func(t *testing.T) {
			t.Parallel()

			_, err := Read(bytes.NewReader(tcase.Data))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func withLength(kind byte, n int) []byte {
	data := []byte{kind, 0, 0}
	binary.LittleEndian.PutUint16(data[1:], uint16(n))
	return data
}
