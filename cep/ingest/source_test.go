package ingest

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlojames/cepgraph/cep"
)

func testSchema(t *testing.T) *cep.Schema {
	t.Helper()
	s, err := cep.NewSchema([]string{"ts", "type", "v"}, "ts", "type")
	require.NoError(t, err)
	return s
}

func TestLineSourceCoercion(t *testing.T) {
	schema := testSchema(t)
	src := NewLineSource(schema, strings.NewReader("1,A,5\n2,B,3.5\n3,C,hello\n"))

	ev, counter, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, int64(0), counter)
	require.Equal(t, int64(5), ev.Values[2])

	ev, counter, err = src.Next()
	require.NoError(t, err)
	require.Equal(t, int64(1), counter)
	require.Equal(t, 3.5, ev.Values[2])

	ev, counter, err = src.Next()
	require.NoError(t, err)
	require.Equal(t, int64(2), counter)
	require.Equal(t, "hello", ev.Values[2])

	_, _, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestLineSourceSkipsBlankLines(t *testing.T) {
	schema := testSchema(t)
	src := NewLineSource(schema, strings.NewReader("1,A,5\n\n2,B,3\n"))

	_, c0, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, int64(0), c0)

	_, c1, err := src.Next()
	require.NoError(t, err)
	require.Equal(t, int64(1), c1)

	_, _, err = src.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestLineSourceRejectsWrongColumnCount(t *testing.T) {
	schema := testSchema(t)
	src := NewLineSource(schema, strings.NewReader("1,A\n"))
	_, _, err := src.Next()
	require.Error(t, err)
}

func TestCoerceTokenNegativeIsFloat(t *testing.T) {
	// mirrors processor.py: str.isdigit('-5') is False, so negatives
	// fall through to the float branch rather than staying int.
	require.Equal(t, -5.0, coerceToken("-5"))
	require.Equal(t, int64(5), coerceToken("5"))
	require.Equal(t, "abc", coerceToken("abc"))
}
