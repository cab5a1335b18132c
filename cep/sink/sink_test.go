package sink

import (
	"bytes"
	"os"
	"path/filepath"
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

func mkEvent(t *testing.T, s *cep.Schema, id uint64, ts int64, typ string, v int64) *cep.Event {
	t.Helper()
	ev, err := cep.NewEvent(s, []cep.Value{ts, typ, v}, id)
	require.NoError(t, err)
	return ev
}

func TestMemoryAccumulates(t *testing.T) {
	s := testSchema(t)
	a := mkEvent(t, s, 0, 1, "A", 1)
	b := mkEvent(t, s, 1, 2, "B", 2)

	m := NewMemory()
	require.False(t, m.Incremental())
	require.NoError(t, m.Emit([][]*cep.Event{{a, b}}))
	require.NoError(t, m.Emit([][]*cep.Event{{b, a}}))
	require.Len(t, m.Matches(), 2)
}

func TestFileWritesMarkerBlocks(t *testing.T) {
	s := testSchema(t)
	a := mkEvent(t, s, 0, 1, "A", 1)
	b := mkEvent(t, s, 1, 2, "B", 2)

	var buf bytes.Buffer
	f := NewFile(&buf)
	require.True(t, f.Incremental())
	require.NoError(t, f.Emit([][]*cep.Event{{a, b}}))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, markerOpen))
	require.True(t, strings.HasSuffix(out, markerClose))
	require.Contains(t, out, a.String())
	require.Contains(t, out, b.String())
}

func TestOpenFileRoundTrip(t *testing.T) {
	s := testSchema(t)
	a := mkEvent(t, s, 0, 1, "A", 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "matches.txt")

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Emit([][]*cep.Event{{a}}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), a.String())
}

func TestConsoleEmitDoesNotError(t *testing.T) {
	s := testSchema(t)
	a := mkEvent(t, s, 0, 1, "A", 1)
	b := mkEvent(t, s, 1, 2, "B", 2)

	var buf bytes.Buffer
	c := NewConsole(&buf, "q0")
	require.True(t, c.Incremental())
	require.NoError(t, c.Emit([][]*cep.Event{{a, b}}))
	require.Contains(t, buf.String(), "match[q0]")
}

func TestBadgerPersistsMatches(t *testing.T) {
	s := testSchema(t)
	a := mkEvent(t, s, 0, 1, "A", 1)
	b := mkEvent(t, s, 1, 2, "B", 2)

	dir := t.TempDir()
	bd, err := OpenBadger(dir)
	require.NoError(t, err)
	defer bd.Close()

	require.True(t, bd.Incremental())
	require.NoError(t, bd.Emit([][]*cep.Event{{a, b}}))
	require.NoError(t, bd.Emit([][]*cep.Event{{b, a}}))
	require.Equal(t, uint64(2), bd.Count())
}
