package cep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema([]string{"type", "time", "v"}, "time", "type")
	require.NoError(t, err)
	return s
}

func TestNewSchemaMissingColumn(t *testing.T) {
	_, err := NewSchema([]string{"a", "b"}, "time", "type")
	assert.Error(t, err)
}

func TestNewEventTimestampAndType(t *testing.T) {
	schema := testSchema(t)
	ev, err := NewEvent(schema, []Value{"A", int64(5), int64(10)}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ev.Timestamp)
	assert.Equal(t, "A", ev.Type())
	v, ok := ev.Attr("v")
	require.True(t, ok)
	assert.Equal(t, int64(10), v)
}

func TestNewEventRejectsNonNumericTimestamp(t *testing.T) {
	schema := testSchema(t)
	_, err := NewEvent(schema, []Value{"A", "not-a-time", int64(10)}, 1)
	assert.Error(t, err)
}

func TestWithTimestampLeavesOriginalUntouched(t *testing.T) {
	schema := testSchema(t)
	ev, err := NewEvent(schema, []Value{"A", int64(5), int64(10)}, 1)
	require.NoError(t, err)

	shadow := ev.WithTimestamp(99)
	assert.Equal(t, int64(99), shadow.Timestamp)
	assert.Equal(t, int64(5), ev.Timestamp, "original event must stay immutable")
	assert.Equal(t, ev.ID, shadow.ID)
}
