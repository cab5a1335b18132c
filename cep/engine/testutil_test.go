package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlojames/cepgraph/cep"
)

// testSchema returns a schema with columns ts, type, v — enough for
// every scenario test in this package.
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
