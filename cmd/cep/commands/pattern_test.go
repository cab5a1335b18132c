package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arlojames/cepgraph/cep/pattern"
)

func TestParsePatternFlagSeq(t *testing.T) {
	q, err := parsePatternFlag("SEQ(A,B,C)", 10, false, false)
	require.NoError(t, err)
	require.Equal(t, int64(10), q.Window)
	require.False(t, q.FixedCountWindow)

	seq, ok := q.Pattern.Operator.(pattern.Seq)
	require.True(t, ok)
	require.Equal(t, []pattern.Identifier{0, 1, 2}, seq.Order)
	require.False(t, seq.Strict)
	require.Len(t, q.Pattern.Members, 3)
	require.Equal(t, "A", q.Pattern.Members[0].Pattern.EventType)
}

func TestParsePatternFlagAnd(t *testing.T) {
	q, err := parsePatternFlag("AND(A,B)", 5, true, false)
	require.NoError(t, err)
	require.True(t, q.FixedCountWindow)
	_, ok := q.Pattern.Operator.(pattern.And)
	require.True(t, ok)
}

func TestParsePatternFlagStrict(t *testing.T) {
	q, err := parsePatternFlag("SEQ(A,B)", 5, false, true)
	require.NoError(t, err)
	seq := q.Pattern.Operator.(pattern.Seq)
	require.True(t, seq.Strict)
}

func TestParsePatternFlagRejectsMalformed(t *testing.T) {
	_, err := parsePatternFlag("SEQ(A)", 5, false, false)
	require.Error(t, err)

	_, err = parsePatternFlag("OR(A,B)", 5, false, false)
	require.Error(t, err)

	_, err = parsePatternFlag("not a pattern", 5, false, false)
	require.Error(t, err)
}
