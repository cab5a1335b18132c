package ingest

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortOrdersByTimeColumn(t *testing.T) {
	input := "3,A,x\n1,B,y\n2,C,z\n1,D,w\n"
	var out bytes.Buffer

	require.NoError(t, Sort(strings.NewReader(input), &out, 0, 2))

	var lines []string
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Equal(t, []string{"1,B,y", "1,D,w", "2,C,z", "3,A,x"}, lines)
}

func TestSortIsStableForEqualKeys(t *testing.T) {
	// All three lines share key 1 and land in the same chunk (chunk
	// size exceeds the input), so the in-chunk stable sort must
	// preserve their relative order.
	input := "1,first\n1,second\n1,third\n"
	var out bytes.Buffer

	require.NoError(t, Sort(strings.NewReader(input), &out, 0, 100))

	var lines []string
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Equal(t, []string{"1,first", "1,second", "1,third"}, lines)
}

func TestSortSingleChunk(t *testing.T) {
	input := "5,x\n4,y\n3,z\n"
	var out bytes.Buffer
	require.NoError(t, Sort(strings.NewReader(input), &out, 0, 100))

	var lines []string
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Equal(t, []string{"3,z", "4,y", "5,x"}, lines)
}
