package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesNilGrammarPanics(t *testing.T) {
	e := NewEngine(Options{})
	require.Panics(t, func() { e.Matches(nil, []byte("x")) })
}

func TestBatchMatch(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Seq(e.Chars('0', '1'))

	inputs := [][]byte{
		[]byte("0101"),
		[]byte("111"),
		[]byte("012"),
		nil,
	}
	want := []bool{true, true, false, true}

	got := e.BatchMatch(g, inputs)
	require.Equal(t, want, got)
}

func TestBatchMatchPreservesOrder(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Union(e.Literal([]byte("aa")), e.Literal([]byte("bb")), e.Literal([]byte("cc")))

	inputs := [][]byte{
		[]byte("aa"),
		[]byte("bb"),
		[]byte("cc"),
		[]byte("ab"),
	}
	want := []bool{true, true, true, false}
	require.Equal(t, want, e.BatchMatch(g, inputs))
}

func ExampleMatches() {
	Matches(Literal([]byte("ok")), []byte("ok"))
}
