package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesEmptyLeaves(t *testing.T) {
	e := NewEngine(Options{})
	require.False(t, e.MatchesEmpty(e.Null()))
	require.True(t, e.MatchesEmpty(e.Epsilon()))
	require.False(t, e.MatchesEmpty(e.Char('a')))
	require.False(t, e.MatchesEmpty(e.Any(1)))
}

func TestMatchesEmptyCat(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Cat(e.Optional(e.Char('a')), e.Optional(e.Char('b')))
	require.True(t, e.MatchesEmpty(g))

	g2 := e.Cat(e.Char('a'), e.Optional(e.Char('b')))
	require.False(t, e.MatchesEmpty(g2))
}

func TestMatchesEmptyUnion(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Union(e.Char('a'), e.Epsilon())
	require.True(t, e.MatchesEmpty(g))

	g2 := e.Union(e.Char('a'), e.Char('b'))
	require.False(t, e.MatchesEmpty(g2))
}

func TestPossibleStartsLeaves(t *testing.T) {
	e := NewEngine(Options{})
	require.True(t, e.PossibleStarts(e.Null()).Empty())
	require.True(t, e.PossibleStarts(e.Epsilon()).Empty())
	require.ElementsMatch(t, []byte{'a'}, e.PossibleStarts(e.Char('a')).Slice())
}

func TestPossibleStartsCat(t *testing.T) {
	e := NewEngine(Options{})
	// Left is not nullable: only left's starts matter.
	g := e.Cat(e.Char('a'), e.Char('b'))
	require.ElementsMatch(t, []byte{'a'}, e.PossibleStarts(g).Slice())

	// Left is nullable: both contribute.
	g2 := e.Cat(e.Optional(e.Char('a')), e.Char('b'))
	require.ElementsMatch(t, []byte{'a', 'b'}, e.PossibleStarts(g2).Slice())
}

func TestPossibleStartsUnion(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Union(e.Char('a'), e.Char('b'), e.Char('c'))
	require.ElementsMatch(t, []byte{'a', 'b', 'c'}, e.PossibleStarts(g).Slice())
}

func TestCouldHaveMatches(t *testing.T) {
	e := NewEngine(Options{})
	require.False(t, e.CouldHaveMatches(e.Null()))
	require.True(t, e.CouldHaveMatches(e.Epsilon()))
	require.True(t, e.CouldHaveMatches(e.Char('a')))

	unproductive := e.Cat(e.Char('a'), e.Null())
	require.False(t, e.CouldHaveMatches(unproductive))
}

// TestCouldHaveMatchesThroughSelfReference exercises the S6-style
// fixpoint: Seq(g) is always productive (it matches the empty string),
// and the solver must not hang resolving that through the cycle.
func TestCouldHaveMatchesThroughSelfReference(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Seq(e.Chars('0', '1'))
	require.True(t, e.CouldHaveMatches(g))
	require.True(t, e.MatchesEmpty(g))
	require.ElementsMatch(t, []byte{'0', '1'}, e.PossibleStarts(g).Slice())
}

func TestSolverMaxIterationsConfigured(t *testing.T) {
	e := NewEngine(Options{MaxFixpointIterations: 5})
	require.Equal(t, 5, e.opts.MaxFixpointIterations)
}

func TestSolverDefaultMaxIterations(t *testing.T) {
	e := NewEngine(Options{})
	require.Equal(t, DefaultMaxFixpointIterations, e.opts.MaxFixpointIterations)
}
