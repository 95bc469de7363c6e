package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLazyForcedOnce(t *testing.T) {
	e := NewEngine(Options{})
	calls := 0
	lz := e.Lazy(func() Node {
		calls++
		return e.Char('a')
	})

	require.Equal(t, 0, calls)
	require.Same(t, e.Char('a'), force(lz.(*lazyNode)))
	require.Same(t, e.Char('a'), force(lz.(*lazyNode)))
	require.Equal(t, 1, calls)
}

func TestLazyNotHashConsed(t *testing.T) {
	e := NewEngine(Options{})
	thunk := func() Node { return e.Char('a') }
	require.NotSame(t, e.Lazy(thunk), e.Lazy(thunk))
}

// TestSeqTiesItsOwnKnot exercises the self-reference rewrite in
// force(): Seq's defining equation X = Union(Epsilon, Cat(g, X)) must
// settle into a finite, cyclic structure rather than hanging or
// growing without bound.
func TestSeqTiesItsOwnKnot(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Chars('0', '1')
	x := e.Seq(g)

	lz, ok := x.(*lazyNode)
	require.True(t, ok)
	require.False(t, lz.forced())

	resolved := force(lz)
	require.True(t, lz.forced())
	require.Same(t, resolved, lz.resolved)

	// Forcing again must be idempotent and return the same value.
	require.Same(t, resolved, force(lz))
}

func TestUnionDropsRedundantSelfReference(t *testing.T) {
	e := NewEngine(Options{})
	var x Node
	// X = a | X  (the self-reference is redundant: L(X) = {"a"}).
	x = e.Lazy(func() Node {
		return e.Union(e.Char('a'), x)
	})

	resolved := force(x.(*lazyNode))
	require.Same(t, e.Char('a'), resolved)
}

func TestCatSelfReferenceIsUnproductive(t *testing.T) {
	e := NewEngine(Options{})
	var x Node
	// X = a . X  has no finite derivation: collapses to Null.
	x = e.Lazy(func() Node {
		return e.Cat(e.Char('a'), x)
	})

	resolved := force(x.(*lazyNode))
	require.Same(t, e.Null(), resolved)
}

// TestMutualSelfReferenceCollapsesThroughChain exercises force()'s
// seen-set membership test across a chain of two distinct Lazy nodes:
// x refers to y, and y refers back to itself through a Cat. Forcing x
// must also collapse y's Cat(a, y) to Null, not just rewrite shapes
// that refer to x directly.
func TestMutualSelfReferenceCollapsesThroughChain(t *testing.T) {
	e := NewEngine(Options{})
	var x, y Node
	x = e.Lazy(func() Node { return y })
	y = e.Lazy(func() Node { return e.Cat(e.Char('a'), y) })

	resolved := force(x.(*lazyNode))
	require.Same(t, e.Null(), resolved)

	yl := y.(*lazyNode)
	require.True(t, yl.forced())
	require.Same(t, e.Null(), yl.resolved)
}
