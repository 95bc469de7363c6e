package grammar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharsEmptyIsNull(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Null(), e.Chars())
}

func TestCharsFullIsDot(t *testing.T) {
	e := NewEngine(Options{})
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	require.Same(t, e.Dot(), e.Chars(all...))
}

func TestCharsHashConsed(t *testing.T) {
	e := NewEngine(Options{})
	a := e.Chars('a', 'b', 'c')
	b := e.Chars('c', 'b', 'a') // order shouldn't matter
	require.Same(t, a, b)
}

func TestAnyZeroIsEpsilon(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Epsilon(), e.Any(0))
}

func TestAnyNegativePanics(t *testing.T) {
	e := NewEngine(Options{})
	require.Panics(t, func() { e.Any(-1) })
}

func TestAnyHashConsed(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Any(3), e.Any(3))
}

func TestCatIdentities(t *testing.T) {
	e := NewEngine(Options{})
	x := e.Char('x')

	require.Same(t, e.Epsilon(), e.Cat())
	require.Same(t, x, e.Cat(x))
	require.Same(t, x, e.Cat(e.Epsilon(), x))
	require.Same(t, x, e.Cat(x, e.Epsilon()))
	require.Same(t, e.Null(), e.Cat(e.Null(), x))
	require.Same(t, e.Null(), e.Cat(x, e.Null()))
}

func TestCatFusesAny(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Any(5), e.Cat(e.Any(2), e.Any(3)))
}

func TestCatRightLeaning(t *testing.T) {
	e := NewEngine(Options{})
	a, b, c := e.Char('a'), e.Char('b'), e.Char('c')

	left := e.Cat(e.Cat(a, b), c)
	right := e.Cat(a, e.Cat(b, c))
	require.Same(t, left, right)
}

func TestCatHashConsed(t *testing.T) {
	e := NewEngine(Options{})
	a, b := e.Char('a'), e.Char('b')
	require.Same(t, e.Cat(a, b), e.Cat(a, b))
}

func TestUnionEmptyIsNull(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Null(), e.Union())
}

func TestUnionSingleChildCollapses(t *testing.T) {
	e := NewEngine(Options{})
	x := e.Char('x')
	require.Same(t, x, e.Union(x))
	require.Same(t, x, e.Union(x, e.Null()))
}

func TestUnionFlattensNested(t *testing.T) {
	e := NewEngine(Options{})
	a, b, c := e.Char('a'), e.Char('b'), e.Char('c')
	nested := e.Union(e.Union(a, b), c)
	flat := e.Union(a, b, c)
	require.Same(t, flat, nested)
}

func TestUnionMergesSingleBytes(t *testing.T) {
	e := NewEngine(Options{})
	a, b := e.Char('a'), e.Char('b')
	merged := e.Union(a, b)
	require.Same(t, e.Chars('a', 'b'), merged)
}

func TestUnionAbsorbsDotIntoFullChars(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Dot(), e.Union(e.Dot(), e.Char('a')))
}

func TestUnionHashConsed(t *testing.T) {
	e := NewEngine(Options{})
	a, b := e.Char('a'), e.Any(2)
	require.Same(t, e.Union(a, b), e.Union(b, a))
}

func TestLiteralIsCatOfChars(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Cat(e.Char('a'), e.Char('b')), e.Literal([]byte("ab")))
}

func TestLiteralEmptyIsEpsilon(t *testing.T) {
	e := NewEngine(Options{})
	require.Same(t, e.Epsilon(), e.Literal(nil))
}

func TestOptionalIsUnionWithEpsilon(t *testing.T) {
	e := NewEngine(Options{})
	g := e.Char('x')
	require.Same(t, e.Union(e.Epsilon(), g), e.Optional(g))
}

func TestConstructorsRejectNilChildren(t *testing.T) {
	e := NewEngine(Options{})
	require.Panics(t, func() { e.Cat(nil) })
	require.Panics(t, func() { e.Union(e.Char('a'), nil) })
	require.Panics(t, func() { e.Optional(nil) })
}

func TestEngineIsolation(t *testing.T) {
	e1 := NewEngine(Options{})
	e2 := NewEngine(Options{})
	require.NotSame(t, e1.Char('a'), e2.Char('a'))
}

func ExampleLiteral() {
	g := Literal([]byte("ab"))
	fmt.Println(Matches(g, []byte("ab")))
	fmt.Println(Matches(g, []byte("a")))
	fmt.Println(Matches(g, []byte("abc")))
	// Output:
	// true
	// false
	// false
}
