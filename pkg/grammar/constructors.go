package grammar

import "github.com/hashicorp/go-set/v3"

// fullByteSet returns the set of all 256 bytes. It is rebuilt per call
// rather than shared, since possibleStarts is mutated in place by
// nothing but the solver and every composite node must own its set.
func fullByteSet() *set.Set[byte] {
	s := set.New[byte](256)
	for b := 0; ; b++ {
		s.Insert(byte(b))
		if b == 255 {
			break
		}
	}
	return s
}

// Null returns the grammar matching nothing. There is exactly one Null
// per Engine.
func (e *Engine) Null() Node { return e.null }

// Epsilon returns the grammar matching exactly the empty string. There
// is exactly one Epsilon per Engine.
func (e *Engine) Epsilon() Node { return e.epsilon }

// ensureNonNil panics with one ConstructionError naming every nil
// argument, so a caller building a Cat or Union out of a slice with a
// bug in it sees every bad index at once.
func ensureNonNil(constructor string, nodes []Node) {
	v := newViolations(constructor)
	for i, n := range nodes {
		if n == nil {
			v.addf("argument %d is nil, not a Node", i)
		}
	}
	v.check()
}

// charsFromSet returns the canonical grammar matching exactly one byte
// from bs: Null if bs is empty, Dot if bs is the full byte range,
// otherwise an interned Chars node.
func (e *Engine) charsFromSet(bs *set.Set[byte]) Node {
	switch bs.Size() {
	case 0:
		return e.null
	case 256:
		return e.Dot()
	default:
		key := "chars:" + keyForChars(bs.Slice())
		return e.intern(key, func() Node {
			n := &charsNode{nodeBase{bk: newBookKeeping()}, bs.Copy()}
			n.bk.matchesEmpty = false
			n.bk.couldHaveMatches = true
			n.bk.possibleStarts = bs.Copy()
			n.bk.complete = allProperties()
			return n
		})
	}
}

// Chars returns the grammar matching exactly one byte from bs.
func (e *Engine) Chars(bs ...byte) Node {
	return e.charsFromSet(set.From(bs))
}

// CharsSet is Chars for callers who already hold a *set.Set[byte].
func (e *Engine) CharsSet(bs *set.Set[byte]) Node {
	return e.charsFromSet(bs)
}

// Char returns the grammar matching exactly the single byte b.
func (e *Engine) Char(b byte) Node {
	return e.Chars(b)
}

// Any returns the grammar matching exactly n arbitrary bytes. Any(0)
// is Epsilon. Panics if n is negative.
func (e *Engine) Any(n int) Node {
	if n < 0 {
		fail("Any", "length must be >= 0, got %d", n)
	}
	if n == 0 {
		return e.epsilon
	}
	key := keyForAny(n)
	return e.intern(key, func() Node {
		nd := &anyNode{nodeBase{bk: newBookKeeping()}, n}
		nd.bk.matchesEmpty = false
		nd.bk.couldHaveMatches = true
		nd.bk.possibleStarts = fullByteSet()
		nd.bk.complete = allProperties()
		return nd
	})
}

// Dot returns Any(1), the grammar matching any single byte.
func (e *Engine) Dot() Node { return e.Any(1) }

// catTwo is the binary, fully-normalizing concatenation used to fold a
// variadic Cat call. It implements every Cat canonical-form rule in
// §3: Epsilon neighbours drop out, either side Null collapses to
// Null, nested Cats are re-associated right-leaning, and adjacent Anys
// fuse their lengths.
func (e *Engine) catTwo(left, right Node) Node {
	left = resolveForced(left)
	right = resolveForced(right)

	if _, ok := left.(*epsilonNode); ok {
		return right
	}
	if _, ok := right.(*epsilonNode); ok {
		return left
	}
	if _, ok := left.(*nullNode); ok {
		return e.null
	}
	if _, ok := right.(*nullNode); ok {
		return e.null
	}
	if lc, ok := left.(*catNode); ok {
		return e.catTwo(lc.left, e.catTwo(lc.right, right))
	}
	if la, ok := left.(*anyNode); ok {
		if ra, ok := right.(*anyNode); ok {
			return e.Any(la.length + ra.length)
		}
	}

	key := keyForCat(left, right)
	return e.intern(key, func() Node {
		return &catNode{nodeBase{bk: newBookKeeping()}, left, right}
	})
}

// Cat returns the concatenation of nodes, left to right. Cat() is
// Epsilon and Cat(x) is x.
func (e *Engine) Cat(nodes ...Node) Node {
	ensureNonNil("Cat", nodes)
	resolved := make([]Node, len(nodes))
	for i, n := range nodes {
		resolved[i] = resolveForced(n)
	}

	parts := make([]string, len(resolved))
	for i, n := range resolved {
		parts[i] = keyForNodeIdentity(n)
	}
	key := keyForCall("cat", parts...)

	return e.buildOnce(key, func() Node {
		switch len(resolved) {
		case 0:
			return e.epsilon
		case 1:
			return resolved[0]
		default:
			result := resolved[len(resolved)-1]
			for i := len(resolved) - 2; i >= 0; i-- {
				result = e.catTwo(resolved[i], result)
			}
			return result
		}
	})
}

// Union returns the alternation of nodes, flattening nested unions,
// merging every single-byte alternative (including Dot) into one Chars
// child, and dropping Null children. Union() is Null and a flattened
// result with one surviving child is that child, not a one-child
// Union.
func (e *Engine) Union(nodes ...Node) Node {
	ensureNonNil("Union", nodes)
	resolved := make([]Node, len(nodes))
	for i, n := range nodes {
		resolved[i] = resolveForced(n)
	}

	parts := make([]string, len(resolved))
	for i, n := range resolved {
		parts[i] = keyForNodeIdentity(n)
	}
	key := keyForCall("union", parts...)

	return e.buildOnce(key, func() Node {
		singleCharacters := set.New[byte](0)
		flattened := set.New[Node](0)
		hasEpsilon := false

		stack := [][]Node{resolved}
		for len(stack) > 0 {
			batch := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, child := range batch {
				child = resolveForced(child)
				switch c := child.(type) {
				case *charsNode:
					singleCharacters.InsertSlice(c.chars.Slice())
				case *unionNode:
					stack = append(stack, c.children.Slice())
				case *nullNode:
					continue
				case *epsilonNode:
					hasEpsilon = true
				case *anyNode:
					if c.length == 1 {
						// FIXME: builds the full 256-byte set just to merge it in;
						// cheap in practice since Dot collapses Chars to Any(1)
						// right back the moment the set is full.
						singleCharacters.InsertSet(fullByteSet())
					} else {
						flattened.Insert(child)
					}
				default:
					flattened.Insert(child)
				}
			}
		}

		if hasEpsilon {
			flattened.Insert(e.epsilon)
		}
		if singleCharacters.Empty() && flattened.Empty() {
			return e.null
		}
		if !singleCharacters.Empty() {
			flattened.Insert(e.charsFromSet(singleCharacters))
		}

		switch flattened.Size() {
		case 0:
			return e.null
		case 1:
			return flattened.Slice()[0]
		default:
			children := flattened.Slice()
			unionKey := keyForUnion(children)
			return e.intern(unionKey, func() Node {
				return &unionNode{nodeBase{bk: newBookKeeping()}, set.From(children)}
			})
		}
	})
}

// Literal returns Cat(Chars({b1}), ..., Chars({bn})) for the given
// bytes: the grammar matching exactly that byte string.
func (e *Engine) Literal(bs []byte) Node {
	nodes := make([]Node, len(bs))
	for i, b := range bs {
		nodes[i] = e.Char(b)
	}
	return e.Cat(nodes...)
}

// Optional returns Union(Epsilon, g): the grammar matching either the
// empty string or whatever g matches.
func (e *Engine) Optional(g Node) Node {
	if g == nil {
		fail("Optional", "g is nil, not a Node")
	}
	return e.Union(e.epsilon, g)
}

// Seq returns the least fixed point of X = Epsilon | (g · X): zero or
// more repetitions of g. The self-reference is tied with Lazy, exactly
// the pattern §4.1 exists to support.
func (e *Engine) Seq(g Node) Node {
	if g == nil {
		fail("Seq", "g is nil, not a Node")
	}
	var x Node
	x = e.Lazy(func() Node {
		return e.Union(e.epsilon, e.Cat(g, x))
	})
	return x
}

// Lazy returns a placeholder grammar that invokes thunk at most once,
// the first time its value is demanded (by a query, a derivative, or
// another constructor normalizing it away). See lazy.go for the
// resolution algorithm tying recursive definitions. Unlike every other
// constructor, Lazy nodes are never hash-consed: each call produces a
// fresh identity, since two syntactically identical thunks may still
// close over different self-references.
func (e *Engine) Lazy(thunk func() Node) Node {
	if thunk == nil {
		fail("Lazy", "thunk is nil")
	}
	return &lazyNode{nodeBase: nodeBase{bk: newBookKeeping()}, thunk: thunk, engine: e}
}

// keyForNodeIdentity returns a stable textual key for a Node's
// identity, used to build a call signature out of raw (possibly
// unresolved-Lazy) arguments.
func keyForNodeIdentity(n Node) string {
	return fmtPointer(n)
}

// Package-level convenience constructors operating against DefaultEngine.

func Null() Node                      { return DefaultEngine().Null() }
func Epsilon() Node                   { return DefaultEngine().Epsilon() }
func Chars(bs ...byte) Node           { return DefaultEngine().Chars(bs...) }
func CharsSet(bs *set.Set[byte]) Node { return DefaultEngine().CharsSet(bs) }
func Char(b byte) Node                { return DefaultEngine().Char(b) }
func Any(n int) Node                  { return DefaultEngine().Any(n) }
func Dot() Node                       { return DefaultEngine().Dot() }
func Cat(nodes ...Node) Node          { return DefaultEngine().Cat(nodes...) }
func Union(nodes ...Node) Node        { return DefaultEngine().Union(nodes...) }
func Literal(bs []byte) Node          { return DefaultEngine().Literal(bs) }
func Optional(g Node) Node            { return DefaultEngine().Optional(g) }
func Seq(g Node) Node                 { return DefaultEngine().Seq(g) }
func Lazy(thunk func() Node) Node     { return DefaultEngine().Lazy(thunk) }
