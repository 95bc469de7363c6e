package grammar

// derivKey memoizes Derivative by (node identity, byte). Reachable
// derivatives of any grammar built through the smart constructors form
// a finite set after hash-consing, so this cache converges even for
// self-referential grammars.
type derivKey struct {
	node Node
	b    byte
}

// Derivative returns G/b: the grammar matching exactly those strings s
// such that b·s is matched by g.
func (e *Engine) Derivative(g Node, b byte) Node {
	if g == nil {
		fail("Derivative", "g is nil, not a Node")
	}
	return e.derivative(g, b)
}

func (e *Engine) derivative(g Node, b byte) Node {
	// An unforced Lazy is derived without forcing it: the result is a
	// fresh Lazy wrapping the deferred computation. Forcing here would
	// unfold a self-referential grammar (Seq and friends) one step
	// further on every single byte, defeating the finiteness hash-consing
	// is supposed to buy back.
	if lz, ok := g.(*lazyNode); ok && !lz.forced() {
		key := derivKey{node: g, b: b}
		if cached, ok := e.lookupDeriv(key); ok {
			return cached
		}
		result := e.Lazy(func() Node { return e.derivative(force(lz), b) })
		e.storeDeriv(key, result)
		return result
	}
	if lz, ok := g.(*lazyNode); ok {
		return e.derivative(lz.resolved, b)
	}

	key := derivKey{node: g, b: b}
	if cached, ok := e.lookupDeriv(key); ok {
		return cached
	}

	if !e.PossibleStarts(g).Contains(b) {
		e.storeDeriv(key, e.null)
		return e.null
	}

	raw := e.deriveShape(g, b)
	result := e.compact(raw)

	e.storeDeriv(key, result)
	return result
}

// deriveShape applies §4.4's per-shape rule, assuming the fast-path
// pruning in derivative has already ruled out the Null case.
func (e *Engine) deriveShape(g Node, b byte) Node {
	switch n := g.(type) {
	case *nullNode:
		return e.null
	case *epsilonNode:
		return e.null
	case *charsNode:
		if n.chars.Contains(b) {
			return e.epsilon
		}
		return e.null
	case *anyNode:
		return e.Any(n.length - 1)
	case *unionNode:
		children := n.children.Slice()
		derived := make([]Node, len(children))
		for i, c := range children {
			derived[i] = e.derivative(c, b)
		}
		return e.Union(derived...)
	case *catNode:
		deltaE := e.null
		if e.MatchesEmpty(n.left) {
			deltaE = e.epsilon
		}
		term1 := e.Cat(e.derivative(n.left, b), n.right)
		// The second term's own derivative is wrapped in a fresh Lazy
		// rather than called eagerly: n.right may already be a forced
		// self-reference (Seq and friends tie their knot this way), and
		// computing its derivative eagerly here would recurse into this
		// same Cat rule before the outer call has a chance to cache its
		// result, unwinding forever. Deferring it lets Cat's own
		// null/epsilon short-circuits (deltaE is Null whenever the left
		// side of the original Cat doesn't match empty) decide whether
		// the thunk ever runs at all.
		term2 := e.Cat(deltaE, e.Lazy(func() Node { return e.derivative(n.right, b) }))
		return e.Union(term1, term2)
	default:
		panic("grammar: derivative: unreachable node shape")
	}
}

// compact collapses a freshly built residue down to Null or Epsilon
// when the bookkeeping store already proves that's all it can ever be,
// so callers folding a derivative over a long string don't carry
// around an ever-growing Union of dead branches.
func (e *Engine) compact(result Node) Node {
	if !e.CouldHaveMatches(result) {
		return e.null
	}
	if e.PossibleStarts(result).Empty() && e.MatchesEmpty(result) {
		return e.epsilon
	}
	return result
}

func (e *Engine) lookupDeriv(key derivKey) (Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.derivCache[key]
	return n, ok
}

func (e *Engine) storeDeriv(key derivKey, n Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.derivCache[key] = n
}

// Derivative is Engine.Derivative against DefaultEngine.
func Derivative(g Node, b byte) Node { return DefaultEngine().Derivative(g, b) }
