package grammar

// force resolves a Lazy node to its concrete grammar, running its
// thunk at most once per distinct recursive definition it passes
// through. It implements §4.1's self-reference resolution: the walk
// below operates purely on node identity and rewrites exactly two
// shapes, both meaning "this branch refers back to something already
// on this walk's seen set":
//
//   - a Union containing any already-seen node as a child: every such
//     child is redundant in the alternation (X = ... | X | ... names
//     the same language without the repeated term), so they are
//     dropped and the union rebuilt from what's left.
//   - a Cat whose left or right child is an already-seen node: a
//     concatenation that refers to its own unresolved result on either
//     side can never be productive there, so it collapses to Null.
//
// seen accumulates every Lazy discovered along one self-referential
// chain (the original lz plus any further Lazy the walk chases through
// the *lazyNode case below), not just lz itself — a mutually-recursive
// pair of equations such as x=lazy(()=>y); y=lazy(()=>Cat(a,y)) must
// collapse y's Cat(a,y) to Null too, even though the walk started at x,
// not y.
//
// Neither rewrite recurses into unrelated structure: a self-reference
// nested two levels down (for example inside a Cat that is itself
// buried inside a Union) is left in place. That is not a bug in the
// walk, it is the mechanism by which Seq ties its own knot — the
// forced value of X = Lazy(() => Union(Epsilon, Cat(g, X))) is allowed
// to keep holding a live pointer back to X once X is marked forced;
// dereferencing it later just follows the pointer into the same
// structure again, which is exactly the cyclic transition graph a
// Brzozowski automaton for unbounded repetition requires. Trying to
// inline that reference away would unfold Seq into an infinite tree.
//
// When thunked is itself a Lazy, the walk chases it (forcing it in
// turn if necessary) and remembers it on toAssign, so every Lazy
// discovered along one self-referential chain gets the same final
// value — mirroring a mutually-recursive pair of equations settling
// together instead of one at a time.
func force(lz *lazyNode) Node {
	if lz.resolved != nil {
		return lz.resolved
	}

	eng := lz.engine
	thunked := lz.thunk()

	seen := map[Node]bool{Node(lz): true}
	toAssign := []*lazyNode{lz}

loop:
	for {
		if seen[thunked] {
			thunked = eng.null
			break
		}
		seen[thunked] = true

		switch t := thunked.(type) {
		case *unionNode:
			anySeen := false
			t.children.ForEach(func(c Node) bool {
				if seen[c] {
					anySeen = true
					return false
				}
				return true
			})
			if !anySeen {
				break loop
			}
			remaining := make([]Node, 0, t.children.Size())
			t.children.ForEach(func(c Node) bool {
				if !seen[c] {
					remaining = append(remaining, c)
				}
				return true
			})
			thunked = eng.Union(remaining...)

		case *catNode:
			if !seen[t.left] && !seen[t.right] {
				break loop
			}
			thunked = eng.null

		case *lazyNode:
			if t == lz {
				break loop
			}
			if t.forced() {
				thunked = t.resolved
			} else {
				toAssign = append(toAssign, t)
				thunked = t.thunk()
			}

		default:
			break loop
		}
	}

	for _, t := range toAssign {
		t.resolved = thunked
	}
	return thunked
}
