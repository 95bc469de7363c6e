package grammar

import "github.com/hashicorp/go-set/v3"

// target names one of the three bookkeeping properties of one node.
// It is the unit the solver tracks dependencies, dirtiness, and
// completion against.
type target struct {
	prop property
	node Node
}

// bookKeeper runs one cooperative worklist fixed-point pass computing
// bookkeeping properties over however much of the grammar's dependency
// graph a single top-level query touches. It is grounded on the
// donor's BookKeeper: a dirty worklist drained round by round, a
// reverse-dependency index (watches) recording who to wake when a
// value rises, and values_requested tracking which other targets the
// current calculation read, so the dependency edges can be recorded
// after the fact without the calc_* routines having to declare them
// up front.
//
// One bookKeeper is scoped to a single query; it is discarded once
// run returns. Its lifetime never outlives the Engine.solveMu
// critical section that creates it.
type bookKeeper struct {
	engine *Engine

	targets         map[target]bool
	watches         map[target]map[target]bool
	dirty           map[target]bool
	valuesRequested map[target]bool
}

func newBookKeeper(e *Engine) *bookKeeper {
	return &bookKeeper{
		engine:  e,
		targets: make(map[target]bool),
		watches: make(map[target]map[target]bool),
		dirty:   make(map[target]bool),
	}
}

// maxIterationsError is panicked when a solver pass runs past
// Options.MaxFixpointIterations, the safety valve documented on that
// field.
type maxIterationsError struct {
	limit int
}

func (e *maxIterationsError) Error() string {
	return "grammar: solver exceeded its fixpoint iteration limit; this points to a bug in a custom Node construction outside the smart constructors"
}

// run drains the dirty worklist until it is empty, then marks every
// target this pass ever touched as complete. Every property on every
// node it reached now holds its final, correct value.
func (bk *bookKeeper) run() {
	iterations := 0
	for len(bk.dirty) > 0 {
		iterations++
		if iterations > bk.engine.opts.MaxFixpointIterations {
			panic(&maxIterationsError{limit: bk.engine.opts.MaxFixpointIterations})
		}

		needsRecalculation := bk.dirty
		bk.dirty = make(map[target]bool)

		for t := range needsRecalculation {
			if bk.isComplete(t) {
				continue
			}
			bk.valuesRequested = make(map[target]bool)

			var value interface{}
			if lz, ok := t.node.(*lazyNode); ok {
				resolved := force(lz)
				value = bk.getValue(target{prop: t.prop, node: resolved})
			} else {
				value = bk.calc(t)
			}
			bk.setValue(t, value)

			for v := range bk.valuesRequested {
				bk.dependency(t, v)
			}
		}
	}

	for t := range bk.targets {
		bk.markComplete(t)
	}

	if logger := bk.engine.opts.Logger; logger != nil {
		logger.Debug("grammar: fixpoint pass complete", "targets", len(bk.targets))
	}
}

func (bk *bookKeeper) calc(t target) interface{} {
	switch t.prop {
	case propMatchesEmpty:
		return bk.calcMatchesEmpty(t.node)
	case propPossibleStarts:
		return bk.calcPossibleStarts(t.node)
	case propCouldHaveMatches:
		return bk.calcCouldHaveMatches(t.node)
	default:
		panic("grammar: unknown bookkeeping property " + string(t.prop))
	}
}

// calcMatchesEmpty handles Cat and Union; every other shape has its
// exact value fixed at construction and never reaches here.
func (bk *bookKeeper) calcMatchesEmpty(n Node) bool {
	switch g := n.(type) {
	case *catNode:
		return bk.matchesEmpty(g.left) && bk.matchesEmpty(g.right)

	case *unionNode:
		children := g.children.Slice()
		var resolved, unresolved []Node
		for _, c := range children {
			if c.book().matchesEmpty {
				return true
			}
			if lz, ok := c.(*lazyNode); ok && !lz.forced() {
				unresolved = append(unresolved, c)
			} else {
				resolved = append(resolved, c)
			}
		}
		// Resolved children first: cheaper, and never triggers a thunk.
		for _, c := range resolved {
			if bk.matchesEmpty(c) {
				return true
			}
		}
		for _, c := range unresolved {
			if bk.matchesEmpty(c) {
				return true
			}
		}
		return false

	default:
		panic("grammar: calcMatchesEmpty called on a leaf node")
	}
}

func (bk *bookKeeper) calcPossibleStarts(n Node) *set.Set[byte] {
	switch g := n.(type) {
	case *catNode:
		if bk.matchesEmpty(g.left) {
			result := bk.possibleStarts(g.left).Copy()
			result.InsertSet(bk.possibleStarts(g.right))
			return result
		}
		return bk.possibleStarts(g.left).Copy()

	case *unionNode:
		result := set.New[byte](0)
		for _, c := range g.children.Slice() {
			result.InsertSet(bk.possibleStarts(c))
			if result.Size() == 256 {
				break
			}
		}
		return result

	default:
		panic("grammar: calcPossibleStarts called on a leaf node")
	}
}

func (bk *bookKeeper) calcCouldHaveMatches(n Node) bool {
	if bk.matchesEmpty(n) {
		return true
	}
	if bk.possibleStarts(n).Empty() {
		return false
	}
	switch g := n.(type) {
	case *catNode:
		return bk.couldHaveMatches(g.left) && bk.couldHaveMatches(g.right)
	case *unionNode:
		for _, c := range g.children.Slice() {
			if bk.couldHaveMatches(c) {
				return true
			}
		}
		return false
	default:
		panic("grammar: calcCouldHaveMatches called on a leaf node")
	}
}

func (bk *bookKeeper) matchesEmpty(n Node) bool {
	return bk.getValue(target{propMatchesEmpty, n}).(bool)
}

func (bk *bookKeeper) possibleStarts(n Node) *set.Set[byte] {
	return bk.getValue(target{propPossibleStarts, n}).(*set.Set[byte])
}

func (bk *bookKeeper) couldHaveMatches(n Node) bool {
	return bk.getValue(target{propCouldHaveMatches, n}).(bool)
}

func (bk *bookKeeper) request(t target) {
	if bk.isComplete(t) {
		return
	}
	if !bk.targets[t] {
		bk.targets[t] = true
		bk.dirty[t] = true
	}
}

func (bk *bookKeeper) dependency(from, to target) {
	if bk.isComplete(to) {
		return
	}
	bk.request(to)
	if bk.watches[to] == nil {
		bk.watches[to] = make(map[target]bool)
	}
	bk.watches[to][from] = true
}

func (bk *bookKeeper) isComplete(t target) bool {
	return t.node.book().isComplete(t.prop)
}

func (bk *bookKeeper) markComplete(t target) {
	t.node.book().markComplete(t.prop)
}

// getValue reads the current (possibly still-bottom) value of t and
// records that the calculation in progress depends on it.
func (bk *bookKeeper) getValue(t target) interface{} {
	bk.valuesRequested[t] = true
	b := t.node.book()
	switch t.prop {
	case propMatchesEmpty:
		return b.matchesEmpty
	case propPossibleStarts:
		return b.possibleStarts
	case propCouldHaveMatches:
		return b.couldHaveMatches
	default:
		panic("grammar: unknown bookkeeping property " + string(t.prop))
	}
}

// setValue installs a newly computed value, waking every target that
// previously read the old one only if the value actually changed —
// the step that keeps the worklist from growing forever on a
// self-referential grammar once its values settle.
func (bk *bookKeeper) setValue(t target, value interface{}) {
	b := t.node.book()
	switch t.prop {
	case propMatchesEmpty:
		v := value.(bool)
		if b.matchesEmpty != v {
			b.matchesEmpty = v
			bk.wake(t)
		}
	case propPossibleStarts:
		v := value.(*set.Set[byte])
		if !b.possibleStarts.Equal(v) {
			b.possibleStarts = v
			bk.wake(t)
		}
	case propCouldHaveMatches:
		v := value.(bool)
		if b.couldHaveMatches != v {
			b.couldHaveMatches = v
			bk.wake(t)
		}
	default:
		panic("grammar: unknown bookkeeping property " + string(t.prop))
	}
}

func (bk *bookKeeper) wake(t target) {
	for dependent := range bk.watches[t] {
		bk.dirty[dependent] = true
	}
}

// ensureComplete runs a fresh solver pass for prop on g if it isn't
// already complete. Top-level queries (MatchesEmpty, PossibleStarts,
// CouldHaveMatches) all funnel through here, serialized by solveMu:
// the solver mutates Node bookkeeping in place and is not safe to run
// concurrently with itself on a shared Engine.
func (e *Engine) ensureComplete(prop property, g Node) {
	e.solveMu.Lock()
	defer e.solveMu.Unlock()

	if g.book().isComplete(prop) {
		return
	}

	bk := newBookKeeper(e)
	e.currentSolver = bk
	defer func() { e.currentSolver = nil }()

	bk.request(target{prop, g})
	bk.run()
}

// MatchesEmpty reports whether g's language contains the empty string.
func (e *Engine) MatchesEmpty(g Node) bool {
	e.ensureComplete(propMatchesEmpty, g)
	return g.book().matchesEmpty
}

// PossibleStarts returns the set of bytes that can begin some string
// in g's language. The returned set is a defensive copy; callers may
// mutate it freely.
func (e *Engine) PossibleStarts(g Node) *set.Set[byte] {
	e.ensureComplete(propPossibleStarts, g)
	return g.book().possibleStarts.Copy()
}

// CouldHaveMatches reports whether g's language is non-empty.
func (e *Engine) CouldHaveMatches(g Node) bool {
	e.ensureComplete(propCouldHaveMatches, g)
	return g.book().couldHaveMatches
}

func MatchesEmpty(g Node) bool             { return DefaultEngine().MatchesEmpty(g) }
func PossibleStarts(g Node) *set.Set[byte] { return DefaultEngine().PossibleStarts(g) }
func CouldHaveMatches(g Node) bool         { return DefaultEngine().CouldHaveMatches(g) }
