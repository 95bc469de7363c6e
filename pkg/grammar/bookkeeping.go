package grammar

import "github.com/hashicorp/go-set/v3"

// property names one of the three mutually-recursive attributes the
// solver computes for a node.
type property string

const (
	propMatchesEmpty     property = "matches_empty"
	propPossibleStarts   property = "possible_starts"
	propCouldHaveMatches property = "could_have_matches"
)

// bookKeeping is the per-node mutable attribute record. Its zero value
// is the lattice bottom for every field: an unfinished solver state is
// always a safe under-approximation. Leaf nodes (Null, Epsilon, Chars,
// Any) are given their exact final values and marked complete the
// moment they're constructed; composite nodes (Cat, Union, Lazy) start
// at bottom and are only ever raised by the solver.
type bookKeeping struct {
	matchesEmpty     bool
	possibleStarts   *set.Set[byte]
	couldHaveMatches bool
	complete         *set.Set[property]
}

// newBookKeeping returns a bookkeeping record at the lattice bottom.
func newBookKeeping() bookKeeping {
	return bookKeeping{
		possibleStarts: set.New[byte](0),
		complete:       set.New[property](0),
	}
}

// allProperties is the full set of tracked properties, used to mark a
// leaf node complete in one step.
func allProperties() *set.Set[property] {
	return set.From([]property{propMatchesEmpty, propPossibleStarts, propCouldHaveMatches})
}

func (bk *bookKeeping) isComplete(p property) bool {
	return bk.complete.Contains(p)
}

func (bk *bookKeeping) markComplete(p property) {
	bk.complete.Insert(p)
}
