package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// resolveForced returns n, or if n is a Lazy that has already been
// forced, the concrete grammar it forwards to (following a chain of
// forced Lazy nodes, though in practice forcing always collapses the
// chain to a single hop — see lazy.go). Smart constructors call this on
// every child before normalizing, per §4.2: "Inputs containing a forced
// Lazy are transparently replaced by the resolved grammar before
// normalization."
func resolveForced(n Node) Node {
	for {
		lz, ok := n.(*lazyNode)
		if !ok || !lz.forced() {
			return n
		}
		n = lz.resolved
	}
}

// keyForChars returns a canonical, order-independent key for a set of
// bytes: the bytes sorted ascending, held directly as a Go string
// (which is just a byte sequence, so values up to 0xFF round-trip
// exactly).
func keyForChars(bs []byte) string {
	sorted := append([]byte(nil), bs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return "chars:" + string(sorted)
}

func keyForAny(n int) string {
	return fmt.Sprintf("any:%d", n)
}

// keyForCat keys on the identity (pointer) of already hash-consed
// children: same children, same key, same Cat.
func keyForCat(left, right Node) string {
	return fmt.Sprintf("cat:%p:%p", left, right)
}

// keyForUnion keys on the sorted identities of already hash-consed
// children. Order doesn't matter to the grammar, so the key must not
// depend on the order children were supplied in.
func keyForUnion(children []Node) string {
	ptrs := make([]string, len(children))
	for i, c := range children {
		ptrs[i] = fmt.Sprintf("%p", c)
	}
	sort.Strings(ptrs)
	return "union:" + strings.Join(ptrs, ",")
}

// keyForCall builds a build-key (INPUT_CACHE key) for a public,
// possibly-variadic constructor from its constructor name and the
// identities/values of its raw arguments, before any normalization.
func keyForCall(name string, parts ...string) string {
	return name + "(" + strings.Join(parts, ",") + ")"
}

// fmtPointer returns a stable textual key for a Node's identity, used
// to build a call signature out of raw (possibly unresolved-Lazy)
// constructor arguments.
func fmtPointer(n Node) string {
	return fmt.Sprintf("%p", n)
}
