package grammar

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// Node is a grammar expression. There are exactly seven shapes
// (Null, Epsilon, Chars, Any, Cat, Union, Lazy); the set is closed and
// callers never implement Node themselves. Once built through a smart
// constructor, a Node is immutable except for its bookkeeping slot,
// which the solver fills in monotonically. Two Nodes are equal iff they
// are the same pointer — hash-consing guarantees structurally equal,
// normalized grammars always share one identity.
type Node interface {
	fmt.Stringer

	// grammarNode seals Node to this package.
	grammarNode()

	// book returns the node's mutable bookkeeping slot.
	book() *bookKeeping
}

// nodeBase carries the one thing every node shape has: a bookkeeping
// slot. Embedding it gives every concrete type book() for free.
type nodeBase struct {
	bk bookKeeping
}

func (n *nodeBase) grammarNode()       {}
func (n *nodeBase) book() *bookKeeping { return &n.bk }

// nullNode matches nothing. There is exactly one instance per Engine.
type nullNode struct{ nodeBase }

func (n *nullNode) String() string { return "null" }

// epsilonNode matches exactly the empty string. One instance per Engine.
type epsilonNode struct{ nodeBase }

func (n *epsilonNode) String() string { return "epsilon" }

// charsNode matches a single byte drawn from a non-empty, non-full set.
// Empty collapses to Null and full collapses to Any(1) in the smart
// constructor, so a *charsNode in the wild always has 1..255 members.
type charsNode struct {
	nodeBase
	chars *set.Set[byte]
}

func (n *charsNode) String() string {
	bs := n.chars.Slice()
	return fmt.Sprintf("chars(%d bytes)", len(bs))
}

// anyNode matches exactly length arbitrary bytes. length is always >= 1
// (Any(0) collapses to Epsilon in the smart constructor).
type anyNode struct {
	nodeBase
	length int
}

func (n *anyNode) String() string { return fmt.Sprintf("any(%d)", n.length) }

// catNode is the concatenation of left then right. The smart
// constructor keeps Cat right-leaning and never produces a Cat whose
// left or right is Epsilon or Null.
type catNode struct {
	nodeBase
	left, right Node
}

func (n *catNode) String() string {
	var parts []string
	parts = append(parts, n.left.String())
	rest := n.right
	for {
		if c, ok := rest.(*catNode); ok {
			parts = append(parts, c.left.String())
			rest = c.right
			continue
		}
		break
	}
	parts = append(parts, rest.String())
	return fmt.Sprintf("cat(%s)", strings.Join(parts, ", "))
}

// unionNode is the alternation of two or more children. The smart
// constructor flattens nested unions, merges single-byte alternatives
// into one Chars child, and never produces a union of fewer than two
// children.
type unionNode struct {
	nodeBase
	children *set.Set[Node]
}

func (n *unionNode) String() string {
	parts := make([]string, 0, n.children.Size())
	n.children.ForEach(func(c Node) bool {
		parts = append(parts, c.String())
		return true
	})
	return fmt.Sprintf("union(%s)", strings.Join(parts, ", "))
}

// lazyNode is a placeholder used to tie a self-referential definition.
// It is never hash-consed (every call to Lazy produces a fresh
// identity); once resolved it forwards to a concrete Node forever. See
// lazy.go for the resolution algorithm.
type lazyNode struct {
	nodeBase

	thunk    func() Node
	resolved Node // nil until forced
	engine   *Engine
}

func (n *lazyNode) String() string {
	if n.resolved != nil {
		return "lazy(resolved)"
	}
	return "lazy(unresolved)"
}

// forced reports whether this Lazy has already been resolved.
func (n *lazyNode) forced() bool { return n.resolved != nil }
