// Package grammar implements a Brzozowski-style derivative engine over
// byte-level grammars.
//
// A grammar is a hash-consed expression tree built from seven node
// shapes: Null (matches nothing), Epsilon (matches the empty string),
// Chars (matches one byte from a set), Any (matches exactly n bytes),
// Cat (concatenation), Union (alternation), and Lazy (a placeholder
// used to tie self-referential, recursive grammars). Every public
// constructor normalizes its result into canonical form and interns it
// in the owning Engine, so structurally equal grammars always share one
// identity; identity, not deep equality, is used for comparison and for
// memoizing derivatives.
//
// Three semantic properties of a grammar — whether it matches the empty
// string, which bytes can start a match, and whether it can match
// anything at all — are mutually recursive over a graph that may
// contain cycles (introduced by Lazy). They are computed by a
// cooperative worklist solver (BookKeeper) that runs to a monotone
// fixed point on demand and memoizes the result per node.
//
// The derivative of a grammar G with respect to a byte b is another
// grammar G' accepting exactly the continuations s such that b·s is in
// L(G). Repeated derivation followed by a matches-empty check is how
// this package answers membership queries; it never builds a parse
// tree and never tokenizes a stream.
//
// # Scope
//
// This package is byte-oriented (the alphabet is 0..=255, not Unicode
// codepoints), has no backreferences, lookaround, or capture groups,
// and answers membership and next-byte feasibility only. Turning a
// surface grammar (regex, CFG, Lark-style syntax) into this algebra,
// converting it to or from a weighted finite automaton, and any
// semiring-weighted parsing on top of it are the job of a calling
// package, not this one.
//
// # Concurrency
//
// An Engine is the single owner of a grammar's shared tables (the
// hash-cons caches, the derivative cache, and the currently-running
// solver, if any) and is safe for concurrent use. Two independent locks
// guard it: one serializes constructor calls and cache lookups, the
// other serializes fixed-point solver passes. They are kept separate
// because a solver pass forces Lazy nodes, and forcing a Lazy calls
// back into Union/Cat construction — holding a single lock across an
// entire solver pass would deadlock the moment that happens. A
// golang.org/x/sync/singleflight group collapses duplicate concurrent
// builds of the same canonical node onto one builder. The solver
// itself is still a single cooperative pass run to saturation under
// its own lock — concurrency here means "many callers share one engine
// safely", not "the fixed point is computed in parallel". Package-level
// functions such as Cat and Matches operate against a package-wide
// DefaultEngine for callers who only need one engine.
package grammar
