// Package grammar — API stability notes.
//
// # API Stability
//
// This package follows semantic versioning for its public surface: the
// node constructors (Null, Epsilon, Chars, Char, Any, Dot, Cat, Union,
// Literal, Optional, Seq, Lazy) and the queries (MatchesEmpty,
// PossibleStarts, CouldHaveMatches, Derivative, Matches) are the
// contract. Internal layout of Node, the hash-cons tables, and the
// solver's worklist machinery are not part of that contract and may
// change between minor versions.
//
// Current version: 0.1.0 — first cut, no deprecated APIs.
package grammar
