// Command grammarcli is a small command-line harness over pkg/grammar:
// it builds one of a few fixed demo grammars, reports its MatchesEmpty
// and PossibleStarts once, and then reports Matches for each string
// given on stdin, one per line. It exists for manual poking at the engine from a shell,
// not as a supported embedding surface.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	grammar "github.com/genlm/grammar-go/pkg/grammar"
)

func buildGrammar(kind, literal string) (grammar.Node, error) {
	switch kind {
	case "literal":
		return grammar.Literal([]byte(literal)), nil
	case "seq":
		if len(literal) == 0 {
			return nil, fmt.Errorf("seq needs a non-empty -literal giving the byte alphabet")
		}
		return grammar.Seq(grammar.Chars([]byte(literal)...)), nil
	case "optional":
		return grammar.Optional(grammar.Literal([]byte(literal))), nil
	default:
		return nil, fmt.Errorf("unknown -kind %q (want literal, seq, or optional)", kind)
	}
}

func main() {
	kind := flag.String("kind", "literal", "grammar to build: literal, seq, or optional")
	literal := flag.String("literal", "ab", "literal text, or for -kind=seq the repeating byte alphabet")
	flag.Parse()

	g, err := buildGrammar(*kind, *literal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "grammarcli: %v\n", err)
		os.Exit(2)
	}

	fmt.Fprintf(os.Stderr, "grammar: -kind=%s -literal=%q\n", *kind, *literal)
	fmt.Fprintf(os.Stderr, "matches_empty=%v possible_starts=%v\n", grammar.MatchesEmpty(g), grammar.PossibleStarts(g).Slice())
	fmt.Fprintln(os.Stderr, "enter strings on stdin, one per line:")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Printf("matches(%q) = %v\n", line, grammar.Matches(g, []byte(line)))
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "grammarcli: reading stdin: %v\n", err)
		os.Exit(1)
	}
}
