package grammar

import (
	"context"
	"sync"

	"github.com/genlm/grammar-go/internal/parallel"
)

// Matches reports whether g's language contains s, by folding
// Derivative over every byte of s and testing MatchesEmpty of the
// residue.
func (e *Engine) Matches(g Node, s []byte) bool {
	if g == nil {
		fail("Matches", "g is nil, not a Node")
	}
	for _, b := range s {
		g = e.derivative(g, b)
	}
	return e.MatchesEmpty(g)
}

// Matches is Engine.Matches against DefaultEngine.
func Matches(g Node, s []byte) bool { return DefaultEngine().Matches(g, s) }

// BatchMatch runs Matches(g, inputs[i]) for every input across a
// bounded worker pool and returns the results in the same order as
// inputs. Each input is matched against the same grammar from byte
// zero, so the calls share no state beyond the Engine's caches and are
// safe to run concurrently: the Engine itself serializes the solver
// and hash-cons tables internally.
func (e *Engine) BatchMatch(g Node, inputs [][]byte) []bool {
	results := make([]bool, len(inputs))
	pool := parallel.New(0)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(len(inputs))
	ctx := context.Background()
	for i, s := range inputs {
		i, s := i, s
		_ = pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = e.Matches(g, s)
		})
	}
	wg.Wait()
	return results
}

// BatchMatch is Engine.BatchMatch against DefaultEngine.
func BatchMatch(g Node, inputs [][]byte) []bool { return DefaultEngine().BatchMatch(g, inputs) }
