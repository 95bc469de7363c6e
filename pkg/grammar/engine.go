package grammar

import (
	"sync"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"
)

// Options configures an Engine. The zero value is ready to use; every
// field has a sensible default applied by NewEngine.
type Options struct {
	// MaxFixpointIterations bounds the solver's worklist loop as a
	// safety valve against a runaway dependency graph. The spec's
	// finiteness argument (§4.3/§4.4) means this should never trigger
	// for grammars built exclusively through the smart constructors;
	// it exists so a bug degrades into an error instead of a hang.
	// Zero means DefaultMaxFixpointIterations.
	MaxFixpointIterations int

	// Logger receives one Debug line per completed solver fixpoint
	// pass. Nil (the default) means no logging at all.
	Logger hclog.Logger
}

// DefaultMaxFixpointIterations is used when Options.MaxFixpointIterations
// is zero.
const DefaultMaxFixpointIterations = 1_000_000

func (o Options) withDefaults() Options {
	if o.MaxFixpointIterations <= 0 {
		o.MaxFixpointIterations = DefaultMaxFixpointIterations
	}
	return o
}

// Engine owns the three tables a grammar's identity and semantics
// depend on: the hash-cons cache, the bookkeeping store (held inline on
// each Node), and the single "current solver" reentrancy slot. All of a
// grammar's Nodes are only meaningful relative to the Engine that built
// them — two Engines never share Node identity, even for
// "the same" grammar.
//
// An Engine is safe for concurrent use. Construction calls serialize
// through a mutex; a singleflight.Group collapses concurrent attempts
// to build the same canonical node so only one goroutine does the
// (brief) normalization work. The fixed-point solver itself still runs
// as one uninterrupted cooperative pass per query, holding solveMu (a
// lock separate from the cache mutex) for its duration — see package doc for why that is not a
// relaxation of the single-threaded solver model.
type Engine struct {
	mu sync.Mutex
	sf singleflight.Group

	// solveMu serializes fixed-point solver passes (ensureComplete in
	// solver.go). It is a separate lock from mu: a solver pass forces
	// Lazy nodes, and forcing a Lazy may call back into Union/Cat/etc,
	// which lock mu internally. Sharing one mutex between the two would
	// deadlock the moment a solve path touches an unforced self-reference.
	solveMu sync.Mutex

	opts Options

	// buildCache memoizes a constructor call by its raw, pre-normalization
	// argument signature (the donor's INPUT_CACHE).
	buildCache map[string]Node

	// internCache memoizes by canonical, post-normalization shape (the
	// donor's OUTPUT_CACHE): the source of hash-consing.
	internCache map[string]Node

	// derivCache memoizes Derivative by (node identity, byte).
	derivCache map[derivKey]Node

	null    *nullNode
	epsilon *epsilonNode

	currentSolver *bookKeeper
}

// NewEngine creates an Engine with its two permanent singletons (Null
// and Epsilon) pre-built and marked complete.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		opts:        opts.withDefaults(),
		buildCache:  make(map[string]Node),
		internCache: make(map[string]Node),
		derivCache:  make(map[derivKey]Node),
	}

	e.null = &nullNode{nodeBase{bk: newBookKeeping()}}
	e.null.bk.complete = allProperties()

	e.epsilon = &epsilonNode{nodeBase{bk: newBookKeeping()}}
	e.epsilon.bk.matchesEmpty = true
	e.epsilon.bk.couldHaveMatches = true
	e.epsilon.bk.complete = allProperties()

	return e
}

// SetLogger attaches (or clears, with nil) a logger the solver uses for
// one Debug line per completed fixpoint pass.
func (e *Engine) SetLogger(logger hclog.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.Logger = logger
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns the package-wide Engine used by the top-level
// convenience functions (Null, Cat, Matches, ...). Most callers building
// a single grammar in a single process only ever need this one Engine;
// construct Engines explicitly with NewEngine when isolation between
// independent grammars matters (e.g. running the same test grammar
// construction repeatedly without cache pollution from other tests).
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(Options{})
	})
	return defaultEngine
}

// buildOnce runs build() at most once per key, collapsing concurrent
// requests for the same raw constructor signature onto a single
// builder and caching the result under key in buildCache.
func (e *Engine) buildOnce(key string, build func() Node) Node {
	e.mu.Lock()
	if n, ok := e.buildCache[key]; ok {
		e.mu.Unlock()
		return n
	}
	e.mu.Unlock()

	v, _, _ := e.sf.Do(key, func() (interface{}, error) {
		n := build()
		e.mu.Lock()
		e.buildCache[key] = n
		e.mu.Unlock()
		return n, nil
	})
	return v.(Node)
}

// intern returns the canonical node for canonicalKey, calling make() to
// construct it the first time that key is seen. This is the
// hash-consing step proper: from here on, every caller presenting the
// same canonical shape gets the same pointer.
func (e *Engine) intern(canonicalKey string, build func() Node) Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n, ok := e.internCache[canonicalKey]; ok {
		return n
	}
	n := build()
	e.internCache[canonicalKey] = n
	return n
}
