package grammar

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ConstructionError reports one or more precondition violations raised
// by a smart constructor. These represent programmer error (a negative
// Any length, a nil child, a nil thunk), never a property of the input a grammar is
// being asked to match — there is no such thing as a malformed byte
// string at match time, only a malformed grammar at build time. Smart
// constructors panic with a *ConstructionError rather than returning
// one, so callers never have to thread a construction-time error
// through code that otherwise only returns bool and Node.
type ConstructionError struct {
	constructor string
	err         error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("grammar: %s: %v", e.constructor, e.err)
}

func (e *ConstructionError) Unwrap() error { return e.err }

// fail panics with a single-violation ConstructionError.
func fail(constructor string, format string, args ...interface{}) {
	panic(&ConstructionError{constructor: constructor, err: fmt.Errorf(format, args...)})
}

// violations collects zero or more precondition violations for a
// single constructor call and panics with all of them at once via
// go-multierror, so a caller fixing up a bad Cat or Union call sees
// every problem in one run instead of one panic per re-attempt.
type violations struct {
	constructor string
	err         *multierror.Error
}

func newViolations(constructor string) *violations {
	return &violations{constructor: constructor}
}

func (v *violations) addf(format string, args ...interface{}) {
	v.err = multierror.Append(v.err, fmt.Errorf(format, args...))
}

// check panics with every collected violation if any were recorded.
func (v *violations) check() {
	if v.err != nil {
		panic(&ConstructionError{constructor: v.constructor, err: v.err.ErrorOrNil()})
	}
}
