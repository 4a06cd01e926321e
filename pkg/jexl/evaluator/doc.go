/*
Package evaluator walks a parsed expression tree against a host-supplied
context and computes its value.

# Execution model

Evaluation is a tree of sub-computations. Independent siblings (array
elements, object values, a transform's subject and arguments, and the
per-element runs of a relative filter) are handed to an Executor and
joined afterward; everything else runs depth-first. The joined result is
always ordered by structural position, never by completion time, and the
error of the lowest-index failing sibling wins, so results and failures
are identical whether the Executor is Sequential or Concurrent.

Context values may themselves be pending: any value implementing
Deferred is awaited transparently when an identifier resolves it.

# Failure semantics

Errors are fatal to the evaluation that raised them and propagate to the
caller without retry or partial results. The one deliberate exception is
identifier lookup: a missing context property resolves to nil, which is
what makes path navigation permissive.

# Cancellation

The evaluator provides no cancellation of its own. Abandon an evaluation
by discarding its result; the context is passed through to Deferred
values and transforms, which may honor it.
*/
package evaluator
