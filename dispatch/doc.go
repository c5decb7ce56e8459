/*
Package dispatch wraps a single handler callback invocation inside a
fault-isolating boundary, normalizing its outcome to one of two result
shapes (Continue or Stop) regardless of whether the callback returned
normally or panicked with a value of the same shape.

No callback invocation dispatched through Invoke overlaps another: the
streaming session actor that owns the handler only ever calls Invoke
from its single mailbox-processing goroutine, so serialization is a
property of that caller, not of this package.
*/
package dispatch
