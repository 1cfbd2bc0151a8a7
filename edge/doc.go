// Package edge implements the typed, in-process, one-way channel that
// carries values between nodes, plus the single-consumer ChangeObserver
// outputs use to wake a sleeping executor.
//
// An Edge[T] is an unbounded FIFO queue with a producer side (cloneable,
// may have many holders) and a receiver side (at most one holder, enforced
// by convention: only the node that owns the edge calls TryNext). Input[T]
// is the receiving endpoint a node reads from; Output[T] is a handle that
// may be bound to an Input[T] and always has a safe Send, whether bound or
// not.
package edge
