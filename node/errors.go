package node

import "errors"

// Sentinel errors a Node's lifecycle hooks and OnUpdate may wrap. Wrap with
// fmt.Errorf("...: %w", ErrXxx) so callers can recover the kind with
// errors.Is, matching the reference implementation's error-kind taxonomy
// without needing Go's lack of tagged-union error types.
var (
	// ErrInitFailed tags an error returned from OnInit.
	ErrInitFailed = errors.New("node: init failed")
	// ErrReadyFailed tags an error returned from OnReady.
	ErrReadyFailed = errors.New("node: ready failed")
	// ErrShutdownFailed tags an error returned from OnShutdown.
	ErrShutdownFailed = errors.New("node: shutdown failed")

	// ErrSequence tags an UpdateError: the node observed an input twice in
	// a row where pairwise semantics required the other input first.
	ErrSequence = errors.New("node: sequence error")
	// ErrConnect tags an UpdateError: structural misuse of an edge at
	// runtime (e.g. sending through an output with no bound input).
	ErrConnect = errors.New("node: connect error")
	// ErrSendFailed tags an UpdateError produced by a failed Output.Send.
	ErrSendFailed = errors.New("node: send failed")
	// ErrReceiveFailed tags an UpdateError produced by an Input observing Closed.
	ErrReceiveFailed = errors.New("node: receive failed")
)
