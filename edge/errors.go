package edge

import "errors"

var (
	// ErrUnbound is the specific cause wrapped by ErrSendFailed when
	// Output.Send is called on an output that Connect was never called on.
	ErrUnbound = errors.New("edge: output not bound")
	// ErrReceiveClosed is the specific cause wrapped by ErrSendFailed when
	// Output.Send/Edge.Send targets a receiver whose CloseReceiver has
	// been called.
	ErrReceiveClosed = errors.New("edge: receiver closed")
	// ErrSendFailed tags every failed Output.Send/Edge.Send call; recover
	// the specific cause with errors.Is against ErrUnbound or
	// ErrReceiveClosed.
	ErrSendFailed = errors.New("edge: send failed")
)
