package testnodes

import (
	"errors"
	"fmt"

	"github.com/smallnest/flowrs-go/edge"
	"github.com/smallnest/flowrs-go/node"
)

// wrapSendError tags a failed Output.Send with the matching UpdateError
// kind: ErrConnect for an output that was never bound, ErrSendFailed for
// everything else (currently, a closed receiver).
func wrapSendError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, edge.ErrUnbound) {
		return fmt.Errorf("%w: %w", node.ErrConnect, err)
	}
	return fmt.Errorf("%w: %w", node.ErrSendFailed, err)
}

// errReceiveFailed tags an Input observing Closed during OnUpdate.
func errReceiveFailed(nodeName string) error {
	return fmt.Errorf("%s: %w", nodeName, node.ErrReceiveFailed)
}
