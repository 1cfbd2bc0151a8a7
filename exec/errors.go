package exec

import (
	"fmt"
	"strings"

	"github.com/smallnest/flowrs-go/updater"
)

// UpdateErrorCollection is the aggregated error Run returns when one or
// more nodes' OnUpdate failed during an epoch. Errors preserves drain
// order, not any notion of severity or node index.
type UpdateErrorCollection struct {
	Errors []updater.NodeUpdateError
}

func (e *UpdateErrorCollection) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("1 node update failed: %v", e.Errors[0].Error())
	}
	msgs := make([]string, len(e.Errors))
	for i, ue := range e.Errors {
		msgs[i] = ue.Error()
	}
	return fmt.Sprintf("%d node updates failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes every underlying error so errors.Is/errors.As can find a
// particular sentinel anywhere in the batch, per Go 1.20's multi-error
// Unwrap() []error convention.
func (e *UpdateErrorCollection) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i := range e.Errors {
		errs[i] = &e.Errors[i]
	}
	return errs
}

var _ error = (*UpdateErrorCollection)(nil)
