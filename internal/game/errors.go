package game

import (
	"errors"
	"fmt"
)

// ErrRejected marks a policy rejection: an illegal action given the current
// phase, resources or ownership. Rejections never change state.
var ErrRejected = errors.New("action rejected")

// Rejection carries the operation and the human-readable reason.
type Rejection struct {
	Op     string
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s rejected: %s", r.Op, r.Reason)
}

func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// invariant panics on internal inconsistency, which is a programming fault
// and never a player-facing rejection.
func invariant(format string, args ...any) {
	panic("invariant violated: " + fmt.Sprintf(format, args...))
}
