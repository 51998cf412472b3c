// Package viewmodel is the client's data-synchronization layer: the
// stateful units the presentation layer reads. Each unit owns its own
// error slot, moves through Idle -> Loading -> Ready/Error as its input
// key changes, and discards load results that arrive after a newer load
// started or after the unit was closed.
package viewmodel

import (
	"errors"
	"strings"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

var (
	ErrSignInRequired = errors.New("sign in required")
	ErrBusy           = errors.New("operation already in progress")
	ErrEmptyComment   = errors.New("comment cannot be empty")
)

// guard tags each load with a monotonic id so a slow early request cannot
// overwrite the result of a faster later one. Callers must hold their
// component's mutex around next and current.
type guard struct {
	seq uint64
}

func (g *guard) next() uint64 {
	g.seq++
	return g.seq
}

func (g *guard) current(id uint64) bool {
	return g.seq == id
}

const defaultDisplayName = "Reader"

// fallbackDisplayName derives a name from the email local part, falling
// back to the generic label when there is no usable email.
func fallbackDisplayName(email *string) string {
	if email == nil {
		return defaultDisplayName
	}

	local, _, found := strings.Cut(*email, "@")

	if !found || local == "" {
		return defaultDisplayName
	}

	return local
}
