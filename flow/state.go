package flow

import (
	"context"
	"errors"
	"time"
)

// Kind identifies a wizard
type Kind string

const (
	KindTournament  Kind = "tournament"
	KindThread      Kind = "thread"
	KindReply       Kind = "reply"
	KindPaymentCode Kind = "payment_code"
	KindBroadcast   Kind = "broadcast"
)

// DefaultTimeout is how long an untouched draft stays active
const DefaultTimeout = 10 * time.Minute

var (
	ErrFlowActive  = errors.New("another operation is in progress")
	ErrUnknownFlow = errors.New("unknown flow")
)

// State is a user's in-progress draft. Step is the index of the step awaiting input.
type State struct {
	Kind      Kind              `json:"kind"`
	Step      int               `json:"step"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Expired reports whether the draft has been untouched for longer than timeout
func (s *State) Expired(now time.Time, timeout time.Duration) bool {
	return timeout > 0 && now.Sub(s.UpdatedAt) > timeout
}

func (s *State) clone() *State {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	return &State{
		Kind:      s.Kind,
		Step:      s.Step,
		Fields:    fields,
		UpdatedAt: s.UpdatedAt,
	}
}

// Store persists drafts per user. Get returns nil when the user has no draft.
type Store interface {
	Get(ctx context.Context, userID int64) (*State, error)
	Save(ctx context.Context, userID int64, state *State) error
	Delete(ctx context.Context, userID int64) error
}
