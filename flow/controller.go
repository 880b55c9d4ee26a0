package flow

import (
	"context"
	"fmt"
	"time"

	"clubhouse/models"

	log "github.com/sirupsen/logrus"
)

// Status describes what the controller did with an input
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPrompt    Status = "prompt"
	StatusReprompt  Status = "reprompt"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Outcome is the result of starting or advancing a flow
type Outcome struct {
	Kind   Kind
	Status Status
	// Text is the prompt or re-prompt to show the user
	Text   string
	Fields map[string]string
	// Result is whatever the terminal write returned
	Result any
	Err    error
}

// Rewarder grants experience once a flow completes
type Rewarder interface {
	GrantExperience(ctx context.Context, telegramID int64, amount int64) (*models.User, error)
}

// Controller drives per-user linear wizards
type Controller struct {
	store       Store
	rewarder    Rewarder
	timeout     time.Duration
	definitions map[Kind]*Definition
	now         func() time.Time
}

func NewController(store Store, rewarder Rewarder, timeout time.Duration, definitions ...*Definition) *Controller {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Controller{
		store:       store,
		rewarder:    rewarder,
		timeout:     timeout,
		definitions: make(map[Kind]*Definition, len(definitions)),
		now:         time.Now,
	}
	for _, def := range definitions {
		c.Register(def)
	}
	return c
}

// Register adds or replaces a flow definition
func (c *Controller) Register(def *Definition) {
	c.definitions[def.Kind] = def
}

// Active returns the user's unexpired draft, nil when idle. An expired draft
// is deleted.
func (c *Controller) Active(ctx context.Context, userID int64) (*State, error) {
	state, err := c.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	if state.Expired(c.now(), c.timeout) {
		c.clear(ctx, userID)
		return nil, nil
	}
	return state, nil
}

// Start begins a flow for the user. An abandoned draft is replaced wholesale,
// an active one is left untouched and ErrFlowActive is returned.
func (c *Controller) Start(ctx context.Context, userID int64, kind Kind, seed map[string]string) (*Outcome, error) {
	def, ok := c.definitions[kind]
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownFlow)
	}

	active, err := c.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("%s flow for user %d: %w", active.Kind, userID, ErrFlowActive)
	}

	fields := make(map[string]string, len(seed)+len(def.Steps))
	for k, v := range seed {
		fields[k] = v
	}

	state := &State{
		Kind:      kind,
		Step:      0,
		Fields:    fields,
		UpdatedAt: c.now(),
	}
	if err := c.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"flow":    kind,
	}).Debug("Flow started")

	return &Outcome{
		Kind:   kind,
		Status: StatusPrompt,
		Text:   def.Steps[0].Prompt(fields),
		Fields: fields,
	}, nil
}

// Advance feeds one message into the user's active flow
func (c *Controller) Advance(ctx context.Context, userID int64, text string) (*Outcome, error) {
	state, err := c.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &Outcome{Status: StatusIdle}, nil
	}

	def, ok := c.definitions[state.Kind]
	if !ok || state.Step < 0 || state.Step >= len(def.Steps) {
		c.clear(ctx, userID)
		return nil, fmt.Errorf("%s: %w", state.Kind, ErrUnknownFlow)
	}

	step := def.Steps[state.Step]
	value, problem, valid := step.Validate(text)
	if !valid {
		if problem == "" {
			problem = step.Prompt(state.Fields)
		}
		return &Outcome{
			Kind:   state.Kind,
			Status: StatusReprompt,
			Text:   problem,
			Fields: state.Fields,
		}, nil
	}

	state.Fields[step.Field] = value
	state.Step++

	if state.Step < len(def.Steps) {
		state.UpdatedAt = c.now()
		if err := c.store.Save(ctx, userID, state); err != nil {
			return nil, err
		}
		return &Outcome{
			Kind:   state.Kind,
			Status: StatusPrompt,
			Text:   def.Steps[state.Step].Prompt(state.Fields),
			Fields: state.Fields,
		}, nil
	}

	return c.complete(ctx, userID, def, state), nil
}

func (c *Controller) complete(ctx context.Context, userID int64, def *Definition, state *State) *Outcome {
	result, err := def.Complete(ctx, userID, state.Fields)
	c.clear(ctx, userID)

	if err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"flow":    def.Kind,
			"error":   err,
		}).Error("Flow terminal write failed")

		return &Outcome{
			Kind:   def.Kind,
			Status: StatusFailed,
			Fields: state.Fields,
			Err:    err,
		}
	}

	if def.Reward > 0 && c.rewarder != nil {
		if _, err := c.rewarder.GrantExperience(ctx, userID, def.Reward); err != nil {
			log.WithFields(log.Fields{
				"user_id": userID,
				"flow":    def.Kind,
				"amount":  def.Reward,
				"error":   err,
			}).Warn("Failed to grant flow reward")
		}
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"flow":    def.Kind,
	}).Info("Flow completed")

	return &Outcome{
		Kind:   def.Kind,
		Status: StatusCompleted,
		Fields: state.Fields,
		Result: result,
	}
}

// Cancel clears the user's draft from any step. It reports whether a flow was active.
func (c *Controller) Cancel(ctx context.Context, userID int64) (bool, error) {
	state, err := c.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if err := c.store.Delete(ctx, userID); err != nil {
		return false, err
	}
	return state != nil, nil
}

func (c *Controller) clear(ctx context.Context, userID int64) {
	if err := c.store.Delete(ctx, userID); err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"error":   err,
		}).Warn("Failed to clear flow draft")
	}
}
