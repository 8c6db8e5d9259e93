// Package workflow implements the postback-driven session workflow engine.
//
// This file implements the action registry: it resolves an inbound
// (workflow type, action name) pair to the handler bound to it. Each workflow
// declares an explicit, static action set; nothing is discovered by naming
// convention at runtime.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/ck19910321/LineBot/internal/models"
)

// Routing errors. Both resolve to the user-visible fallback reply in the
// engine; they are never propagated to the transport layer.
var (
	ErrUnknownWorkflow = errors.New("unknown workflow type")
	ErrUnknownAction   = errors.New("unknown workflow action")
)

// ActionFunc applies one workflow transition for a conversation and returns
// the outbound reply.
type ActionFunc func(ctx context.Context, key models.ConversationKey, p Params) (models.Message, error)

// Workflow is a named multi-step interaction with a static set of transitions.
type Workflow interface {
	Type() models.WorkflowType
	// Actions returns the workflow's transition table. The map is the
	// workflow's complete capability set; an action outside it is rejected by
	// the registry.
	Actions() map[string]ActionFunc
}

// Registry maps (workflow type, action name) pairs to handlers.
type Registry struct {
	workflows map[models.WorkflowType]Workflow
}

// NewRegistry builds a registry over the given workflows.
func NewRegistry(workflows ...Workflow) *Registry {
	r := &Registry{workflows: make(map[models.WorkflowType]Workflow, len(workflows))}
	for _, w := range workflows {
		r.workflows[w.Type()] = w
	}
	return r
}

// Resolve returns the handler bound to the pair, or ErrUnknownWorkflow /
// ErrUnknownAction.
func (r *Registry) Resolve(wt models.WorkflowType, action string) (ActionFunc, error) {
	w, ok := r.workflows[wt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkflow, wt)
	}
	fn, ok := w.Actions()[action]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no action %q", ErrUnknownAction, wt, action)
	}
	return fn, nil
}
