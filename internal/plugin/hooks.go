package plugin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Hooks runs every plugin subscribed to an action.
type Hooks struct {
	manager  *Manager
	executor *Executor
}

// NewHooks creates Hooks over an already discovered manager.
func NewHooks(manager *Manager, executor *Executor) *Hooks {
	return &Hooks{manager: manager, executor: executor}
}

// Dispatch sends action with params to each subscribed plugin in name
// order. Failures are logged and joined; one failing plugin does not stop
// the others.
func (h *Hooks) Dispatch(ctx context.Context, action string, params any) error {
	subs := h.manager.Subscribers(action)
	if len(subs) == 0 {
		return nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal %s params: %w", action, err)
	}
	req := &Request{Action: action, Params: raw}

	var errs []error
	for _, p := range subs {
		resp, err := h.executor.Execute(ctx, p, req)
		if err == nil && !resp.Success {
			err = fmt.Errorf("%w: %s", ErrPluginFailed, resp.Error)
		}
		if err != nil {
			log.Printf("Plugin %s failed on %s: %v", p.Manifest.Name, action, err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Manifest.Name, err))
		}
	}
	return errors.Join(errs...)
}
