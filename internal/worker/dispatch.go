package worker

import (
	"encoding/json"
	"fmt"

	"github.com/CapCeph/ship-lens/internal/dispatcher"
	"github.com/CapCeph/ship-lens/internal/service"
)

// OpCompareAll runs one loadout against the whole catalog.
const OpCompareAll = "ttk:compare"

// RegisterHandlers registers the comparison operations with the
// dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(OpCompareAll, m.handleCompareAll, dispatcher.Logged())
}

func (m *Manager) handleCompareAll(e dispatcher.Event) (any, error) {
	if len(e.Args) == 0 || e.Args[0] == "" {
		return nil, fmt.Errorf("%s: missing argument", e.Command)
	}

	var req service.ComputeRequest
	if err := json.Unmarshal([]byte(e.Args[0]), &req); err != nil {
		return nil, fmt.Errorf("parsing compare request: %w", err)
	}
	return m.CompareAll(req), nil
}
