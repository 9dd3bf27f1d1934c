// Package worker fans a single loadout out against every ship in the
// catalog with a bounded goroutine pool, producing a ranked comparison
// table.
package worker

import (
	"log/slog"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/CapCeph/ship-lens/internal/service"
)

// Dependencies holds everything the comparison pool needs.
type Dependencies struct {
	Service *service.Service
	Logger  *slog.Logger
}

// Manager runs catalog-wide comparisons.
type Manager struct {
	deps     Dependencies
	poolSize int
}

// NewManager creates a comparison manager. A poolSize below 1 uses one
// worker per CPU.
func NewManager(deps Dependencies, poolSize int) *Manager {
	if poolSize < 1 {
		poolSize = runtime.NumCPU()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Manager{
		deps:     deps,
		poolSize: poolSize,
	}
}

// Row is one target's outcome in a comparison. Err is set when the
// target could not be resolved (for example a ship with no default
// shield when none was requested).
type Row struct {
	Target     string  `json:"target"`
	Shield     string  `json:"shield,omitempty"`
	TotalTTK   float64 `json:"total_ttk"`
	ShieldTime float64 `json:"shield_time"`
	Err        string  `json:"error,omitempty"`
}

// CompareAll runs the request's loadout against every catalog ship.
// Rows come back sorted fastest kill first; unreachable kills (+Inf)
// and unresolvable targets sort last.
func (m *Manager) CompareAll(req service.ComputeRequest) []Row {
	start := time.Now()
	ships := m.deps.Service.ListShips()

	jobs := make(chan string)
	rows := make([]Row, 0, len(ships))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < m.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ship := range jobs {
				row := m.computeRow(req, ship)
				mu.Lock()
				rows = append(rows, row)
				mu.Unlock()
			}
		}()
	}

	for _, ship := range ships {
		jobs <- ship
	}
	close(jobs)
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if (a.Err == "") != (b.Err == "") {
			return a.Err == ""
		}
		if a.TotalTTK != b.TotalTTK {
			return a.TotalTTK < b.TotalTTK
		}
		return a.Target < b.Target
	})

	m.deps.Logger.Debug("compared loadout against catalog",
		"ships", len(ships),
		"workers", m.poolSize,
		"duration", time.Since(start))
	return rows
}

func (m *Manager) computeRow(req service.ComputeRequest, ship string) Row {
	req.Target = ship

	resp, err := m.deps.Service.ComputeTTK(req)
	if err != nil {
		return Row{Target: ship, TotalTTK: math.Inf(1), Err: err.Error()}
	}
	return Row{
		Target:     resp.Target,
		Shield:     resp.Shield,
		TotalTTK:   resp.Result.TotalTTK,
		ShieldTime: resp.Result.ShieldTime,
	}
}
