// Package service resolves catalog names into engine profiles and
// exposes every user-facing operation as a dispatcher handler. Name
// lookups fail here with wrapped errors; by the time the engine runs,
// every profile is resolved.
package service

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/CapCeph/ship-lens/internal/catalog"
	"github.com/CapCeph/ship-lens/internal/dispatcher"
	"github.com/CapCeph/ship-lens/internal/storage"
	"github.com/CapCeph/ship-lens/pkg/core"
	"github.com/CapCeph/ship-lens/pkg/engine"
)

// Recorder receives one measurement per finished calculation.
type Recorder interface {
	RecordCalculation(target, shield string, duration time.Duration, totalTTK float64)
}

// Dependencies holds everything the service needs to run.
type Dependencies struct {
	Catalog  *catalog.Catalog
	Store    storage.Store
	Logger   *slog.Logger
	Recorder Recorder

	// Defaults applied when a compute request leaves scenario or zone
	// weights unset.
	DefaultScenario engine.Scenario
	DefaultZone     engine.ZoneWeights
}

// Service provides the operation handlers.
type Service struct {
	deps Dependencies

	// disp is set by RegisterHandlers; with it, telemetry rides the
	// buffered telemetry:record queue instead of the caller's stack.
	disp *dispatcher.Dispatcher
}

// NewService creates a service. A nil logger falls back to slog.Default
// and zero-valued defaults fall back to the engine's stock scenario and
// center-mass zone weights.
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.DefaultScenario == (engine.Scenario{}) {
		deps.DefaultScenario = engine.DefaultScenario()
	}
	if deps.DefaultZone == (engine.ZoneWeights{}) {
		deps.DefaultZone = engine.DefaultZoneWeights()
	}
	return &Service{deps: deps}
}

// WeaponSelection names one weapon from the catalog and how many copies
// are firing.
type WeaponSelection struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ComputeRequest describes one TTK calculation against a catalog ship.
type ComputeRequest struct {
	Target  string            `json:"target"`
	Weapons []WeaponSelection `json:"weapons"`

	// Shield selects the defender's generator by internal or display
	// name. Empty means the target ship's default shield; "none" (or
	// NoShield) runs the shieldless model.
	Shield   string `json:"shield,omitempty"`
	NoShield bool   `json:"no_shield,omitempty"`

	// Nil fields fall back to the configured defaults.
	Scenario *engine.Scenario    `json:"scenario,omitempty"`
	Zone     *engine.ZoneWeights `json:"zone,omitempty"`
}

// ComputeResponse is a resolved calculation with the names that were
// actually used.
type ComputeResponse struct {
	Target string        `json:"target"`
	Shield string        `json:"shield,omitempty"`
	Result engine.Result `json:"result"`
}

func (s *Service) resolveWeapons(selections []WeaponSelection) ([]engine.EquippedWeapon, error) {
	weapons := make([]engine.EquippedWeapon, 0, len(selections))
	for _, sel := range selections {
		w, ok := s.deps.Catalog.WeaponByDisplayName(sel.Name)
		if !ok {
			return nil, fmt.Errorf("weapon %q not found", sel.Name)
		}
		count := sel.Count
		if count <= 0 {
			count = 1
		}
		weapons = append(weapons, engine.EquippedWeapon{Weapon: w, Count: count})
	}
	return weapons, nil
}

func (s *Service) resolveShield(req ComputeRequest, target *core.TargetProfile) (*core.ShieldProfile, string, error) {
	name := req.Shield
	if name == "" {
		name = target.DefaultShieldRef
	}
	if name == "" {
		return nil, "", fmt.Errorf("ship %q has no default shield, pass one explicitly", target.DisplayName)
	}
	shield, ok := s.deps.Catalog.Shield(name)
	if !ok {
		return nil, "", fmt.Errorf("shield %q not found", name)
	}
	return shield, shield.DisplayName, nil
}

// ComputeTTK resolves every name in the request and runs the engine.
func (s *Service) ComputeTTK(req ComputeRequest) (*ComputeResponse, error) {
	start := time.Now()

	target, ok := s.deps.Catalog.Ship(req.Target)
	if !ok {
		return nil, fmt.Errorf("ship %q not found", req.Target)
	}

	weapons, err := s.resolveWeapons(req.Weapons)
	if err != nil {
		return nil, err
	}

	scenario := s.deps.DefaultScenario
	if req.Scenario != nil {
		scenario = *req.Scenario
	}
	zone := s.deps.DefaultZone
	if req.Zone != nil {
		zone = *req.Zone
	}

	resp := &ComputeResponse{Target: target.DisplayName}

	if req.NoShield || req.Shield == "none" {
		resp.Result = engine.ComputeNoShield(weapons, target, scenario)
	} else {
		shield, shieldName, err := s.resolveShield(req, target)
		if err != nil {
			return nil, err
		}
		resp.Shield = shieldName
		resp.Result = engine.Compute(weapons, target, shield, scenario, zone)
	}

	s.deps.Logger.Debug("computed ttk",
		"target", resp.Target,
		"shield", resp.Shield,
		"totalTTK", resp.Result.TotalTTK,
		"duration", time.Since(start))

	s.recordCalculation(resp, time.Since(start))

	return resp, nil
}

// recordCalculation hands the measurement to the buffered
// telemetry:record handler when a dispatcher is wired, so a slow sink
// never delays the caller. Without one it records inline.
func (s *Service) recordCalculation(resp *ComputeResponse, duration time.Duration) {
	if s.deps.Recorder == nil {
		return
	}
	if s.disp != nil {
		e := dispatcher.Event{
			Command: OpRecordCalculation,
			Args: []string{
				resp.Target,
				resp.Shield,
				strconv.FormatInt(duration.Microseconds(), 10),
				strconv.FormatFloat(resp.Result.TotalTTK, 'g', -1, 64),
			},
		}
		if _, err := s.disp.Dispatch(e); err == nil {
			return
		}
	}
	s.deps.Recorder.RecordCalculation(resp.Target, resp.Shield, duration, resp.Result.TotalTTK)
}

// ListShips returns every catalog ship display name, sorted.
func (s *Service) ListShips() []string {
	return s.deps.Catalog.ShipsSorted()
}

// GetShip returns the resolved profile for one ship.
func (s *Service) GetShip(name string) (*core.TargetProfile, error) {
	target, ok := s.deps.Catalog.Ship(name)
	if !ok {
		return nil, fmt.Errorf("ship %q not found", name)
	}
	return target, nil
}

// ListWeapons returns weapon display names for a size, best DPS first.
// Size 0 or below lists every weapon.
func (s *Service) ListWeapons(size int) []string {
	keys := s.deps.Catalog.WeaponsBySize(size)
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if w, ok := s.deps.Catalog.WeaponByFilename(key); ok {
			names = append(names, w.DisplayName)
		}
	}
	return names
}

// ListShields returns shield display names for a size, highest HP
// first. Size 0 or below lists every shield.
func (s *Service) ListShields(size int) []string {
	keys := s.deps.Catalog.ShieldsBySize(size)
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if sh, ok := s.deps.Catalog.Shield(key); ok {
			names = append(names, sh.DisplayName)
		}
	}
	return names
}

// ListMissiles returns missile display names for a size, highest total
// damage first. Size 0 or below lists every missile.
func (s *Service) ListMissiles(size int) []string {
	keys := s.deps.Catalog.MissilesBySize(size)
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if m, ok := s.deps.Catalog.Missile(key); ok {
			names = append(names, m.DisplayName)
		}
	}
	return names
}

// Stats returns catalog entry counts.
func (s *Service) Stats() catalog.Stats {
	return s.deps.Catalog.Stats()
}
