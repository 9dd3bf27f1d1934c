package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/CapCeph/ship-lens/internal/dispatcher"
	"github.com/CapCeph/ship-lens/internal/model"
)

// Operation names routed through the dispatcher.
const (
	OpComputeTTK   = "ttk:compute"
	OpListShips    = "ships:list"
	OpGetShip      = "ships:get"
	OpListWeapons  = "weapons:list"
	OpListShields  = "shields:list"
	OpListMissiles = "missiles:list"
	OpStats        = "catalog:stats"

	OpPresetSave   = "preset:save"
	OpPresetGet    = "preset:get"
	OpPresetList   = "preset:list"
	OpPresetDelete = "preset:delete"

	OpSettingsSave = "settings:save"
	OpSettingsLoad = "settings:load"

	OpRecordCalculation = "telemetry:record"
)

// recordQueueSize bounds the telemetry backlog; overflow falls back to
// an inline write in recordCalculation.
const recordQueueSize = 64

// RegisterHandlers wires every service operation into the dispatcher.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(OpComputeTTK, s.handleComputeTTK, dispatcher.Logged())
	d.Register(OpListShips, s.handleListShips)
	d.Register(OpGetShip, s.handleGetShip)
	d.Register(OpListWeapons, s.sizeListHandler(s.ListWeapons))
	d.Register(OpListShields, s.sizeListHandler(s.ListShields))
	d.Register(OpListMissiles, s.sizeListHandler(s.ListMissiles))
	d.Register(OpStats, s.handleStats)

	d.Register(OpPresetSave, s.handlePresetSave, dispatcher.Logged())
	d.Register(OpPresetGet, s.handlePresetGet)
	d.Register(OpPresetList, s.handlePresetList)
	d.Register(OpPresetDelete, s.handlePresetDelete, dispatcher.Logged())

	d.Register(OpSettingsSave, s.handleSettingsSave)
	d.Register(OpSettingsLoad, s.handleSettingsLoad)

	d.Register(OpRecordCalculation, s.handleRecordCalculation, dispatcher.Buffered(recordQueueSize))
	s.disp = d
}

func firstArg(e dispatcher.Event) (string, error) {
	if len(e.Args) == 0 || e.Args[0] == "" {
		return "", fmt.Errorf("%s: missing argument", e.Command)
	}
	return e.Args[0], nil
}

func (s *Service) handleComputeTTK(e dispatcher.Event) (any, error) {
	raw, err := firstArg(e)
	if err != nil {
		return nil, err
	}

	var req ComputeRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, fmt.Errorf("parsing compute request: %w", err)
	}
	return s.ComputeTTK(req)
}

func (s *Service) handleListShips(e dispatcher.Event) (any, error) {
	return s.ListShips(), nil
}

func (s *Service) handleGetShip(e dispatcher.Event) (any, error) {
	name, err := firstArg(e)
	if err != nil {
		return nil, err
	}
	return s.GetShip(name)
}

// sizeListHandler adapts a size-filtered catalog listing. A missing
// argument lists everything.
func (s *Service) sizeListHandler(list func(int) []string) dispatcher.HandlerFunc {
	return func(e dispatcher.Event) (any, error) {
		size := 0
		if len(e.Args) > 0 && e.Args[0] != "" {
			n, err := strconv.Atoi(e.Args[0])
			if err != nil {
				return nil, fmt.Errorf("%s: invalid size %q: %w", e.Command, e.Args[0], err)
			}
			size = n
		}
		return list(size), nil
	}
}

func (s *Service) handleStats(e dispatcher.Event) (any, error) {
	return s.Stats(), nil
}

func (s *Service) handlePresetSave(e dispatcher.Event) (any, error) {
	raw, err := firstArg(e)
	if err != nil {
		return nil, err
	}

	var preset model.FleetPreset
	if err := json.Unmarshal([]byte(raw), &preset); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}
	if preset.PresetID == "" {
		return nil, fmt.Errorf("%s: preset id is required", e.Command)
	}
	if preset.Payload == nil {
		preset.Payload = datatypes.JSON([]byte(raw))
	}

	if err := s.deps.Store.SavePreset(&preset); err != nil {
		return nil, fmt.Errorf("saving preset %q: %w", preset.PresetID, err)
	}
	return &preset, nil
}

func (s *Service) handlePresetGet(e dispatcher.Event) (any, error) {
	id, err := firstArg(e)
	if err != nil {
		return nil, err
	}
	preset, err := s.deps.Store.GetPreset(id)
	if err != nil {
		return nil, fmt.Errorf("loading preset %q: %w", id, err)
	}
	return preset, nil
}

func (s *Service) handlePresetList(e dispatcher.Event) (any, error) {
	presets, err := s.deps.Store.ListPresets()
	if err != nil {
		return nil, fmt.Errorf("listing presets: %w", err)
	}
	return presets, nil
}

func (s *Service) handlePresetDelete(e dispatcher.Event) (any, error) {
	id, err := firstArg(e)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Store.DeletePreset(id); err != nil {
		return nil, fmt.Errorf("deleting preset %q: %w", id, err)
	}
	return id, nil
}

func (s *Service) handleSettingsSave(e dispatcher.Event) (any, error) {
	raw, err := firstArg(e)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Store.SaveSettings(json.RawMessage(raw)); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return "saved", nil
}

func (s *Service) handleSettingsLoad(e dispatcher.Event) (any, error) {
	value, err := s.deps.Store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return value, nil
}

// handleRecordCalculation takes positional args (target, shield,
// duration in microseconds, total TTK) rather than JSON: total TTK can
// be +Inf, which json.Marshal rejects, while FormatFloat round-trips it.
func (s *Service) handleRecordCalculation(e dispatcher.Event) (any, error) {
	if len(e.Args) < 4 {
		return nil, fmt.Errorf("%s: expected target, shield, duration and ttk", e.Command)
	}
	us, err := strconv.ParseInt(e.Args[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid duration %q: %w", e.Command, e.Args[2], err)
	}
	ttk, err := strconv.ParseFloat(e.Args[3], 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid ttk %q: %w", e.Command, e.Args[3], err)
	}

	if s.deps.Recorder != nil {
		s.deps.Recorder.RecordCalculation(e.Args[0], e.Args[1], time.Duration(us)*time.Microsecond, ttk)
	}
	return nil, nil
}
