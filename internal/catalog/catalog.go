// Package catalog loads and indexes the game data the calculator runs
// against: ships, weapons, shields, missiles and mounts, all read from
// JSON files in a data directory.
package catalog

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/CapCeph/ship-lens/pkg/core"
)

// Stats summarizes the loaded catalog.
type Stats struct {
	Ships    int `json:"ships"`
	Weapons  int `json:"weapons"`
	Shields  int `json:"shields"`
	Missiles int `json:"missiles"`
	Mounts   int `json:"mounts"`
}

// Catalog is the in-memory store for game data. All lookups are safe
// for concurrent use; Load replaces the indexes wholesale.
type Catalog struct {
	mu     sync.RWMutex
	logger *slog.Logger

	ships    map[string]*core.TargetProfile // keyed by display name
	weapons  map[string]*core.WeaponProfile // keyed by filename
	shields  map[string]*core.ShieldProfile // keyed by internal name
	missiles map[string]*core.MissileProfile
	mounts   map[string]*core.MountProfile // keyed by mount ref
}

func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		logger:   logger,
		ships:    make(map[string]*core.TargetProfile),
		weapons:  make(map[string]*core.WeaponProfile),
		shields:  make(map[string]*core.ShieldProfile),
		missiles: make(map[string]*core.MissileProfile),
		mounts:   make(map[string]*core.MountProfile),
	}
}

// Stats returns entry counts per data class.
func (c *Catalog) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Ships:    len(c.ships),
		Weapons:  len(c.weapons),
		Shields:  len(c.shields),
		Missiles: len(c.missiles),
		Mounts:   len(c.mounts),
	}
}

// ShipsSorted returns all ship display names in lexical order.
func (c *Catalog) ShipsSorted() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.ships))
	for name := range c.ships {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ship looks up a ship by display name.
func (c *Catalog) Ship(displayName string) (*core.TargetProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.ships[displayName]
	return s, ok
}

// WeaponsBySize returns the filenames of weapons of the given size,
// highest sustained DPS first. Size 0 or below lists every weapon.
func (c *Catalog) WeaponsBySize(size int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type entry struct {
		name string
		dps  float64
	}
	entries := make([]entry, 0)
	for name, w := range c.weapons {
		if size <= 0 || w.Size == size {
			entries = append(entries, entry{name, w.SustainedDPS})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].dps != entries[j].dps {
			return entries[i].dps > entries[j].dps
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// WeaponByDisplayName scans all weapons for a matching display name.
func (c *Catalog) WeaponByDisplayName(displayName string) (*core.WeaponProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, w := range c.weapons {
		if w.DisplayName == displayName {
			return w, true
		}
	}
	return nil, false
}

// WeaponByFilename is a direct index lookup.
func (c *Catalog) WeaponByFilename(filename string) (*core.WeaponProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.weapons[filename]
	return w, ok
}

// ShieldsBySize returns the internal names of shields of the given
// size, highest capacity first. Size 0 or below lists every shield.
func (c *Catalog) ShieldsBySize(size int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type entry struct {
		name string
		hp   float64
	}
	entries := make([]entry, 0)
	for name, s := range c.shields {
		if size <= 0 || s.Size == size {
			entries = append(entries, entry{name, s.MaxHP})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].hp != entries[j].hp {
			return entries[i].hp > entries[j].hp
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Shield looks up a shield by internal name, falling back to display
// name so user-facing commands can use either.
func (c *Catalog) Shield(name string) (*core.ShieldProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.shields[name]; ok {
		return s, true
	}
	for _, s := range c.shields {
		if s.DisplayName == name {
			return s, true
		}
	}
	return nil, false
}

// MissilesBySize returns missile keys of the given size, highest total
// damage first. Size 0 or below lists every missile.
func (c *Catalog) MissilesBySize(size int) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	type entry struct {
		name   string
		damage float64
	}
	entries := make([]entry, 0)
	for name, m := range c.missiles {
		if size <= 0 || m.Size == size {
			entries = append(entries, entry{name, m.TotalDamage()})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].damage != entries[j].damage {
			return entries[i].damage > entries[j].damage
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Missile is a direct key lookup.
func (c *Catalog) Missile(key string) (*core.MissileProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.missiles[key]
	return m, ok
}

// MissileByDisplayName scans all missiles for a matching display name.
func (c *Catalog) MissileByDisplayName(displayName string) (*core.MissileProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, m := range c.missiles {
		if m.DisplayName == displayName {
			return m, true
		}
	}
	return nil, false
}

// Mount looks up a mount by its ref.
func (c *Catalog) Mount(ref string) (*core.MountProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.mounts[ref]
	return m, ok
}
