package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CapCeph/ship-lens/internal/names"
	"github.com/CapCeph/ship-lens/pkg/core"
)

// Load reads all data files under dataDir and replaces the catalog
// contents in one swap. Ships, weapons and shields are required;
// missiles and mounts are optional extras.
func (c *Catalog) Load(dataDir string) error {
	ships, err := c.loadShips(filepath.Join(dataDir, "ships"))
	if err != nil {
		return err
	}
	weapons, err := c.loadWeapons(filepath.Join(dataDir, "weapons.json"))
	if err != nil {
		return err
	}
	shields, err := c.loadShields(filepath.Join(dataDir, "shields.json"))
	if err != nil {
		return err
	}
	missiles, err := c.loadMissiles(filepath.Join(dataDir, "missiles.json"))
	if err != nil {
		return err
	}
	mounts, err := c.loadMounts(filepath.Join(dataDir, "mounts.json"))
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.ships = ships
	c.weapons = weapons
	c.shields = shields
	c.missiles = missiles
	c.mounts = mounts
	c.mu.Unlock()

	c.logger.Info("catalog loaded",
		"ships", len(ships),
		"weapons", len(weapons),
		"shields", len(shields),
		"missiles", len(missiles),
		"mounts", len(mounts),
	)
	return nil
}

type shipArmorJSON struct {
	HP                   float64 `json:"hp"`
	ResistPhysical       float64 `json:"resist_physical"`
	ResistEnergy         float64 `json:"resist_energy"`
	ResistDistortion     float64 `json:"resist_distortion"`
	DamageMultPhysical   float64 `json:"damage_mult_physical"`
	DamageMultEnergy     float64 `json:"damage_mult_energy"`
	DamageMultDistortion float64 `json:"damage_mult_distortion"`
}

type shipThrustersJSON struct {
	MainHP  int `json:"main_hp"`
	RetroHP int `json:"retro_hp"`
	MavHP   int `json:"mav_hp"`
	VtolHP  int `json:"vtol_hp"`
	TotalHP int `json:"total_hp"`
}

type shipComponentsJSON struct {
	TurretTotalHP     int `json:"turret_total_hp"`
	PowerplantTotalHP int `json:"powerplant_total_hp"`
	CoolerTotalHP     int `json:"cooler_total_hp"`
	ShieldGenTotalHP  int `json:"shield_gen_total_hp"`
	QdTotalHP         int `json:"qd_total_hp"`
}

type shipJSON struct {
	Filename         string                 `json:"filename"`
	DisplayName      string                 `json:"display_name"`
	HullHP           float64                `json:"hull_hp"`
	Armor            shipArmorJSON          `json:"armor"`
	Thrusters        shipThrustersJSON      `json:"thrusters"`
	Components       shipComponentsJSON     `json:"components"`
	ShieldCount      int                    `json:"shield_count"`
	MaxShieldSize    int                    `json:"max_shield_size"`
	DefaultShieldRef string                 `json:"default_shield_ref"`
	WeaponHardpoints []core.WeaponHardpoint `json:"weapon_hardpoints"`
}

// loadShips reads every *.json file in the ships directory. A file that
// fails to parse is logged and skipped rather than failing the load.
func (c *Catalog) loadShips(shipsDir string) (map[string]*core.TargetProfile, error) {
	entries, err := os.ReadDir(shipsDir)
	if err != nil {
		return nil, fmt.Errorf("ships directory not found: %w", err)
	}

	ships := make(map[string]*core.TargetProfile)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(shipsDir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("failed to read ship file", "path", path, "error", err)
			continue
		}

		var sj shipJSON
		if err := json.Unmarshal(raw, &sj); err != nil {
			c.logger.Warn("failed to parse ship file", "path", path, "error", err)
			continue
		}

		if sj.Filename == "" {
			sj.Filename = strings.TrimSuffix(entry.Name(), ".json")
		}
		if sj.DisplayName == "" {
			sj.DisplayName = names.FormatShipName(sj.Filename)
		}

		// Pilot weapon summary: count and sizes come from the sub ports
		// of pilot-category hardpoints.
		var pilotCount int
		var pilotSizes []string
		for _, hp := range sj.WeaponHardpoints {
			if hp.Category != "pilot" {
				continue
			}
			pilotCount += len(hp.SubPorts)
			for _, sp := range hp.SubPorts {
				pilotSizes = append(pilotSizes, strconv.Itoa(sp.Size))
			}
		}

		hardpoints := sj.WeaponHardpoints
		for i := range hardpoints {
			hardpoints[i].SlotNumber = i + 1
			hardpoints[i].ControlType = hardpoints[i].Category
		}

		ships[sj.DisplayName] = &core.TargetProfile{
			Filename:                  sj.Filename,
			DisplayName:               sj.DisplayName,
			HullHP:                    sj.HullHP,
			ArmorHP:                   sj.Armor.HP,
			ArmorDamageMultPhysical:   sj.Armor.DamageMultPhysical,
			ArmorDamageMultEnergy:     sj.Armor.DamageMultEnergy,
			ArmorDamageMultDistortion: sj.Armor.DamageMultDistortion,
			ArmorResistPhysical:       sj.Armor.ResistPhysical,
			ArmorResistEnergy:         sj.Armor.ResistEnergy,
			ArmorResistDistortion:     sj.Armor.ResistDistortion,
			ThrusterMainHP:            sj.Thrusters.MainHP,
			ThrusterRetroHP:           sj.Thrusters.RetroHP,
			ThrusterMavHP:             sj.Thrusters.MavHP,
			ThrusterVtolHP:            sj.Thrusters.VtolHP,
			ThrusterTotalHP:           sj.Thrusters.TotalHP,
			TurretTotalHP:             sj.Components.TurretTotalHP,
			PowerplantTotalHP:         sj.Components.PowerplantTotalHP,
			CoolerTotalHP:             sj.Components.CoolerTotalHP,
			ShieldGenTotalHP:          sj.Components.ShieldGenTotalHP,
			QdTotalHP:                 sj.Components.QdTotalHP,
			PilotWeaponCount:          pilotCount,
			PilotWeaponSizes:          strings.Join(pilotSizes, ","),
			MaxShieldSize:             sj.MaxShieldSize,
			ShieldCount:               sj.ShieldCount,
			DefaultShieldRef:          sj.DefaultShieldRef,
			WeaponHardpoints:          hardpoints,
		}
	}

	return ships, nil
}

type weaponJSON struct {
	DisplayName      string   `json:"display_name"`
	Size             int      `json:"size"`
	DamageType       string   `json:"damage_type"`
	SustainedDPS     float64  `json:"sustained_dps"`
	PowerConsumption float64  `json:"power_consumption"`
	WeaponType       string   `json:"weapon_type"`
	RestrictedTo     []string `json:"restricted_to"`
	ShipExclusive    bool     `json:"ship_exclusive"`
	DamagePhysical   float64  `json:"damage_physical"`
	DamageEnergy     float64  `json:"damage_energy"`
	DamageDistortion float64  `json:"damage_distortion"`
}

func (c *Catalog) loadWeapons(path string) (map[string]*core.WeaponProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("weapons file not found: %w", err)
	}

	var entries map[string]weaponJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse weapons file: %w", err)
	}

	weapons := make(map[string]*core.WeaponProfile, len(entries))
	for key, wj := range entries {
		// Size 0 entries are internal placeholders.
		if wj.Size == 0 {
			continue
		}

		displayName := wj.DisplayName
		if displayName == "" {
			displayName = "Unknown"
		}
		weaponType := wj.WeaponType
		if weaponType == "" {
			weaponType = "gun"
		}
		damageType := wj.DamageType
		if damageType == "" {
			damageType = "Unknown"
		}

		weapons[key] = &core.WeaponProfile{
			DisplayName:      displayName,
			Filename:         key,
			Size:             wj.Size,
			DamageType:       damageType,
			SustainedDPS:     wj.SustainedDPS,
			PowerConsumption: wj.PowerConsumption,
			WeaponType:       weaponType,
			RestrictedTo:     wj.RestrictedTo,
			ShipExclusive:    wj.ShipExclusive,
			DamagePhysical:   wj.DamagePhysical,
			DamageEnergy:     wj.DamageEnergy,
			DamageDistortion: wj.DamageDistortion,
			// Penetration cone defaults until per-weapon data ships.
			BasePenetrationDistance: 2.0,
			NearRadius:              0.1,
			FarRadius:               0.2,
		}
	}

	return weapons, nil
}

// shieldJSON tolerates both key spellings the data pipeline has used
// over time: regen_rate/regen, resistance_*/resist_*, absorption_*/
// absorb_*. Missing absorption defaults to the game baseline.
type shieldJSON struct {
	DisplayName string  `json:"display_name"`
	Size        int     `json:"size"`
	MaxHP       float64 `json:"max_hp"`

	RegenRate *float64 `json:"regen_rate"`
	Regen     *float64 `json:"regen"`

	ResistancePhysical   *float64 `json:"resistance_physical"`
	ResistPhysical       *float64 `json:"resist_physical"`
	ResistanceEnergy     *float64 `json:"resistance_energy"`
	ResistEnergy         *float64 `json:"resist_energy"`
	ResistanceDistortion *float64 `json:"resistance_distortion"`
	ResistDistortion     *float64 `json:"resist_distortion"`

	AbsorptionPhysical   *float64 `json:"absorption_physical"`
	AbsorbPhysical       *float64 `json:"absorb_physical"`
	AbsorptionEnergy     *float64 `json:"absorption_energy"`
	AbsorbEnergy         *float64 `json:"absorb_energy"`
	AbsorptionDistortion *float64 `json:"absorption_distortion"`
	AbsorbDistortion     *float64 `json:"absorb_distortion"`
}

func firstOf(def float64, candidates ...*float64) float64 {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return def
}

func (c *Catalog) loadShields(path string) (map[string]*core.ShieldProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shields file not found: %w", err)
	}

	var entries map[string]shieldJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse shields file: %w", err)
	}

	shields := make(map[string]*core.ShieldProfile, len(entries))
	for internalName, sj := range entries {
		if strings.Contains(strings.ToLower(internalName), "template") {
			continue
		}
		if sj.MaxHP <= 0 {
			continue
		}

		displayName := sj.DisplayName
		if displayName == "" {
			displayName = "Unknown"
		}

		shields[internalName] = &core.ShieldProfile{
			DisplayName:      displayName,
			InternalName:     internalName,
			Size:             sj.Size,
			MaxHP:            sj.MaxHP,
			Regen:            firstOf(0, sj.RegenRate, sj.Regen),
			ResistPhysical:   firstOf(0, sj.ResistancePhysical, sj.ResistPhysical),
			ResistEnergy:     firstOf(0, sj.ResistanceEnergy, sj.ResistEnergy),
			ResistDistortion: firstOf(0, sj.ResistanceDistortion, sj.ResistDistortion),
			AbsorbPhysical:   firstOf(0.225, sj.AbsorptionPhysical, sj.AbsorbPhysical),
			AbsorbEnergy:     firstOf(1.0, sj.AbsorptionEnergy, sj.AbsorbEnergy),
			AbsorbDistortion: firstOf(1.0, sj.AbsorptionDistortion, sj.AbsorbDistortion),
		}
	}

	return shields, nil
}

type missileJSON struct {
	DisplayName        string  `json:"display_name"`
	Size               int     `json:"size"`
	MissileType        string  `json:"missile_type"`
	TrackingType       string  `json:"tracking_type"`
	DamagePhysical     float64 `json:"damage_physical"`
	DamageEnergy       float64 `json:"damage_energy"`
	DamageDistortion   float64 `json:"damage_distortion"`
	ExplosionMinRadius float64 `json:"explosion_min_radius"`
	ExplosionMaxRadius float64 `json:"explosion_max_radius"`
	MaxLifetime        float64 `json:"max_lifetime"`
	ArmTime            float64 `json:"arm_time"`
	LockTime           float64 `json:"lock_time"`
}

func (c *Catalog) loadMissiles(path string) (map[string]*core.MissileProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Info("missiles file not found, skipping", "path", path)
			return map[string]*core.MissileProfile{}, nil
		}
		return nil, err
	}

	var entries map[string]missileJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse missiles file: %w", err)
	}

	missiles := make(map[string]*core.MissileProfile, len(entries))
	for key, mj := range entries {
		if mj.Size == 0 {
			continue
		}

		displayName := mj.DisplayName
		if displayName == "" {
			displayName = "Unknown"
		}
		missileType := mj.MissileType
		if missileType == "" {
			missileType = "missile"
		}
		trackingType := mj.TrackingType
		if trackingType == "" {
			trackingType = "Unknown"
		}

		missiles[key] = &core.MissileProfile{
			Name:               key,
			DisplayName:        displayName,
			Size:               mj.Size,
			MissileType:        missileType,
			TrackingType:       trackingType,
			DamagePhysical:     mj.DamagePhysical,
			DamageEnergy:       mj.DamageEnergy,
			DamageDistortion:   mj.DamageDistortion,
			ExplosionMinRadius: mj.ExplosionMinRadius,
			ExplosionMaxRadius: mj.ExplosionMaxRadius,
			MaxLifetime:        mj.MaxLifetime,
			ArmTime:            mj.ArmTime,
			LockTime:           mj.LockTime,
		}
	}

	return missiles, nil
}

func (c *Catalog) loadMounts(path string) (map[string]*core.MountProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Info("mounts file not found, skipping", "path", path)
			return map[string]*core.MountProfile{}, nil
		}
		return nil, err
	}

	var entries []core.MountProfile
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse mounts file: %w", err)
	}

	mounts := make(map[string]*core.MountProfile, len(entries))
	for i := range entries {
		mounts[entries[i].Ref] = &entries[i]
	}

	return mounts, nil
}
