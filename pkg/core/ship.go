// pkg/core/ship.go
package core

// SubPort is an individual weapon port within a hardpoint.
type SubPort struct {
	Size          int     `json:"size"`
	DefaultWeapon *string `json:"default_weapon,omitempty"`
}

// WeaponHardpoint is a weapon attachment point on a ship.
type WeaponHardpoint struct {
	SlotNumber  int    `json:"slot_number,omitempty"`
	PortName    string `json:"port_name"`
	MaxSize     int    `json:"max_size"`
	GimbalType  string `json:"gimbal_type"`
	ControlType string `json:"control_type,omitempty"`

	// Category is one of "pilot", "manned_turret", "remote_turret",
	// "pdc", "specialized", "torpedo", "missile", "bomb".
	Category string `json:"category"`

	// MountName is the gimbal/turret mount fitted to this hardpoint.
	MountName string `json:"mount_name,omitempty"`

	// CompatibleMounts lists mount refs this hardpoint accepts.
	CompatibleMounts []string `json:"compatible_mounts,omitempty"`

	SubPorts []SubPort `json:"sub_ports"`
}

// TargetProfile holds a ship's survivability and loadout data. HP pools
// are non-negative; the armor factors are unconstrained multipliers,
// since values above 1.0 and negative resistances are legitimate
// type-matchup mechanics.
type TargetProfile struct {
	Filename    string  `json:"filename"`
	DisplayName string  `json:"display_name"`
	HullHP      float64 `json:"hull_hp"`
	ArmorHP     float64 `json:"armor_hp"`

	// Dual-layer armor factors. Layer 1 is the base material reduction,
	// layer 2 the secondary resistance/vulnerability factor. Effective
	// armor damage per type is damage x mult x resist.
	ArmorDamageMultPhysical   float64 `json:"armor_damage_mult_physical"`
	ArmorDamageMultEnergy     float64 `json:"armor_damage_mult_energy"`
	ArmorDamageMultDistortion float64 `json:"armor_damage_mult_distortion"`
	ArmorResistPhysical       float64 `json:"armor_resist_physical"`
	ArmorResistEnergy         float64 `json:"armor_resist_energy"`
	ArmorResistDistortion     float64 `json:"armor_resist_distortion"`

	ThrusterMainHP  int `json:"thruster_main_hp"`
	ThrusterRetroHP int `json:"thruster_retro_hp"`
	ThrusterMavHP   int `json:"thruster_mav_hp"`
	ThrusterVtolHP  int `json:"thruster_vtol_hp"`
	ThrusterTotalHP int `json:"thruster_total_hp"`

	TurretTotalHP     int `json:"turret_total_hp"`
	PowerplantTotalHP int `json:"powerplant_total_hp"`
	CoolerTotalHP     int `json:"cooler_total_hp"`
	ShieldGenTotalHP  int `json:"shield_gen_total_hp"`
	QdTotalHP         int `json:"qd_total_hp"`

	PilotWeaponCount int    `json:"pilot_weapon_count"`
	PilotWeaponSizes string `json:"pilot_weapon_sizes"`

	MaxShieldSize    int    `json:"max_shield_size"`
	ShieldCount      int    `json:"shield_count"`
	DefaultShieldRef string `json:"default_shield_ref"`

	WeaponHardpoints []WeaponHardpoint `json:"weapon_hardpoints"`
}

// ComponentTotalHP returns the combined component pool exposed to
// component-zone damage: power plants, coolers and shield generator
// structure share it.
func (t *TargetProfile) ComponentTotalHP() float64 {
	return float64(t.PowerplantTotalHP + t.CoolerTotalHP + t.ShieldGenTotalHP)
}
