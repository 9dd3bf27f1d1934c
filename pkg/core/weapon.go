// pkg/core/weapon.go
package core

// WeaponProfile holds the damage output and mounting data for a single
// weapon. Damage rates are already time-normalized (per second) for guns;
// ordnance carries per-shot damage instead.
type WeaponProfile struct {
	DisplayName      string  `json:"display_name"`
	Filename         string  `json:"filename"`
	Size             int     `json:"size"`
	DamageType       string  `json:"damage_type"`
	SustainedDPS     float64 `json:"sustained_dps"`
	PowerConsumption float64 `json:"power_consumption"`

	// WeaponType is one of "gun", "missile", "torpedo", "bomb", "pdc".
	WeaponType string `json:"weapon_type"`

	// RestrictedTo lists manufacturer codes this weapon is limited to.
	RestrictedTo []string `json:"restricted_to,omitempty"`

	// ShipExclusive marks weapons bound to specific hulls, not swappable.
	ShipExclusive bool `json:"ship_exclusive,omitempty"`

	// Damage rate split by type.
	DamagePhysical   float64 `json:"damage_physical"`
	DamageEnergy     float64 `json:"damage_energy"`
	DamageDistortion float64 `json:"damage_distortion"`

	// Penetration cone data.
	BasePenetrationDistance float64 `json:"base_penetration_distance"`
	NearRadius              float64 `json:"near_radius"`
	FarRadius               float64 `json:"far_radius"`
}

// MissileProfile describes a missile, torpedo or bomb.
type MissileProfile struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Size        int    `json:"size"`

	// MissileType is one of "missile", "torpedo", "bomb".
	MissileType string `json:"missile_type"`

	// TrackingType is "IR", "EM", "CS" or "Unknown".
	TrackingType string `json:"tracking_type"`

	DamagePhysical   float64 `json:"damage_physical"`
	DamageEnergy     float64 `json:"damage_energy"`
	DamageDistortion float64 `json:"damage_distortion"`

	ExplosionMinRadius float64 `json:"explosion_min_radius"`
	ExplosionMaxRadius float64 `json:"explosion_max_radius"`
	MaxLifetime        float64 `json:"max_lifetime"`
	ArmTime            float64 `json:"arm_time"`
	LockTime           float64 `json:"lock_time"`
}

// TotalDamage returns the summed typed damage of a missile.
func (m *MissileProfile) TotalDamage() float64 {
	return m.DamagePhysical + m.DamageEnergy + m.DamageDistortion
}

// MountProfile describes a weapon mount (gimbal, fixed mount or turret).
type MountProfile struct {
	Ref         string `json:"ref"`
	DisplayName string `json:"display_name"`
	Size        int    `json:"size"`
	Ports       int    `json:"ports"`
	PortSize    int    `json:"port_size"`
	HP          int    `json:"hp"`

	// MountType is "gimbal", "fixed" or "turret".
	MountType string `json:"mount_type"`
}
