// Package engine implements the Ship Lens time-to-kill model: typed
// damage aggregation, shield absorption with ballistic passthrough, the
// Rule of Two multi-generator failover system, dual-layer armor
// resistance, zone-weighted HP pools, and the two-path timeline
// reconciliation that resolves whether a target dies by shield break or
// by leak-through while its shields are still up.
//
// Every function here is pure: inputs are read-only profile snapshots,
// outputs are freshly allocated values, and no call can fail. Degenerate
// numeric situations resolve to 0 or +Inf durations, never NaN and never
// an error.
package engine

import "github.com/CapCeph/ship-lens/pkg/core"

// DamageBreakdown is a damage rate split by type, in HP per second.
type DamageBreakdown struct {
	Physical   float64 `json:"physical"`
	Energy     float64 `json:"energy"`
	Distortion float64 `json:"distortion"`
}

// Total returns the summed rate across all damage types.
func (d DamageBreakdown) Total() float64 {
	return d.Physical + d.Energy + d.Distortion
}

// Scenario holds the five multiplicative accuracy/throughput factors of
// a combat situation. The effective accuracy is their product.
type Scenario struct {
	// MountAccuracy: Fixed=0.60, Gimballed=0.75, Auto-Gimbal=0.80, Turret=0.70.
	MountAccuracy float64 `json:"mount_accuracy"`
	// ScenarioAccuracy: Dogfight=0.75, Jousting=0.85, Synthetic=0.95.
	ScenarioAccuracy float64 `json:"scenario_accuracy"`
	// TimeOnTarget: Dogfight=0.65, Jousting=0.35, Synthetic=0.95.
	TimeOnTarget float64 `json:"time_on_target"`
	// FireMode: Sustained=1.0, Burst=0.85, Staggered=0.75.
	FireMode float64 `json:"fire_mode"`
	// PowerMultiplier: 33%=1.0, 50%=1.07, 66%=1.13, 100%=1.2.
	PowerMultiplier float64 `json:"power_multiplier"`
}

// DefaultScenario is a gimballed dogfight with sustained fire and no
// weapon power boost.
func DefaultScenario() Scenario {
	return Scenario{
		MountAccuracy:    0.75,
		ScenarioAccuracy: 0.75,
		TimeOnTarget:     0.65,
		FireMode:         1.0,
		PowerMultiplier:  1.0,
	}
}

// Accuracy returns the combined multiplier applied to raw weapon damage.
func (s Scenario) Accuracy() float64 {
	return s.MountAccuracy * s.ScenarioAccuracy * s.TimeOnTarget * s.FireMode * s.PowerMultiplier
}

// ZoneWeights describes how exposed each ship substructure is to the
// incoming fire, as fractions of its HP pool. The fractions need not
// sum to 1.
type ZoneWeights struct {
	Hull      float64 `json:"hull"`
	Armor     float64 `json:"armor"`
	Thruster  float64 `json:"thruster"`
	Component float64 `json:"component"`
}

// DefaultZoneWeights is center-mass targeting.
func DefaultZoneWeights() ZoneWeights {
	return ZoneWeights{
		Hull:      0.6,
		Armor:     0.3,
		Thruster:  0.05,
		Component: 0.05,
	}
}

// EquippedWeapon pairs a weapon profile with how many identical copies
// are mounted.
type EquippedWeapon struct {
	Weapon *core.WeaponProfile `json:"weapon"`
	Count  int                 `json:"count"`
}

// EffectiveShield is the capacity/regen a target actually fields after
// the Rule of Two is applied to its generator count.
type EffectiveShield struct {
	TotalHP        float64
	Regen          float64
	FailoverPhases int
}

// Result is a complete TTK calculation. Durations are in seconds and
// may be +Inf when the corresponding pool cannot be depleted; they are
// never NaN.
type Result struct {
	// ShieldTime is the reported shield phase duration. Zero when the
	// target dies to passthrough before shields would break.
	ShieldTime float64 `json:"shield_time"`
	ArmorTime  float64 `json:"armor_time"`
	HullTime   float64 `json:"hull_time"`
	TotalTTK   float64 `json:"total_ttk"`

	// DamageBreakdown is the post-accuracy typed damage rate.
	DamageBreakdown DamageBreakdown `json:"damage_breakdown"`

	EffectiveDPS   float64 `json:"effective_dps"`
	ShieldDPS      float64 `json:"shield_dps"`
	PassthroughDPS float64 `json:"passthrough_dps"`

	// ArmorDamageDuringShields is the armor HP eroded by passthrough
	// while the shield phase was still running.
	ArmorDamageDuringShields float64 `json:"armor_damage_during_shields"`

	ShieldFailoverPhases int `json:"shield_failover_phases"`
}
