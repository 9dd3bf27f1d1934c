// pkg/engine/armor.go
package engine

import "github.com/CapCeph/ship-lens/pkg/core"

// ArmorDamage applies the target's dual-layer armor factors to a typed
// damage rate and returns the effective armor DPS.
//
// Layer 1 is the base material damage multiplier, layer 2 the secondary
// resistance factor; both are independently configured per type and may
// exceed 1.0 (a resist of 1.30 means the armor is weak to that type).
// Example: 1000 physical x 0.75 x 0.85 = 637.5.
func ArmorDamage(damage DamageBreakdown, target *core.TargetProfile) float64 {
	physDmg := damage.Physical * target.ArmorDamageMultPhysical * target.ArmorResistPhysical
	energyDmg := damage.Energy * target.ArmorDamageMultEnergy * target.ArmorResistEnergy
	distDmg := damage.Distortion * target.ArmorDamageMultDistortion * target.ArmorResistDistortion
	return physDmg + energyDmg + distDmg
}
