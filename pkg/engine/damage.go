// pkg/engine/damage.go
package engine

// Aggregate reduces a loadout to a typed damage rate with the scenario's
// accuracy product applied. An empty loadout or a zero accuracy factor
// yields an all-zero breakdown, which is the single degenerate input
// that drives every downstream duration to +Inf.
func Aggregate(weapons []EquippedWeapon, scenario Scenario) DamageBreakdown {
	accuracy := scenario.Accuracy()

	var damage DamageBreakdown
	for _, eq := range weapons {
		if eq.Weapon == nil {
			continue
		}
		count := float64(eq.Count)
		damage.Physical += eq.Weapon.DamagePhysical * count * accuracy
		damage.Energy += eq.Weapon.DamageEnergy * count * accuracy
		damage.Distortion += eq.Weapon.DamageDistortion * count * accuracy
	}
	return damage
}
