// pkg/engine/shield.go
package engine

import "github.com/CapCeph/ship-lens/pkg/core"

// ShieldDamage splits a typed damage rate into the portion the shield
// soaks and the portion that leaks past it.
//
// For each type t: absorbed = d_t x absorb_t, passthrough = d_t x
// (1 - absorb_t), and the shield itself takes absorbed x (1 - resist_t).
// A negative resist amplifies shield damage; an absorb of 0 bypasses
// the shield entirely. Neither value is clamped.
func ShieldDamage(damage DamageBreakdown, shield *core.ShieldProfile) (shieldDPS, passthroughDPS float64) {
	physAbsorbed := damage.Physical * shield.AbsorbPhysical
	physShieldDmg := physAbsorbed * (1 - shield.ResistPhysical)
	physPassthrough := damage.Physical * (1 - shield.AbsorbPhysical)

	energyAbsorbed := damage.Energy * shield.AbsorbEnergy
	energyShieldDmg := energyAbsorbed * (1 - shield.ResistEnergy)
	energyPassthrough := damage.Energy * (1 - shield.AbsorbEnergy)

	distAbsorbed := damage.Distortion * shield.AbsorbDistortion
	distShieldDmg := distAbsorbed * (1 - shield.ResistDistortion)
	distPassthrough := damage.Distortion * (1 - shield.AbsorbDistortion)

	shieldDPS = physShieldDmg + energyShieldDmg + distShieldDmg
	passthroughDPS = physPassthrough + energyPassthrough + distPassthrough
	return shieldDPS, passthroughDPS
}

// RuleOfTwo computes the effective shield a target fields from its
// generator count: at most two generators are active at once, the rest
// wait in standby and activate in pairs at 80% efficiency when the
// active pair fails. An odd leftover generator contributes a half phase
// worth of capacity. Standby generators provide no regen.
func RuleOfTwo(shield *core.ShieldProfile, generatorCount int) EffectiveShield {
	if generatorCount <= 0 {
		return EffectiveShield{}
	}

	activeCount := generatorCount
	if activeCount > 2 {
		activeCount = 2
	}
	standbyCount := generatorCount - 2
	if standbyCount < 0 {
		standbyCount = 0
	}

	activeHP := shield.MaxHP * float64(activeCount)
	activeRegen := shield.Regen * float64(activeCount)

	failoverPhases := standbyCount / 2
	redundantHP := shield.MaxHP * 2 * float64(failoverPhases) * 0.8

	var oddStandby float64
	if standbyCount%2 == 1 {
		oddStandby = shield.MaxHP * 0.8
	}

	return EffectiveShield{
		TotalHP:        activeHP + redundantHP + oddStandby,
		Regen:          activeRegen,
		FailoverPhases: failoverPhases,
	}
}
