// pkg/engine/ttk.go
package engine

import (
	"math"

	"github.com/CapCeph/ship-lens/pkg/core"
)

// Compute runs the full TTK pipeline for a loadout against a shielded
// target.
//
// Three ordered phases exist (shield, armor, hull) but ballistic
// weapons leak a passthrough fraction past the shield from time zero,
// so the target can die before its shields nominally break. Two causal
// paths are therefore evaluated independently in closed form:
//
//   - Path A: deplete the effective shield (net of regen), then the
//     remaining zone armor, then the remaining hull pool.
//   - Path B: shields never break; passthrough alone grinds down zone
//     armor and then the hull pool.
//
// The shorter path determines TotalTTK. When Path B wins, the reported
// breakdown shows ShieldTime 0 and the passthrough phase times; the two
// paths are never algebraically merged. Ties resolve to Path A by an
// explicit non-epsilon comparison so selection stays deterministic.
func Compute(weapons []EquippedWeapon, target *core.TargetProfile, shield *core.ShieldProfile, scenario Scenario, zone ZoneWeights) Result {
	damage := Aggregate(weapons, scenario)

	if damage.Total() <= 0 {
		return Result{
			ShieldTime:      math.Inf(1),
			TotalTTK:        math.Inf(1),
			DamageBreakdown: damage,
		}
	}

	shieldDPS, passthroughDPS := ShieldDamage(damage, shield)
	effectiveShield := RuleOfTwo(shield, target.ShieldCount)

	// Time to fully deplete shields, ignoring passthrough.
	var theoreticalShieldTime float64
	if effectiveShield.TotalHP > 0 {
		netShieldDPS := math.Max(shieldDPS-effectiveShield.Regen, 0)
		if netShieldDPS > 0 {
			theoreticalShieldTime = effectiveShield.TotalHP / netShieldDPS
		} else {
			// DPS at or below regen: shields never break.
			theoreticalShieldTime = math.Inf(1)
		}
	}

	// Zone weighting scales exposed capacity only; no resistances here.
	// Thruster and component pools fold into the hull-phase pool since
	// they share the hull's unresisted damage profile once armor is gone.
	zoneArmorHP := target.ArmorHP * zone.Armor
	totalHullHP := target.HullHP*zone.Hull +
		float64(target.ThrusterTotalHP)*zone.Thruster +
		target.ComponentTotalHP()*zone.Component

	// Passthrough reaching armor is resisted as physical damage.
	var armorPassthroughDPS float64
	if passthroughDPS > 0 {
		armorPassthroughDPS = ArmorDamage(DamageBreakdown{Physical: passthroughDPS}, target)
	}

	var armorViaPassthroughTime float64
	switch {
	case zoneArmorHP <= 0:
		armorViaPassthroughTime = 0
	case armorPassthroughDPS > 0:
		armorViaPassthroughTime = zoneArmorHP / armorPassthroughDPS
	default:
		armorViaPassthroughTime = math.Inf(1)
	}

	var hullViaPassthroughTime float64
	switch {
	case totalHullHP <= 0:
		hullViaPassthroughTime = 0
	case passthroughDPS > 0:
		hullViaPassthroughTime = totalHullHP / passthroughDPS
	default:
		hullViaPassthroughTime = math.Inf(1)
	}

	passthroughKillTime := armorViaPassthroughTime + hullViaPassthroughTime

	// Path A bookkeeping: how much armor and hull the passthrough eats
	// while the shield phase is still running.
	var armorDamageDuringShields float64
	if passthroughDPS > 0 {
		if math.IsInf(theoreticalShieldTime, 1) {
			armorDamageDuringShields = zoneArmorHP
		} else {
			armorDamageDuringShields = math.Min(armorPassthroughDPS*theoreticalShieldTime, zoneArmorHP)
		}
	}

	var hullDamageDuringShields float64
	if passthroughDPS > 0 {
		if math.IsInf(theoreticalShieldTime, 1) {
			hullDamageDuringShields = totalHullHP
		} else {
			var armorDepletedAt float64
			if armorPassthroughDPS > 0 && zoneArmorHP > 0 {
				armorDepletedAt = zoneArmorHP / armorPassthroughDPS
			}
			if armorDepletedAt < theoreticalShieldTime {
				remaining := theoreticalShieldTime - armorDepletedAt
				hullDamageDuringShields = math.Min(passthroughDPS*remaining, totalHullHP)
			}
		}
	}

	remainingArmor := math.Max(zoneArmorHP-armorDamageDuringShields, 0)
	remainingHull := math.Max(totalHullHP-hullDamageDuringShields, 0)

	armorDPS := ArmorDamage(damage, target)
	var armorTime float64
	if remainingArmor > 0 && armorDPS > 0 {
		armorTime = remainingArmor / armorDPS
	}

	hullDPS := damage.Total()
	var hullTime float64
	if remainingHull > 0 && hullDPS > 0 {
		hullTime = remainingHull / hullDPS
	}

	shieldBreakPathTTK := math.Inf(1)
	if !math.IsInf(theoreticalShieldTime, 1) {
		shieldBreakPathTTK = theoreticalShieldTime + armorTime + hullTime
	}

	// Select the faster path. Strictly-less keeps ties on Path A.
	passthroughWins := passthroughDPS > 0 && passthroughKillTime < shieldBreakPathTTK

	result := Result{
		DamageBreakdown:          damage,
		EffectiveDPS:             hullDPS,
		ShieldDPS:                shieldDPS,
		PassthroughDPS:           passthroughDPS,
		ArmorDamageDuringShields: armorDamageDuringShields,
		ShieldFailoverPhases:     effectiveShield.FailoverPhases,
	}

	switch {
	case passthroughWins && !math.IsInf(passthroughKillTime, 1):
		// Killed by leakage while shields stayed up: the displayed
		// timeline shows no shield phase, only the passthrough grind.
		result.TotalTTK = passthroughKillTime
		result.ShieldTime = 0
		result.ArmorTime = armorViaPassthroughTime
		result.HullTime = hullViaPassthroughTime
	case !math.IsInf(theoreticalShieldTime, 1):
		result.TotalTTK = shieldBreakPathTTK
		result.ShieldTime = theoreticalShieldTime
		result.ArmorTime = armorTime
		result.HullTime = hullTime
	default:
		result.TotalTTK = math.Inf(1)
		result.ShieldTime = math.Inf(1)
	}

	return result
}

// ComputeNoShield computes TTK with the shield phase structurally
// absent: all damage reaches armor and hull from time zero, and the
// reported passthrough rate equals the effective DPS. Zone weighting
// does not apply; the raw armor and hull pools are used.
func ComputeNoShield(weapons []EquippedWeapon, target *core.TargetProfile, scenario Scenario) Result {
	damage := Aggregate(weapons, scenario)

	if damage.Total() <= 0 {
		return Result{
			ArmorTime:       math.Inf(1),
			TotalTTK:        math.Inf(1),
			DamageBreakdown: damage,
		}
	}

	armorDPS := ArmorDamage(damage, target)
	var armorTime float64
	if target.ArmorHP > 0 && armorDPS > 0 {
		armorTime = target.ArmorHP / armorDPS
	}

	hullDPS := damage.Total()
	var hullTime float64
	if target.HullHP > 0 && hullDPS > 0 {
		hullTime = target.HullHP / hullDPS
	}

	return Result{
		ArmorTime:       armorTime,
		HullTime:        hullTime,
		TotalTTK:        armorTime + hullTime,
		DamageBreakdown: damage,
		EffectiveDPS:    hullDPS,
		PassthroughDPS:  hullDPS,
	}
}
