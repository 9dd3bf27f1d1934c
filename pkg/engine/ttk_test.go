package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNoNaN(t *testing.T, r Result) {
	t.Helper()
	assert.False(t, math.IsNaN(r.ShieldTime), "ShieldTime is NaN")
	assert.False(t, math.IsNaN(r.ArmorTime), "ArmorTime is NaN")
	assert.False(t, math.IsNaN(r.HullTime), "HullTime is NaN")
	assert.False(t, math.IsNaN(r.TotalTTK), "TotalTTK is NaN")
	assert.False(t, math.IsNaN(r.EffectiveDPS), "EffectiveDPS is NaN")
	assert.False(t, math.IsNaN(r.ShieldDPS), "ShieldDPS is NaN")
	assert.False(t, math.IsNaN(r.PassthroughDPS), "PassthroughDPS is NaN")
	assert.False(t, math.IsNaN(r.ArmorDamageDuringShields), "ArmorDamageDuringShields is NaN")
}

func TestCompute_ZeroDamageIsInfiniteNotNaN(t *testing.T) {
	tests := []struct {
		name    string
		weapons []EquippedWeapon
	}{
		{name: "empty loadout", weapons: nil},
		{name: "zero count", weapons: []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 0}}},
		{name: "zero damage weapon", weapons: []EquippedWeapon{{Weapon: testWeapon(0, 0, 0), Count: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.weapons, testTarget(), testShield(), perfectScenario(), DefaultZoneWeights())

			assert.True(t, math.IsInf(r.TotalTTK, 1))
			assert.True(t, math.IsInf(r.ShieldTime, 1))
			assert.Zero(t, r.ArmorTime)
			assert.Zero(t, r.HullTime)
			assert.Zero(t, r.EffectiveDPS)
			assert.Zero(t, r.ShieldDPS)
			assert.Zero(t, r.PassthroughDPS)
			assert.Zero(t, r.ShieldFailoverPhases)
			assertNoNaN(t, r)
		})
	}
}

func TestCompute_MixedLoadoutIsFinite(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(500, 500, 0), Count: 2}}

	r := Compute(weapons, testTarget(), testShield(), perfectScenario(), DefaultZoneWeights())

	require.False(t, math.IsInf(r.TotalTTK, 1))
	assert.Greater(t, r.TotalTTK, 0.0)
	assert.GreaterOrEqual(t, r.ArmorTime, 0.0)
	assert.GreaterOrEqual(t, r.HullTime, 0.0)
	assert.Greater(t, r.PassthroughDPS, 0.0, "ballistic component must leak")
	assert.InDelta(t, 2000.0, r.EffectiveDPS, 1e-9)
	assertNoNaN(t, r)
}

func TestCompute_PassthroughDominance(t *testing.T) {
	// Shield absorbs nothing physical, so absorbed DPS (0) never beats
	// regen: Path A is infinite and the passthrough path must win with a
	// reported shield time of zero.
	shield := testShield()
	shield.AbsorbPhysical = 0

	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	r := Compute(weapons, testTarget(), shield, perfectScenario(), DefaultZoneWeights())

	require.False(t, math.IsInf(r.TotalTTK, 1), "passthrough path must be selected")
	assert.Zero(t, r.ShieldTime)
	assert.Greater(t, r.ArmorTime+r.HullTime, 0.0)
	assert.InDelta(t, r.ArmorTime+r.HullTime, r.TotalTTK, 1e-9)
	assert.InDelta(t, 1000.0, r.PassthroughDPS, 1e-9)
	assertNoNaN(t, r)
}

func TestCompute_UnbreakableShieldNoPassthrough(t *testing.T) {
	// Energy-only fire is fully absorbed; with DPS below regen neither
	// path completes and everything is cleanly infinite.
	shield := testShield()
	shield.ResistEnergy = 0.9
	shield.Regen = 100000

	weapons := []EquippedWeapon{{Weapon: testWeapon(0, 1000, 0), Count: 1}}
	r := Compute(weapons, testTarget(), shield, perfectScenario(), DefaultZoneWeights())

	assert.True(t, math.IsInf(r.TotalTTK, 1))
	assert.True(t, math.IsInf(r.ShieldTime, 1))
	assert.Zero(t, r.ArmorTime)
	assert.Zero(t, r.HullTime)
	assert.Zero(t, r.PassthroughDPS)
	assertNoNaN(t, r)
}

func TestCompute_RegenEqualToShieldDPSCannotBreak(t *testing.T) {
	// shield_dps == regen is treated as unbreakable, not an instant kill.
	shield := testShield()
	shield.AbsorbEnergy = 1.0
	shield.ResistEnergy = 0
	shield.Regen = 500 // two active generators -> effective regen 1000

	weapons := []EquippedWeapon{{Weapon: testWeapon(0, 1000, 0), Count: 1}}
	r := Compute(weapons, testTarget(), shield, perfectScenario(), DefaultZoneWeights())

	assert.InDelta(t, 1000.0, r.ShieldDPS, 1e-9)
	assert.True(t, math.IsInf(r.TotalTTK, 1))
	assert.True(t, math.IsInf(r.ShieldTime, 1))
	assertNoNaN(t, r)
}

func TestCompute_ZeroCapacityZonesSkipPhases(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	zone := ZoneWeights{Hull: 0, Armor: 0, Thruster: 0, Component: 0}

	r := Compute(weapons, testTarget(), testShield(), perfectScenario(), zone)

	// Every pool is empty: the passthrough path completes instantly.
	assert.Zero(t, r.ArmorTime)
	assert.Zero(t, r.HullTime)
	assert.Zero(t, r.TotalTTK)
	assertNoNaN(t, r)
}

func TestCompute_ZoneWeightMonotonicity(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(600, 400, 0), Count: 2}}
	target := testTarget()
	shield := testShield()
	scenario := perfectScenario()

	base := ZoneWeights{Hull: 0.2, Armor: 0.2, Thruster: 0.05, Component: 0.05}
	prevArmor := Compute(weapons, target, shield, scenario, base).TotalTTK
	prevHull := prevArmor

	for _, step := range []float64{0.3, 0.5, 0.8, 1.0} {
		withArmor := base
		withArmor.Armor = step
		ttk := Compute(weapons, target, shield, scenario, withArmor).TotalTTK
		assert.GreaterOrEqual(t, ttk, prevArmor, "raising armor weight must not lower TTK")
		prevArmor = ttk

		withHull := base
		withHull.Hull = step
		ttk = Compute(weapons, target, shield, scenario, withHull).TotalTTK
		assert.GreaterOrEqual(t, ttk, prevHull, "raising hull weight must not lower TTK")
		prevHull = ttk
	}
}

func TestCompute_ZoneTargetingChangesTimeline(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	target := testTarget()
	shield := testShield()
	scenario := perfectScenario()

	center := Compute(weapons, target, shield, scenario, DefaultZoneWeights())
	engines := Compute(weapons, target, shield, scenario, ZoneWeights{
		Hull: 0.1, Armor: 0.2, Thruster: 0.6, Component: 0.1,
	})

	require.False(t, math.IsInf(center.TotalTTK, 1))
	require.False(t, math.IsInf(engines.TotalTTK, 1))
	assert.Greater(t, math.Abs(center.ArmorTime-engines.ArmorTime), 1e-3)
	assert.Greater(t, math.Abs(center.HullTime-engines.HullTime), 1e-3)
	assert.Less(t, engines.TotalTTK, center.TotalTTK, "engine zone exposes less HP")
}

func TestCompute_FailoverPhasesReported(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(0, 5000, 0), Count: 2}}
	target := testTarget()
	target.ShieldCount = 6

	r := Compute(weapons, target, testShield(), perfectScenario(), DefaultZoneWeights())
	assert.Equal(t, 2, r.ShieldFailoverPhases)
}

func TestComputeNoShield_ZeroDamage(t *testing.T) {
	r := ComputeNoShield(nil, testTarget(), perfectScenario())

	assert.True(t, math.IsInf(r.TotalTTK, 1))
	assert.Zero(t, r.ShieldTime)
	assert.Zero(t, r.ShieldDPS)
	assertNoNaN(t, r)
}

func TestComputeNoShield_Phases(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	target := testTarget()

	r := ComputeNoShield(weapons, target, perfectScenario())

	// 3000 armor / (1000 x 0.75 x 0.85), 5000 hull / 1000
	assert.InDelta(t, 3000.0/637.5, r.ArmorTime, 1e-9)
	assert.InDelta(t, 5.0, r.HullTime, 1e-9)
	assert.InDelta(t, r.ArmorTime+r.HullTime, r.TotalTTK, 1e-9)
	assert.Zero(t, r.ShieldTime)
	assert.InDelta(t, r.EffectiveDPS, r.PassthroughDPS, 1e-9)
}

func TestComputeNoShield_MatchesDegenerateShield(t *testing.T) {
	// A shield that absorbs nothing reduces Compute to the passthrough
	// path; with unit hull/armor weights and no thruster or component
	// exposure the phase durations must match ComputeNoShield.
	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	target := testTarget()

	shield := testShield()
	shield.AbsorbPhysical = 0
	shield.AbsorbEnergy = 0
	shield.AbsorbDistortion = 0

	zone := ZoneWeights{Hull: 1, Armor: 1, Thruster: 0, Component: 0}

	shielded := Compute(weapons, target, shield, perfectScenario(), zone)
	bare := ComputeNoShield(weapons, target, perfectScenario())

	require.False(t, math.IsInf(shielded.TotalTTK, 1))
	assert.Zero(t, shielded.ShieldTime)
	assert.InDelta(t, bare.ArmorTime, shielded.ArmorTime, 1e-9)
	assert.InDelta(t, bare.HullTime, shielded.HullTime, 1e-9)
	assert.InDelta(t, bare.ArmorTime+bare.HullTime, shielded.TotalTTK, 1e-9)
}

func TestCompute_PassthroughPathExactTimeline(t *testing.T) {
	weapons := []EquippedWeapon{{Weapon: testWeapon(1000, 0, 0), Count: 1}}
	target := testTarget()
	shield := testShield()

	r := Compute(weapons, target, shield, perfectScenario(), DefaultZoneWeights())
	assertNoNaN(t, r)

	// 1000 physical: the shield face takes 1000*0.225*(1-0.125), the
	// rest leaks straight through.
	assert.InDelta(t, 196.875, r.ShieldDPS, 1e-9)
	assert.InDelta(t, 775.0, r.PassthroughDPS, 1e-9)

	// Two active generators regenerate 1000 HP/s, so the shield never
	// breaks and the leak-through kill is the only finite timeline.
	assert.Zero(t, r.ShieldTime)
	assert.InDelta(t, 900.0/494.0625, r.ArmorTime, 1e-9)
	assert.InDelta(t, 3105.0/775.0, r.HullTime, 1e-9)
	assert.InDelta(t, 900.0/494.0625+3105.0/775.0, r.TotalTTK, 1e-9)
}
