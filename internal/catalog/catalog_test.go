package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// testDataDir builds a minimal data directory with one ship, three
// weapons, and a shields file exercising both key spellings.
func testDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "ships", "aegs_gladius.json"), `{
		"filename": "aegs_gladius",
		"display_name": "Aegis Gladius",
		"hull_hp": 5000,
		"armor": {
			"hp": 3000,
			"resist_physical": 0.85,
			"resist_energy": 1.30,
			"resist_distortion": 1.0,
			"damage_mult_physical": 0.75,
			"damage_mult_energy": 0.6,
			"damage_mult_distortion": 1.0
		},
		"thrusters": {"main_hp": 400, "retro_hp": 200, "mav_hp": 200, "vtol_hp": 100, "total_hp": 900},
		"components": {
			"turret_total_hp": 0,
			"powerplant_total_hp": 500,
			"cooler_total_hp": 300,
			"shield_gen_total_hp": 400,
			"qd_total_hp": 250
		},
		"shield_count": 2,
		"max_shield_size": 1,
		"default_shield_ref": "shield_s1_alpha",
		"weapon_hardpoints": [
			{
				"port_name": "hardpoint_gun_left",
				"max_size": 3,
				"gimbal_type": "fixed",
				"category": "pilot",
				"sub_ports": [{"size": 3}]
			},
			{
				"port_name": "hardpoint_nose",
				"max_size": 3,
				"gimbal_type": "gimbal",
				"category": "pilot",
				"sub_ports": [{"size": 2, "default_weapon": "laser_repeater_s2"}, {"size": 2}]
			},
			{
				"port_name": "hardpoint_missile_rack",
				"max_size": 3,
				"gimbal_type": "fixed",
				"category": "missile",
				"sub_ports": [{"size": 1}, {"size": 1}]
			}
		]
	}`)

	writeFile(t, filepath.Join(dir, "weapons.json"), `{
		"ballistic_gatling_s3": {
			"display_name": "Scorpion GT-215",
			"size": 3,
			"damage_type": "Ballistic",
			"sustained_dps": 900,
			"weapon_type": "gun",
			"damage_physical": 900,
			"damage_energy": 0,
			"damage_distortion": 0
		},
		"laser_repeater_s3": {
			"display_name": "CF-337 Panther",
			"size": 3,
			"damage_type": "Energy",
			"sustained_dps": 650,
			"weapon_type": "gun",
			"damage_physical": 0,
			"damage_energy": 650,
			"damage_distortion": 0
		},
		"internal_placeholder": {
			"display_name": "Nothing",
			"size": 0,
			"sustained_dps": 1
		}
	}`)

	writeFile(t, filepath.Join(dir, "shields.json"), `{
		"shield_s1_alpha": {
			"display_name": "Alpha Shield",
			"size": 1,
			"max_hp": 10000,
			"regen_rate": 500,
			"resistance_physical": 0.125,
			"resistance_energy": -0.3,
			"resistance_distortion": 0.85
		},
		"shield_s1_beta": {
			"display_name": "Beta Shield",
			"size": 1,
			"max_hp": 12000,
			"regen": 400,
			"resist_physical": 0.1,
			"absorb_physical": 0.3,
			"absorb_energy": 0.95,
			"absorb_distortion": 0.9
		},
		"shield_template_base": {
			"display_name": "Template",
			"size": 1,
			"max_hp": 99999
		},
		"shield_broken": {
			"display_name": "Broken",
			"size": 1,
			"max_hp": 0
		}
	}`)

	return dir
}

func TestLoad_Stats(t *testing.T) {
	c := New(slog.Default())
	require.NoError(t, c.Load(testDataDir(t)))

	stats := c.Stats()
	assert.Equal(t, 1, stats.Ships)
	assert.Equal(t, 2, stats.Weapons, "size 0 entry must be skipped")
	assert.Equal(t, 2, stats.Shields, "template and zero-hp entries must be skipped")
	assert.Equal(t, 0, stats.Missiles)
	assert.Equal(t, 0, stats.Mounts)
}

func TestLoad_ShipDerivedFields(t *testing.T) {
	c := New(slog.Default())
	require.NoError(t, c.Load(testDataDir(t)))

	ship, ok := c.Ship("Aegis Gladius")
	require.True(t, ok)

	assert.Equal(t, "aegs_gladius", ship.Filename)
	assert.Equal(t, 3, ship.PilotWeaponCount, "missile rack ports must not count")
	assert.Equal(t, "3,2,2", ship.PilotWeaponSizes)
	assert.Equal(t, 2, ship.ShieldCount)
	assert.Equal(t, "shield_s1_alpha", ship.DefaultShieldRef)

	require.Len(t, ship.WeaponHardpoints, 3)
	for i, hp := range ship.WeaponHardpoints {
		assert.Equal(t, i+1, hp.SlotNumber)
		assert.Equal(t, hp.Category, hp.ControlType)
	}
}

func TestLoad_SkipsMalformedShipFile(t *testing.T) {
	dir := testDataDir(t)
	writeFile(t, filepath.Join(dir, "ships", "broken.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "ships", "notes.txt"), `ignore me`)

	c := New(slog.Default())
	require.NoError(t, c.Load(dir))
	assert.Equal(t, 1, c.Stats().Ships)
}

func TestLoad_MissingRequiredFiles(t *testing.T) {
	c := New(slog.Default())

	err := c.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ships directory not found")

	dir := testDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "weapons.json")))
	err = c.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weapons file not found")
}

func TestShieldAlternateKeysAndDefaults(t *testing.T) {
	c := New(slog.Default())
	require.NoError(t, c.Load(testDataDir(t)))

	alpha, ok := c.Shield("shield_s1_alpha")
	require.True(t, ok)
	assert.Equal(t, 500.0, alpha.Regen, "regen_rate spelling must be read")
	assert.Equal(t, 0.125, alpha.ResistPhysical)
	assert.Equal(t, -0.3, alpha.ResistEnergy)
	// Absorption absent: game baseline defaults apply.
	assert.Equal(t, 0.225, alpha.AbsorbPhysical)
	assert.Equal(t, 1.0, alpha.AbsorbEnergy)
	assert.Equal(t, 1.0, alpha.AbsorbDistortion)

	beta, ok := c.Shield("shield_s1_beta")
	require.True(t, ok)
	assert.Equal(t, 400.0, beta.Regen)
	assert.Equal(t, 0.1, beta.ResistPhysical)
	assert.Equal(t, 0.3, beta.AbsorbPhysical)

	// Display name lookup falls back when no internal name matches.
	byDisplay, ok := c.Shield("Beta Shield")
	require.True(t, ok)
	assert.Equal(t, "shield_s1_beta", byDisplay.InternalName)
}

func TestSortedLookups(t *testing.T) {
	c := New(slog.Default())
	require.NoError(t, c.Load(testDataDir(t)))

	assert.Equal(t, []string{"Aegis Gladius"}, c.ShipsSorted())

	// Weapons of size 3, highest DPS first.
	assert.Equal(t, []string{"ballistic_gatling_s3", "laser_repeater_s3"}, c.WeaponsBySize(3))
	assert.Empty(t, c.WeaponsBySize(5))

	// Size 0 is the unfiltered listing, same ordering.
	assert.Equal(t, []string{"ballistic_gatling_s3", "laser_repeater_s3"}, c.WeaponsBySize(0))
	assert.Equal(t, []string{"shield_s1_beta", "shield_s1_alpha"}, c.ShieldsBySize(0))

	// Shields of size 1, highest capacity first.
	assert.Equal(t, []string{"shield_s1_beta", "shield_s1_alpha"}, c.ShieldsBySize(1))

	w, ok := c.WeaponByDisplayName("CF-337 Panther")
	require.True(t, ok)
	assert.Equal(t, "laser_repeater_s3", w.Filename)

	w, ok = c.WeaponByFilename("ballistic_gatling_s3")
	require.True(t, ok)
	assert.Equal(t, "Scorpion GT-215", w.DisplayName)

	_, ok = c.WeaponByDisplayName("No Such Gun")
	assert.False(t, ok)
}

func TestLoad_OptionalMissilesAndMounts(t *testing.T) {
	dir := testDataDir(t)

	writeFile(t, filepath.Join(dir, "missiles.json"), `{
		"missile_ir_s1": {
			"display_name": "Spark I",
			"size": 1,
			"missile_type": "missile",
			"tracking_type": "IR",
			"damage_physical": 3200,
			"damage_energy": 0,
			"damage_distortion": 0
		},
		"missile_em_s1": {
			"display_name": "Arrester I",
			"size": 1,
			"missile_type": "missile",
			"tracking_type": "EM",
			"damage_physical": 4100,
			"damage_energy": 0,
			"damage_distortion": 0
		},
		"missile_placeholder": {"display_name": "None", "size": 0}
	}`)
	writeFile(t, filepath.Join(dir, "mounts.json"), `[
		{"ref": "gimbal_s3", "display_name": "Gimbal S3", "size": 3, "ports": 1, "port_size": 2, "hp": 300, "mount_type": "gimbal"}
	]`)

	c := New(slog.Default())
	require.NoError(t, c.Load(dir))

	assert.Equal(t, 2, c.Stats().Missiles)
	assert.Equal(t, []string{"missile_em_s1", "missile_ir_s1"}, c.MissilesBySize(1))
	assert.Equal(t, []string{"missile_em_s1", "missile_ir_s1"}, c.MissilesBySize(0))

	m, ok := c.MissileByDisplayName("Spark I")
	require.True(t, ok)
	assert.Equal(t, "missile_ir_s1", m.Name)

	mount, ok := c.Mount("gimbal_s3")
	require.True(t, ok)
	assert.Equal(t, "gimbal", mount.MountType)
}

func TestLoad_DerivesDisplayNameFromFilename(t *testing.T) {
	dir := testDataDir(t)

	writeFile(t, filepath.Join(dir, "ships", "drak_cutlass_black.json"), `{
		"hull_hp": 12000,
		"armor": {"hp": 4000},
		"thrusters": {"total_hp": 1200},
		"components": {},
		"shield_count": 1,
		"max_shield_size": 2,
		"weapon_hardpoints": []
	}`)

	c := New(slog.Default())
	require.NoError(t, c.Load(dir))

	ship, ok := c.Ship("Drake Cutlass Black")
	require.True(t, ok)
	assert.Equal(t, "drak_cutlass_black", ship.Filename)
}
