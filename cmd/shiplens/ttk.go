package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CapCeph/ship-lens/internal/service"
	"github.com/CapCeph/ship-lens/pkg/engine"
)

type ttkFlags struct {
	weapons  []string
	shield   string
	noShield bool
	asJSON   bool

	mountAccuracy    float64
	scenarioAccuracy float64
	timeOnTarget     float64
	fireMode         float64
	powerMultiplier  float64

	zoneHull      float64
	zoneArmor     float64
	zoneThruster  float64
	zoneComponent float64
}

func newTTKCmd(a *app) *cobra.Command {
	var f ttkFlags

	cmd := &cobra.Command{
		Use:   "ttk <target ship>",
		Short: "Compute time to kill for a loadout against a ship",
		Example: `  shiplens ttk "Aegis Gladius" -w "CF-337 Panther:2" -w "Scorpion GT-215"
  shiplens ttk "Drake Cutlass Black" -w "CF-337 Panther:4" --shield "FR-66"
  shiplens ttk "Aegis Gladius" -w "Scorpion GT-215:2" --no-shield --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildComputeRequest(cmd, args[0], f)
			if err != nil {
				return err
			}

			raw, err := json.Marshal(req)
			if err != nil {
				return err
			}
			result, err := a.dispatch(service.OpComputeTTK, string(raw))
			if err != nil {
				return err
			}

			resp := result.(*service.ComputeResponse)
			if f.asJSON {
				return printJSON(resp)
			}
			printTTK(resp)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&f.weapons, "weapon", "w", nil, `weapon as "Display Name" or "Display Name:count" (repeatable)`)
	cmd.Flags().StringVar(&f.shield, "shield", "", "shield by name (default: the target ship's stock shield)")
	cmd.Flags().BoolVar(&f.noShield, "no-shield", false, "skip the shield phase entirely")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the raw calculation as JSON")

	cmd.Flags().Float64Var(&f.mountAccuracy, "mount-accuracy", -1, "mount accuracy factor (fixed 0.60, gimballed 0.75, auto 0.80, turret 0.70)")
	cmd.Flags().Float64Var(&f.scenarioAccuracy, "scenario-accuracy", -1, "scenario accuracy factor (dogfight 0.75, jousting 0.85, synthetic 0.95)")
	cmd.Flags().Float64Var(&f.timeOnTarget, "time-on-target", -1, "time on target factor (dogfight 0.65, jousting 0.35, synthetic 0.95)")
	cmd.Flags().Float64Var(&f.fireMode, "fire-mode", -1, "fire mode factor (sustained 1.0, burst 0.85, staggered 0.75)")
	cmd.Flags().Float64Var(&f.powerMultiplier, "power", -1, "weapon power multiplier (1.0 to 1.2)")

	cmd.Flags().Float64Var(&f.zoneHull, "zone-hull", -1, "hull exposure fraction")
	cmd.Flags().Float64Var(&f.zoneArmor, "zone-armor", -1, "armor exposure fraction")
	cmd.Flags().Float64Var(&f.zoneThruster, "zone-thruster", -1, "thruster exposure fraction")
	cmd.Flags().Float64Var(&f.zoneComponent, "zone-component", -1, "component exposure fraction")

	return cmd
}

func buildComputeRequest(cmd *cobra.Command, target string, f ttkFlags) (service.ComputeRequest, error) {
	req := service.ComputeRequest{
		Target:   target,
		Shield:   f.shield,
		NoShield: f.noShield,
	}

	if len(f.weapons) == 0 {
		return req, fmt.Errorf("at least one --weapon is required")
	}
	for _, spec := range f.weapons {
		sel, err := parseWeaponSpec(spec)
		if err != nil {
			return req, err
		}
		req.Weapons = append(req.Weapons, sel)
	}

	if scenarioFlagsChanged(cmd) {
		s := engine.DefaultScenario()
		applyIfSet(&s.MountAccuracy, f.mountAccuracy)
		applyIfSet(&s.ScenarioAccuracy, f.scenarioAccuracy)
		applyIfSet(&s.TimeOnTarget, f.timeOnTarget)
		applyIfSet(&s.FireMode, f.fireMode)
		applyIfSet(&s.PowerMultiplier, f.powerMultiplier)
		req.Scenario = &s
	}
	if zoneFlagsChanged(cmd) {
		z := engine.DefaultZoneWeights()
		applyIfSet(&z.Hull, f.zoneHull)
		applyIfSet(&z.Armor, f.zoneArmor)
		applyIfSet(&z.Thruster, f.zoneThruster)
		applyIfSet(&z.Component, f.zoneComponent)
		req.Zone = &z
	}

	return req, nil
}

func scenarioFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"mount-accuracy", "scenario-accuracy", "time-on-target", "fire-mode", "power"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func zoneFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"zone-hull", "zone-armor", "zone-thruster", "zone-component"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func applyIfSet(dst *float64, v float64) {
	if v >= 0 {
		*dst = v
	}
}

// parseWeaponSpec splits "Display Name:count". The display name itself
// never contains a colon, so the last separator wins.
func parseWeaponSpec(spec string) (service.WeaponSelection, error) {
	sel := service.WeaponSelection{Name: spec, Count: 1}

	if idx := strings.LastIndex(spec, ":"); idx > 0 {
		count, err := strconv.Atoi(spec[idx+1:])
		if err != nil {
			return sel, fmt.Errorf("invalid weapon spec %q, want \"Name\" or \"Name:count\"", spec)
		}
		if count < 1 {
			return sel, fmt.Errorf("weapon count in %q must be at least 1", spec)
		}
		sel.Name = spec[:idx]
		sel.Count = count
	}

	if sel.Name == "" {
		return sel, fmt.Errorf("empty weapon name in %q", spec)
	}
	return sel, nil
}

func fmtSeconds(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2fs", v)
}

func printTTK(resp *service.ComputeResponse) {
	r := resp.Result

	fmt.Printf("Target: %s\n", resp.Target)
	if resp.Shield != "" {
		fmt.Printf("Shield: %s\n", resp.Shield)
	}
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PHASE\tTIME")
	fmt.Fprintf(tw, "Shields\t%s\n", fmtSeconds(r.ShieldTime))
	fmt.Fprintf(tw, "Armor\t%s\n", fmtSeconds(r.ArmorTime))
	fmt.Fprintf(tw, "Hull\t%s\n", fmtSeconds(r.HullTime))
	fmt.Fprintf(tw, "Total\t%s\n", fmtSeconds(r.TotalTTK))
	tw.Flush()

	fmt.Println()
	tw = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DPS\tVALUE")
	fmt.Fprintf(tw, "Effective\t%.1f\n", r.EffectiveDPS)
	fmt.Fprintf(tw, "vs Shields\t%.1f\n", r.ShieldDPS)
	fmt.Fprintf(tw, "Passthrough\t%.1f\n", r.PassthroughDPS)
	fmt.Fprintf(tw, "Physical\t%.1f\n", r.DamageBreakdown.Physical)
	fmt.Fprintf(tw, "Energy\t%.1f\n", r.DamageBreakdown.Energy)
	fmt.Fprintf(tw, "Distortion\t%.1f\n", r.DamageBreakdown.Distortion)
	tw.Flush()

	if r.ShieldFailoverPhases > 0 {
		fmt.Printf("\nShield failover phases: %d\n", r.ShieldFailoverPhases)
	}
	if r.ArmorDamageDuringShields > 0 {
		fmt.Printf("Armor eroded during shield phase: %.0f HP\n", r.ArmorDamageDuringShields)
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
