package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CapCeph/ship-lens/internal/catalog"
	"github.com/CapCeph/ship-lens/internal/service"
	"github.com/CapCeph/ship-lens/pkg/core"
)

func newShipsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ships [name]",
		Short: "List known ships, or show one ship's profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				result, err := a.dispatch(service.OpGetShip, args[0])
				if err != nil {
					return err
				}
				printShip(result.(*core.TargetProfile))
				return nil
			}

			result, err := a.dispatch(service.OpListShips)
			if err != nil {
				return err
			}
			for _, name := range result.([]string) {
				fmt.Println(name)
			}
			return nil
		},
	}
	return cmd
}

func printShip(t *core.TargetProfile) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Ship\t%s\n", t.DisplayName)
	fmt.Fprintf(tw, "Hull HP\t%.0f\n", t.HullHP)
	fmt.Fprintf(tw, "Armor HP\t%.0f\n", t.ArmorHP)
	fmt.Fprintf(tw, "Thruster HP\t%d\n", t.ThrusterTotalHP)
	fmt.Fprintf(tw, "Component HP\t%.0f\n", t.ComponentTotalHP())
	fmt.Fprintf(tw, "Shields\t%dx S%d\n", t.ShieldCount, t.MaxShieldSize)
	fmt.Fprintf(tw, "Pilot weapons\t%d (%s)\n", t.PilotWeaponCount, t.PilotWeaponSizes)
	tw.Flush()
}

// sizeListCmd builds a listing subcommand with an optional size filter.
func sizeListCmd(a *app, use, short, op string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [size]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dispatchArgs []string
			if len(args) == 1 {
				if _, err := strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("size must be a number, got %q", args[0])
				}
				dispatchArgs = append(dispatchArgs, args[0])
			}

			result, err := a.dispatch(op, dispatchArgs...)
			if err != nil {
				return err
			}
			for _, name := range result.([]string) {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newWeaponsCmd(a *app) *cobra.Command {
	return sizeListCmd(a, "weapons", "List weapons, best sustained DPS first", service.OpListWeapons)
}

func newShieldsCmd(a *app) *cobra.Command {
	return sizeListCmd(a, "shields", "List shield generators, highest capacity first", service.OpListShields)
}

func newMissilesCmd(a *app) *cobra.Command {
	return sizeListCmd(a, "missiles", "List missiles, highest total damage first", service.OpListMissiles)
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.dispatch(service.OpStats)
			if err != nil {
				return err
			}
			stats := result.(catalog.Stats)

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Ships\t%d\n", stats.Ships)
			fmt.Fprintf(tw, "Weapons\t%d\n", stats.Weapons)
			fmt.Fprintf(tw, "Shields\t%d\n", stats.Shields)
			fmt.Fprintf(tw, "Missiles\t%d\n", stats.Missiles)
			fmt.Fprintf(tw, "Mounts\t%d\n", stats.Mounts)
			tw.Flush()
			return nil
		},
	}
}
