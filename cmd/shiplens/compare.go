package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CapCeph/ship-lens/internal/worker"
)

func newCompareCmd(a *app) *cobra.Command {
	var f ttkFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank every catalog ship by time to kill for a loadout",
		Example: `  shiplens compare -w "CF-337 Panther:4"
  shiplens compare -w "Scorpion GT-215:2" --no-shield --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildComputeRequest(cmd, "", f)
			if err != nil {
				return err
			}

			raw, err := json.Marshal(req)
			if err != nil {
				return err
			}
			result, err := a.dispatch(worker.OpCompareAll, string(raw))
			if err != nil {
				return err
			}

			rows := result.([]worker.Row)
			if limit > 0 && limit < len(rows) {
				rows = rows[:limit]
			}
			if f.asJSON {
				return printJSON(rows)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TARGET\tSHIELD\tSHIELDS\tTOTAL")
			for _, row := range rows {
				if row.Err != "" {
					fmt.Fprintf(tw, "%s\t-\t-\t(%s)\n", row.Target, row.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					row.Target, row.Shield, fmtSeconds(row.ShieldTime), fmtSeconds(row.TotalTTK))
			}
			tw.Flush()
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&f.weapons, "weapon", "w", nil, `weapon as "Display Name" or "Display Name:count" (repeatable)`)
	cmd.Flags().StringVar(&f.shield, "shield", "", "force one shield for every target instead of each ship's stock shield")
	cmd.Flags().BoolVar(&f.noShield, "no-shield", false, "skip the shield phase entirely")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the comparison as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the first N rows")

	return cmd
}
