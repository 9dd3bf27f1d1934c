package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CapCeph/ship-lens/internal/model"
	"github.com/CapCeph/ship-lens/internal/service"
)

func newPresetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved fleet presets",
	}

	var fromFile string
	save := &cobra.Command{
		Use:   "save [json]",
		Short: "Save or update a preset from a JSON document with an \"id\" field",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case fromFile != "":
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("reading preset file: %w", err)
				}
				raw = string(data)
			case len(args) == 1:
				raw = args[0]
			default:
				return fmt.Errorf("pass the preset JSON as an argument or via --file")
			}

			result, err := a.dispatch(service.OpPresetSave, raw)
			if err != nil {
				return err
			}
			preset := result.(*model.FleetPreset)
			fmt.Printf("Saved preset %q\n", preset.PresetID)
			return nil
		},
	}
	save.Flags().StringVarP(&fromFile, "file", "f", "", "read the preset JSON from a file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.dispatch(service.OpPresetList)
			if err != nil {
				return err
			}
			presets := result.([]model.FleetPreset)
			if len(presets) == 0 {
				fmt.Println("No presets saved.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, p := range presets {
				fmt.Fprintf(tw, "%s\t%s\n", p.PresetID, p.Name)
			}
			tw.Flush()
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one preset as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.dispatch(service.OpPresetGet, args[0])
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.dispatch(service.OpPresetDelete, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted preset %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(save, list, get, del)
	return cmd
}
