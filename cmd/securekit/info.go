package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kbukum/securekit/component"
	"github.com/kbukum/securekit/version"
)

func newRandomCmd(a *app) *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:         "random",
		Short:       "Print a random secret",
		Args:        cobra.NoArgs,
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.secure.RandomString(length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 32, "number of characters")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "describe",
		Short:       "Show algorithms, parameters and component health",
		Args:        cobra.NoArgs,
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptions := a.registry.Describe()
			health := a.registry.HealthAll(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"components": descriptions, "health": health})
			}

			for i, d := range descriptions {
				fmt.Fprintf(out, "%s %s\n", color.CyanString(d.Name), healthTag(health[i]))
				for _, detail := range d.Details {
					fmt.Fprintln(out, "  "+detail)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func healthTag(h component.Health) string {
	tag := "[" + string(h.Status) + "]"
	if h.Message != "" {
		tag = "[" + string(h.Status) + ": " + h.Message + "]"
	}
	switch h.Status {
	case component.StatusHealthy:
		return color.GreenString(tag)
	case component.StatusDegraded:
		return color.YellowString(tag)
	default:
		return color.RedString(tag)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
		},
	}
}
