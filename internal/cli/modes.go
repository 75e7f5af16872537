package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

func modesCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "modes",
		Short: "List the simulated vision impairments and their filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printModes(cmdOut(cmd), domain.Profiles(), format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printModes(w io.Writer, profiles []domain.ImpairmentProfile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	case "pretty", "":
		for i, p := range profiles {
			filter := p.Filter.String()
			if p.Filter.IsEmpty() {
				filter = "none"
			}
			fmt.Fprintf(w, "%d. %-14s %s\n", i+1, p.Mode, p.Label)
			fmt.Fprintf(w, "   filter:   %s\n", filter)
			if p.Advisory != "" {
				fmt.Fprintf(w, "   advisory: %s\n", p.Advisory)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
