// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dialectic-engine/internal/protocol"
)

var protocolsCmd = &cobra.Command{
	Use:   "protocols",
	Short: "List registered protocols and their challenge catalogues",
	RunE:  runProtocols,
}

func runProtocols(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	for _, spec := range protocol.All() {
		fmt.Fprintf(os.Stdout, "%s — %s (subject: %s)\n", spec.ID, spec.Name, spec.SubjectKind)
		if !verbose {
			continue
		}
		for _, sub := range spec.Subtypes {
			var traits []string
			if sub.Irrebuttable {
				traits = append(traits, "irrebuttable")
			}
			if sub.Counterexample {
				traits = append(traits, "requires minimality")
			}
			if sub.Composition {
				traits = append(traits, "references prior outcome")
			}
			trait := ""
			if len(traits) > 0 {
				trait = " [" + strings.Join(traits, ", ") + "]"
			}
			rebuttals := "none"
			if len(sub.AllowedRebuttals) > 0 {
				kinds := make([]string, 0, len(sub.AllowedRebuttals))
				for _, k := range sub.AllowedRebuttals {
					kinds = append(kinds, string(k))
				}
				rebuttals = strings.Join(kinds, ", ")
			}
			fmt.Fprintf(os.Stdout, "  %-22s %s%s\n", sub.Subtype, sub.Description, trait)
			fmt.Fprintf(os.Stdout, "  %-22s rebuttals: %s; eliminates as %q\n", "", rebuttals, sub.Reason)
		}
		fmt.Fprintf(os.Stdout, "  verdicts: %s | %s | %s | %s\n\n",
			spec.Verdicts.Adopted, spec.Verdicts.Rejected,
			spec.Verdicts.Unresolved, spec.Verdicts.Abandoned)
	}
	return nil
}

func init() {
	protocolsCmd.Flags().Bool("verbose", false, "include each protocol's full challenge catalogue")

	rootCmd.AddCommand(protocolsCmd)
}
