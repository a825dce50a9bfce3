// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dialectic-engine/internal/registry"
	"github.com/pdiddy/dialectic-engine/pkg/types"
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "Inspect the outcome registry (list, show, history, export)",
	Long: `Outcomes queries the append-only registry of finalized runs. Use
subcommands to list recent outcomes, show one run in full, trace a
subject's supersession history, or export for downstream components.`,
}

// --- list subcommand ---

var outcomesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded outcomes, newest first",
	RunE:  runOutcomesList,
}

func runOutcomesList(cmd *cobra.Command, args []string) error {
	store, err := registry.NewStore(settings().Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.List(context.Background(), queryOptsFromFlags(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No outcomes recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-10s  %-25s  %-20s  %s\n",
		"Run", "Protocol", "Subject", "Verdict", "Finalized")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range rows {
		subject := r.Subject
		if len(subject) > 25 {
			subject = subject[:22] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-10s  %-25s  %-20s  %s\n",
			r.RunID, r.Protocol, subject, r.Verdict, r.FinalizedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(os.Stdout, "\n%d outcomes\n", len(rows))
	return nil
}

// --- show subcommand ---

var outcomesShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one outcome in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutcomesShow,
}

func runOutcomesShow(cmd *cobra.Command, args []string) error {
	store, err := registry.NewStore(settings().Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// --- history subcommand ---

var outcomesHistoryCmd = &cobra.Command{
	Use:   "history [subject]",
	Short: "Trace a subject's supersession history, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runOutcomesHistory,
}

func runOutcomesHistory(cmd *cobra.Command, args []string) error {
	store, err := registry.NewStore(settings().Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.History(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Printf("No outcomes recorded for subject %q.\n", args[0])
		return nil
	}

	for i, out := range history {
		marker := " "
		if i == len(history)-1 {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s (%s)  revisions=%d\n",
			marker, out.FinalizedAt.Format("2006-01-02 15:04"),
			out.RunID, out.Verdict, out.Role, len(out.Revisions))
	}
	return nil
}

// --- export subcommand ---

var outcomesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export outcomes to YAML or JSON for downstream components",
	Long: `Export writes matching outcomes to state/index/export.yaml or
export.json. The log-projection and cross-run reconciliation components
consume these files; every outcome carries its full field set.`,
	RunE: runOutcomesExport,
}

func runOutcomesExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := registry.NewStore(settings().Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to state/index/export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to state/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) registry.QueryOptions {
	protocolID, _ := cmd.Flags().GetString("protocol")
	subject, _ := cmd.Flags().GetString("subject")
	role, _ := cmd.Flags().GetString("role")
	limit, _ := cmd.Flags().GetInt("limit")

	return registry.QueryOptions{
		Protocol:   protocolID,
		Subject:    subject,
		Role:       types.VerdictRole(role),
		MaxResults: limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{outcomesListCmd, outcomesExportCmd} {
		c.Flags().String("protocol", "", "filter by protocol id")
		c.Flags().String("subject", "", "filter by subject")
		c.Flags().String("role", "", "filter by verdict role: adopted, rejected, unresolved, abandoned")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
	}
	outcomesListCmd.Flags().Bool("json", false, "output as JSON")
	outcomesExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	outcomesCmd.AddCommand(outcomesListCmd)
	outcomesCmd.AddCommand(outcomesShowCmd)
	outcomesCmd.AddCommand(outcomesHistoryCmd)
	outcomesCmd.AddCommand(outcomesExportCmd)

	rootCmd.AddCommand(outcomesCmd)
}
