// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dialectic-engine/internal/protocol"
	"github.com/pdiddy/dialectic-engine/internal/registry"
	"github.com/pdiddy/dialectic-engine/internal/runfile"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a run document and record its outcome",
	Long: `Run loads a YAML run document, drives it through the elimination
engine — derivation, the revision loop, selection, the obligation gate —
and appends the terminal outcome to the registry.

A run blocked at the obligation gate is reported and left unrecorded; fix
the obligations or the finalist and run the document again.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	doc, err := runfile.Load(args[0])
	if err != nil {
		return err
	}

	spec, ok := protocol.Get(doc.Protocol)
	if !ok {
		return fmt.Errorf("unknown protocol %q: see \"dialectic-engine protocols\"", doc.Protocol)
	}

	cfg := settings()
	store, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	trace, err := runfile.Execute(ctx, doc, spec, cfg.Engine, store)
	if err != nil {
		return err
	}

	if trace.Outcome != nil && !dryRun {
		if err := store.Save(ctx, trace.Outcome); err != nil {
			return err
		}
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(trace)
	}
	printTrace(trace, dryRun)
	return nil
}

func printTrace(trace *runfile.Trace, dryRun bool) {
	fmt.Printf("run %s\n", trace.RunID)

	for i, d := range trace.Derivations {
		fmt.Printf("  version %d: %d eliminated, %d survived\n",
			i+1, len(d.Eliminated), len(d.Survivors))
		for _, e := range d.Eliminated {
			fmt.Printf("    - %s eliminated (%s, cause %s)\n", e.CandidateID, e.Reason, e.CauseID)
		}
	}
	for _, rev := range trace.Revisions {
		fmt.Printf("  revision %d: %s -> %s\n", rev.Revision, rev.Diagnosis, rev.Resolution)
	}
	if trace.Selection != nil {
		fmt.Printf("  selection: %s by %s\n", trace.Selection.WinnerID, trace.Selection.Criterion)
	}
	if trace.Gate != nil && !trace.Gate.Passed {
		fmt.Printf("  gate: BLOCKED on %s\n", strings.Join(trace.Gate.Unsatisfied, ", "))
		fmt.Println("  run remains open at the obligation gate; nothing recorded")
		return
	}
	if trace.Gate != nil {
		fmt.Println("  gate: passed")
	}

	out := trace.Outcome
	if out == nil {
		return
	}
	fmt.Printf("  verdict: %s (%s)\n", out.Verdict, out.Role)
	if out.Winner != nil {
		fmt.Printf("  winner: %s\n", out.Winner.ID)
	}
	for _, lim := range out.Limitations {
		fmt.Printf("  limitation: %s\n", lim)
	}
	if dryRun {
		fmt.Println("  (dry run; outcome not recorded)")
	} else {
		fmt.Println("  outcome recorded")
	}
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "execute without recording the outcome")
	runCmd.Flags().Bool("json", false, "output the full execution trace as JSON")

	rootCmd.AddCommand(runCmd)
}
