package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/padenot/socorro-cli/internal/crash"
	"github.com/padenot/socorro-cli/internal/output"
)

var crashFlags struct {
	depth      int
	full       bool
	allThreads bool
	modules    bool
}

var crashCmd = &cobra.Command{
	Use:   "crash <crash-id|url>",
	Short: "Show a processed crash report",
	Long: `Fetch a processed crash by ID, or by its crash-stats report URL, and print
a summary: signature, crash reason, platform and the crashing thread's stack.`,
	Example: `  socorro-cli crash 247653e8-7a18-4836-97d1-42a720260120
  socorro-cli crash https://crash-stats.mozilla.org/report/index/247653e8-7a18-4836-97d1-42a720260120 --all-threads
  socorro-cli crash 247653e8-7a18-4836-97d1-42a720260120 --full > crash.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCrash,
}

func init() {
	f := crashCmd.Flags()
	f.IntVar(&crashFlags.depth, "depth", defaultDepth, "Maximum frames per stack")
	f.BoolVar(&crashFlags.full, "full", false, "Output full crash data without omissions (forces JSON format)")
	f.BoolVar(&crashFlags.allThreads, "all-threads", false, "Show stacks from all threads (useful for diagnosing deadlocks)")
	f.BoolVar(&crashFlags.modules, "modules", false, "Show the loaded module list")
}

func runCrash(cmd *cobra.Command, args []string) error {
	depth := current.depth
	if cmd.Flags().Changed("depth") {
		depth = crashFlags.depth
	}
	if depth < 0 {
		return fmt.Errorf("--depth must be non-negative, got %d", depth)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	rec, err := client.GetCrash(cmd.Context(), crash.ExtractCrashID(args[0]))
	if err != nil {
		return err
	}

	var out string
	if crashFlags.full || current.format == output.JSON {
		out, err = output.CrashJSON(rec)
	} else {
		var opts []crash.SummaryOption
		if crashFlags.modules {
			opts = append(opts, crash.WithModules())
		}
		summary := rec.Summarize(depth, crashFlags.allThreads, opts...)
		out, err = output.Crash(current.format, &summary)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
