package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/loom-lang/loomc/internal/cache"
	"github.com/loom-lang/loomc/internal/ir"
	"github.com/loom-lang/loomc/internal/lower"
	"github.com/loom-lang/loomc/internal/program"
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	Root        *RootOptions
	ProgramPath string
	EnvDir      string
	CachePath   string
}

// LowerResult is the JSON output of the lower command.
type LowerResult struct {
	BuildID   string `json:"build_id"`
	InputHash string `json:"input_hash"`
	CacheHit  bool   `json:"cache_hit"`
	Output    string `json:"output"`
}

// NewLowerCommand creates the lower command: run the atomic-mutex pipeline
// over a program and print the lowered tree.
func NewLowerCommand(root *RootOptions) *cobra.Command {
	opts := &LowerOptions{Root: root}

	cmd := &cobra.Command{
		Use:   "lower",
		Short: "Lower a program's atomic regions to mutex arrays and locks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ProgramPath, "program", "", "YAML program file (required)")
	cmd.Flags().StringVar(&opts.EnvDir, "env", "", "directory of CUE function declarations (required)")
	cmd.Flags().StringVar(&opts.CachePath, "cache", "", "optional SQLite lowering cache")
	_ = cmd.MarkFlagRequired("program")
	_ = cmd.MarkFlagRequired("env")

	return cmd
}

func runLower(cmd *cobra.Command, opts *LowerOptions) error {
	data, err := os.ReadFile(opts.ProgramPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading program", err)
	}
	stmt, err := program.Decode(data)
	if err != nil {
		return WrapExitError(ExitCommandError, "decoding program", err)
	}

	environment, err := LoadEnv(opts.EnvDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading function environment", err)
	}

	result := LowerResult{
		BuildID:   uuid.NewString(),
		InputHash: ir.Hash(stmt),
	}

	var c *cache.Cache
	if opts.CachePath != "" {
		c, err = cache.Open(opts.CachePath)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening cache", err)
		}
		defer c.Close()

		output, hit, err := c.Get(cmd.Context(), result.InputHash)
		if err != nil {
			return WrapExitError(ExitCommandError, "reading cache", err)
		}
		if hit {
			result.CacheHit = true
			result.Output = output
			return printLowerResult(cmd, opts, result)
		}
	}

	lowered, err := lower.AddAtomicMutex(stmt, environment)
	if err != nil {
		return WrapExitError(ExitFailure, "lowering failed", err)
	}
	result.Output = ir.Print(lowered)

	if c != nil {
		if err := c.Put(cmd.Context(), result.InputHash, result.Output); err != nil {
			return WrapExitError(ExitCommandError, "writing cache", err)
		}
	}

	return printLowerResult(cmd, opts, result)
}

func printLowerResult(cmd *cobra.Command, opts *LowerOptions, result LowerResult) error {
	if opts.Root.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if opts.Root.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "build %s input %s cache_hit=%v\n",
			result.BuildID, result.InputHash, result.CacheHit)
	}
	fmt.Fprint(cmd.OutOrStdout(), result.Output)
	return nil
}
