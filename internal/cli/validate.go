package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/loom-lang/loomc/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Root   *RootOptions
	EnvDir string
}

// ValidatedFunc is one entry in the validate command's JSON output.
type ValidatedFunc struct {
	Name    string   `json:"name"`
	Outputs []string `json:"outputs"`
}

// NewValidateCommand creates the validate command: compile the function
// environment and list what it declares.
func NewValidateCommand(root *RootOptions) *cobra.Command {
	opts := &ValidateOptions{Root: root}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compile and list the function environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.EnvDir, "env", "", "directory of CUE function declarations (required)")
	_ = cmd.MarkFlagRequired("env")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions) error {
	environment, err := LoadEnv(opts.EnvDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading function environment", err)
	}

	names := make([]string, 0, len(environment))
	for name := range environment {
		names = append(names, name)
	}
	sort.Strings(names)

	funcs := make([]ValidatedFunc, 0, len(names))
	for _, name := range names {
		f := environment[name]
		vf := ValidatedFunc{Name: name, Outputs: []string{}}
		for _, out := range f.Outputs {
			desc := out.Name
			for _, e := range out.Extents {
				desc += fmt.Sprintf("[%s]", exprText(e))
			}
			vf.Outputs = append(vf.Outputs, desc)
		}
		funcs = append(funcs, vf)
	}

	if opts.Root.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(funcs)
	}

	for _, vf := range funcs {
		if len(vf.Outputs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no outputs\n", vf.Name)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", vf.Name, vf.Outputs)
	}
	return nil
}

func exprText(e ir.Expr) string {
	switch v := e.(type) {
	case *ir.IntImm:
		return fmt.Sprintf("%d", v.Value)
	case *ir.Variable:
		return v.Name
	default:
		return "?"
	}
}
