package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/loom-lang/loomc/internal/env"
)

// LoadEnv loads CUE declaration files from a directory and compiles every
// entry under "function" into the function environment.
//
// Declarations look like:
//
//	function: hist: {
//		outputs: [{name: "hist", extents: [64]}]
//	}
func LoadEnv(dir string) (env.Map, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("env directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("error accessing env directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("error scanning env directory: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	return compileEnv(value)
}

// compileEnv extracts the function environment from a built CUE value.
func compileEnv(value cue.Value) (env.Map, error) {
	environment := make(env.Map)

	functionsVal := value.LookupPath(cue.ParsePath("function"))
	if !functionsVal.Exists() {
		return nil, fmt.Errorf("no function declarations found")
	}

	iter, err := functionsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating functions: %w", err)
	}
	for iter.Next() {
		f, err := env.CompileFunc(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("function.%s: %w", iter.Label(), err)
		}
		environment[f.Name] = *f
	}

	if len(environment) == 0 {
		return nil, fmt.Errorf("no function declarations found")
	}
	return environment, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
