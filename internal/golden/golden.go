// Package golden runs fixture Loom programs end to end and compares the
// resulting root environment's rendered dump against a frozen expected
// file. The expected files are only ever read, never written by the
// harness. Fixtures are listed in a YAML manifest instead of found by a
// directory scan, so fixtures and their expected output are named
// explicitly rather than inferred from a file listing.
package golden

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/loomlang/loom/internal/eval"
	"github.com/loomlang/loom/internal/object"
	"github.com/loomlang/loom/internal/parser"
)

// Case names one fixture. Source and Expected are file names relative to
// the directory the manifest itself lives in.
type Case struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Expected string `yaml:"expected"`
}

// Manifest lists every golden case a suite should run.
type Manifest struct {
	Cases []Case `yaml:"cases"`
}

// LoadManifest reads and parses a manifest file at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Run parses and evaluates c's source file in a fresh root environment and
// returns the resulting environment dump alongside the frozen expected
// content, both file names resolved relative to dir.
func Run(dir string, c Case) (actual string, expected string, err error) {
	src, err := os.ReadFile(filepath.Join(dir, c.Source))
	if err != nil {
		return "", "", err
	}
	program, err := parser.Parse(string(src))
	if err != nil {
		return "", "", fmt.Errorf("%s: parse: %w", c.Name, err)
	}

	env := object.NewRootEnvironment()
	if _, err := eval.Eval(program, env); err != nil {
		return "", "", fmt.Errorf("%s: eval: %w", c.Name, err)
	}

	want, err := os.ReadFile(filepath.Join(dir, c.Expected))
	if err != nil {
		return "", "", err
	}
	return env.String(), string(want), nil
}
