package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/rocketsource-go/tools/dashgen/dashboards"
	"github.com/donaldgifford/rocketsource-go/tools/dashgen/rules"
	"github.com/donaldgifford/rocketsource-go/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Stdout, cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(w io.Writer, cfg Config, validateOnly bool) error {
	arts, result, err := generate(cfg)
	if err != nil {
		return err
	}

	for _, warn := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	if !result.Ok() {
		return fmt.Errorf("validation failed:\n  %s", strings.Join(result.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Fprintln(w, "validation passed")
		return nil
	}

	for _, a := range arts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(path, a.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Fprintf(w, "dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds every enabled artifact and validates its expressions.
func generate(cfg Config) ([]artifact, validate.Result, error) {
	var (
		arts   []artifact
		result validate.Result
		errs   []error
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, result, fmt.Errorf("building dashboard: %w", err)
		}
		res := validate.Dashboard(dash, KnownMetrics)
		result.Errors = append(result.Errors, res.Errors...)
		result.Warnings = append(result.Warnings, res.Warnings...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			errs = append(errs, fmt.Errorf("marshaling dashboard: %w", err))
		} else {
			arts = append(arts, artifact{
				path: filepath.Join("grafana", "data", dashboards.UID+".json"),
				data: append(data, '\n'),
			})
		}
	}

	if cfg.RulesEnabled {
		for _, pr := range []rules.PrometheusRule{rules.RecordingRules(), rules.AlertRules()} {
			res := validate.Rules(pr, KnownMetrics)
			result.Errors = append(result.Errors, res.Errors...)
			result.Warnings = append(result.Warnings, res.Warnings...)

			data, err := yaml.Marshal(pr)
			if err != nil {
				errs = append(errs, fmt.Errorf("marshaling %s: %w", pr.Metadata.Name, err))
				continue
			}
			arts = append(arts, artifact{
				path: filepath.Join("prometheus", pr.Metadata.Name+".yaml"),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	return arts, result, errors.Join(errs...)
}
