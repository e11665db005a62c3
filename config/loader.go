// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/bspgraph/ctxlog"
)

// fileRoot mirrors the job file; pointers mark optional values.
type fileRoot struct {
	Input   *string   `hcl:"input,optional"`
	Output  *string   `hcl:"output,optional"`
	Summary *string   `hcl:"summary,optional"`
	Wake    *[]string `hcl:"wake,optional"`
	Verify  *bool     `hcl:"verify,optional"`

	Run     *runBlock     `hcl:"run,block"`
	Store   *storeBlock   `hcl:"store,block"`
	Metrics *metricsBlock `hcl:"metrics,block"`
	Log     *logBlock     `hcl:"log,block"`
}

type runBlock struct {
	Workers      *int    `hcl:"workers,optional"`
	MaxRounds    *int    `hcl:"max_rounds,optional"`
	RoundTimeout *string `hcl:"round_timeout,optional"`
}

type storeBlock struct {
	Kind *string `hcl:"kind,optional"`
	Dir  *string `hcl:"dir,optional"`
}

type metricsBlock struct {
	Addr *string `hcl:"addr,optional"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// Loader decodes job files. The zero value evaluates with an empty environment
// and cpus = 1; NewLoader captures the real process values.
type Loader struct {
	Env  map[string]string
	CPUs int
}

// NewLoader returns a Loader bound to os.Environ and runtime.NumCPU.
func NewLoader() *Loader {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return &Loader{Env: env, CPUs: runtime.NumCPU()}
}

// Load reads and decodes path on top of DefaultJob.
func (l *Loader) Load(ctx context.Context, path string) (Job, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	return l.Parse(ctx, src, path)
}

// Parse decodes src (named filename in diagnostics) on top of DefaultJob and
// validates the result.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL job loader started.", "file", filename)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Job{}, fmt.Errorf("%w %s: %s", ErrParse, filename, diags.Error())
	}
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, l.evalContext(), &root); diags.HasErrors() {
		return Job{}, fmt.Errorf("%w %s: %s", ErrParse, filename, diags.Error())
	}

	job := DefaultJob()
	if err := root.apply(&job); err != nil {
		return Job{}, err
	}
	if err := job.Validate(); err != nil {
		return Job{}, err
	}
	logger.Debug("HCL job loaded.", "file", filename, "store", job.StoreKind, "workers", job.Workers)
	return job, nil
}

// evalContext exposes env and cpus to expressions.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := cty.MapValEmpty(cty.String)
	if len(l.Env) > 0 {
		vals := make(map[string]cty.Value, len(l.Env))
		for k, v := range l.Env {
			vals[k] = cty.StringVal(v)
		}
		env = cty.MapVal(vals)
	}
	cpus := l.CPUs
	if cpus < 1 {
		cpus = 1
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{
		"env":  env,
		"cpus": cty.NumberIntVal(int64(cpus)),
	}}
}

// apply copies every value present in the file onto job.
func (r *fileRoot) apply(job *Job) error {
	setString(&job.Input, r.Input)
	setString(&job.Output, r.Output)
	setString(&job.Summary, r.Summary)
	if r.Wake != nil {
		job.Wake = append([]string(nil), *r.Wake...)
	}
	if r.Verify != nil {
		job.Verify = *r.Verify
	}
	if r.Run != nil {
		if r.Run.Workers != nil {
			job.Workers = *r.Run.Workers
		}
		if r.Run.MaxRounds != nil {
			job.MaxRounds = *r.Run.MaxRounds
		}
		if r.Run.RoundTimeout != nil {
			d, err := time.ParseDuration(*r.Run.RoundTimeout)
			if err != nil {
				return fmt.Errorf("%w: round_timeout: %v", ErrInvalid, err)
			}
			job.RoundTimeout = d
		}
	}
	if r.Store != nil {
		setString(&job.StoreKind, r.Store.Kind)
		setString(&job.StoreDir, r.Store.Dir)
	}
	if r.Metrics != nil {
		setString(&job.MetricsAddr, r.Metrics.Addr)
	}
	if r.Log != nil {
		setString(&job.LogLevel, r.Log.Level)
		setString(&job.LogFormat, r.Log.Format)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
