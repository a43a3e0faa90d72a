// Command brushgen writes the WGSL module of every brush permutation and
// custom effect named in a manifest, optionally compiled to SPIR-V.
//
//	brushgen -manifest brushes.toml
//	brushgen -all -out shaders -spirv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/effect"
	"github.com/gogpu/brush/internal/manifest"
	"github.com/gogpu/brush/internal/parallel"
	"github.com/gogpu/brush/wgsl"
)

var errUsage = errors.New("brushgen: one of -manifest or -all is required")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// job is one module to write.
type job struct {
	name string
	gen  func() (string, error)
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("brushgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		manifestPath = fs.String("manifest", "", "TOML manifest naming the permutations to emit")
		all          = fs.Bool("all", false, "emit every built-in permutation and effect")
		out          = fs.String("out", "", "output directory (default: the manifest's out, or .)")
		spirv        = fs.Bool("spirv", false, "also write compiled .spv modules")
		verbose      = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" && !*all {
		fs.Usage()
		return errUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	brush.SetLogger(logger)
	defer brush.SetLogger(nil)

	var (
		jobs    []job
		outDir  = "."
		compile = *spirv
	)
	if *manifestPath != "" {
		m, err := manifest.Load(*manifestPath)
		if err != nil {
			return err
		}
		outDir = m.Out
		compile = compile || m.SPIRV
		jobs = append(jobs, manifestJobs(m)...)
	}
	if *all {
		jobs = append(jobs, allJobs()...)
	}
	if *out != "" {
		outDir = *out
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("brushgen: %w", err)
	}

	pool := parallel.NewPool(0)
	defer pool.Close()

	var (
		mu   sync.Mutex
		errs []error
	)
	runErr := pool.Run(ctx, len(jobs), func(i int) {
		if err := write(outDir, jobs[i], compile); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	})
	if err := errors.Join(append(errs, runErr)...); err != nil {
		return err
	}
	logger.Info("brushgen: done", "modules", len(jobs), "out", outDir, "spirv", compile)
	return nil
}

func manifestJobs(m *manifest.Manifest) []job {
	jobs := make([]job, 0, len(m.Brushes)+len(m.Effects))
	for _, b := range m.Brushes {
		opts := m.WGSLOptions()
		if b.Custom != "" {
			opts = append(opts, wgsl.WithCustomPaint(b.Custom))
		}
		jobs = append(jobs, job{
			name: b.Name,
			gen:  func() (string, error) { return wgsl.Brush(b.Selector, opts...) },
		})
	}
	for _, def := range m.Effects {
		jobs = append(jobs, effectJob(def))
	}
	return jobs
}

func allJobs() []job {
	var jobs []job
	for _, sel := range brush.Selectors() {
		if sel.Wrap == brush.WrapCustom {
			continue
		}
		jobs = append(jobs, job{
			name: sel.Name(),
			gen:  func() (string, error) { return wgsl.Brush(sel) },
		})
	}
	for _, def := range effect.Builtins() {
		jobs = append(jobs, effectJob(def))
	}
	return jobs
}

func effectJob(def effect.Definition) job {
	return job{
		name: "effect_" + def.Name,
		gen:  func() (string, error) { return wgsl.Effect(def) },
	}
}

func write(dir string, j job, compile bool) error {
	src, err := j.gen()
	if err != nil {
		return fmt.Errorf("brushgen: %s: %w", j.name, err)
	}
	path := filepath.Join(dir, j.name+".wgsl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("brushgen: %w", err)
	}
	brush.Logger().Debug("brushgen: wrote", "path", path)

	if !compile {
		return nil
	}
	words, err := wgsl.Compile(src)
	if err != nil {
		return fmt.Errorf("brushgen: %s: %w", j.name, err)
	}
	path = filepath.Join(dir, j.name+".spv")
	if err := os.WriteFile(path, wgsl.Bytes(words), 0o644); err != nil {
		return fmt.Errorf("brushgen: %w", err)
	}
	brush.Logger().Debug("brushgen: wrote", "path", path, "words", len(words))
	return nil
}
