// Package generator drives binding generation: it loads interface descriptions
// and their bindings config, renders the Go bindings and writes them to disk.
package generator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/ci"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/config"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/generator/golang"
)

// Options selects what to generate and where.
type Options struct {
	// Sources are interface description files, one generated package each.
	Sources []string
	// OutDir receives <package>/<namespace>/ for every source.
	OutDir string
	// CrateRoot holds uniffi.toml. Defaults to the directory of each source.
	CrateRoot string
	// ConfigOverride is merged over uniffi.toml.
	ConfigOverride string
	// NoFormat skips the formatting pass over the wrapper.
	NoFormat bool
}

// Generated lists the files written for one interface.
type Generated struct {
	Namespace string
	Wrapper   string
	Header    string
	CFile     string
}

type Generator struct {
	opts   Options
	logger *slog.Logger
}

func New(logger *slog.Logger, opts Options) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// Generate renders every source in order and stops at the first failure.
func (g *Generator) Generate(ctx context.Context) ([]Generated, error) {
	if len(g.opts.Sources) == 0 {
		return nil, errors.New("no interface description given")
	}
	var out []Generated
	for _, src := range g.opts.Sources {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		gen, err := g.generateOne(src)
		if err != nil {
			return out, errors.Wrapf(err, "generate bindings for %s", src)
		}
		out = append(out, gen)
	}
	return out, nil
}

func (g *Generator) generateOne(src string) (Generated, error) {
	g.logger.Debug("Loading interface description", "path", src)
	c, err := ci.Load(src)
	if err != nil {
		return Generated{}, err
	}

	crateRoot := g.opts.CrateRoot
	if crateRoot == "" {
		crateRoot = filepath.Dir(src)
	}
	cfg, err := config.Load(crateRoot, g.opts.ConfigOverride)
	if err != nil {
		return Generated{}, err
	}
	cfg.UpdateFromCI(c.Namespace)

	g.logger.Info("Generating bindings", "namespace", c.Namespace, "package", cfg.PackageName())
	b, err := golang.GenerateBindings(cfg, c)
	if err != nil {
		return Generated{}, err
	}

	dir := bindingsDir(g.opts.OutDir, cfg.PackageName(), c.Namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Generated{}, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	gen := Generated{
		Namespace: c.Namespace,
		Wrapper:   filepath.Join(dir, c.Namespace+".go"),
		Header:    filepath.Join(dir, cfg.HeaderFilename()),
		CFile:     filepath.Join(dir, cfg.CFilename()),
	}

	wrapper := []byte(b.Wrapper)
	if !g.opts.NoFormat {
		wrapper = g.format(gen.Wrapper, wrapper)
	}
	files := []struct {
		path string
		data []byte
	}{
		{gen.Wrapper, wrapper},
		{gen.Header, []byte(b.Header)},
		{gen.CFile, []byte(b.CFile)},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return Generated{}, errors.Wrapf(err, "failed to write %s", f.path)
		}
		g.logger.Info("Generated file", "path", f.path)
	}
	return gen, nil
}

// bindingsDir is where the files for namespace are written. Packages importing
// another component's types refer to it as <go_mod>/<package>/<namespace>, so the
// two must agree. Dotted package names nest.
func bindingsDir(outDir, pkg, namespace string) string {
	parts := append([]string{outDir}, strings.Split(pkg, ".")...)
	return filepath.Join(append(parts, namespace)...)
}

// format runs goimports over src. A failure leaves src unformatted since the
// bindings are still usable.
func (g *Generator) format(path string, src []byte) []byte {
	formatted, err := imports.Process(path, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		g.logger.Warn("Failed to format generated bindings", "path", path, "error", err)
		return src
	}
	return formatted
}
