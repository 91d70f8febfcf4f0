package cmd

import (
	"context"
	"log/slog"

	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/generator"
)

// Generate renders Go bindings for one or more interface descriptions.
type Generate struct {
	Sources   []string `arg:"" name:"source" help:"Interface description files (YAML or JSON)" type:"existingfile"`
	OutDir    string   `help:"Output directory; one package directory is created per source" short:"o" default:"." env:"UNIFFI_BINDGEN_GO_OUT_DIR"`
	CrateRoot string   `help:"Directory holding uniffi.toml. Defaults to the directory of each source" env:"UNIFFI_BINDGEN_GO_CRATE_ROOT"`
	Bindings  string   `help:"Bindings config merged over uniffi.toml" name:"bindings-config" type:"existingfile"`
	NoFormat  bool     `help:"Skip the goimports pass over generated Go files" env:"UNIFFI_BINDGEN_GO_NO_FORMAT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Info("Starting binding generation", "sources", len(g.Sources), "out", g.OutDir)

	gen := generator.New(logger, generator.Options{
		Sources:        g.Sources,
		OutDir:         g.OutDir,
		CrateRoot:      g.CrateRoot,
		ConfigOverride: g.Bindings,
		NoFormat:       g.NoFormat,
	})
	out, err := gen.Generate(ctx)
	if err != nil {
		return err
	}

	logger.Info("Binding generation complete", "packages", len(out))
	return nil
}
