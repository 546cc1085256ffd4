// Command capmill generates 3D-printable keycap files from a TOML
// configuration: for every legend entry it builds the cap body, legend
// inlays, and switch stem, meshes and repairs them, and writes one 3MF
// file per keycap.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kwhite/capmill/pkg/config"
	"github.com/kwhite/capmill/pkg/export"
	"github.com/kwhite/capmill/pkg/keycap"
	"github.com/kwhite/capmill/pkg/kernel"
	"github.com/kwhite/capmill/pkg/kernel/manifold"
	"github.com/kwhite/capmill/pkg/kernel/sdfx"
	"github.com/kwhite/capmill/pkg/pipeline"
	"github.com/kwhite/capmill/pkg/repair"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the configuration file")
	rows := flag.String("rows", "", "comma-separated row filter, empty for all rows")
	outDir := flag.String("out", "", "output directory, overriding the configured one")
	writeSTL := flag.Bool("stl", false, "also write one debug STL per part")
	backend := flag.String("kernel", "sdfx", "geometry kernel backend: sdfx or manifold")
	flag.Parse()

	if err := run(*configPath, *rows, *outDir, *writeSTL, *backend); err != nil {
		log.Fatal(err)
	}
}

func newKernel(backend string) (kernel.Kernel, error) {
	switch backend {
	case "sdfx":
		return sdfx.New(), nil
	case "manifold":
		return manifold.New()
	default:
		return nil, fmt.Errorf("unknown kernel backend %q", backend)
	}
}

func run(configPath, rows, outDir string, writeSTL bool, backend string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	k, err := newKernel(backend)
	if err != nil {
		return err
	}
	text, ok := k.(kernel.TextKernel)
	if !ok {
		return fmt.Errorf("kernel backend %q cannot render legend text", backend)
	}

	if outDir == "" {
		outDir = cfg.Settings.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	only := rowFilter(rows)
	builder := &keycap.Builder{Kernel: k, Text: text, Settings: cfg.Settings}
	opts := pipeline.Options{Tolerance: cfg.Settings.Tolerance}
	ctx := context.Background()

	rowNames := make([]string, 0, len(cfg.Legends))
	for row := range cfg.Legends {
		rowNames = append(rowNames, row)
	}
	sort.Strings(rowNames)

	var failed int
	for _, row := range rowNames {
		if only != nil && !only[row] {
			log.Printf("skipping %s (row filter)", row)
			continue
		}
		log.Printf("processing %s", row)
		prof := cfg.Profiles[row]

		for _, entry := range cfg.Legends[row] {
			desc := keycap.LegendDesc(entry)
			if desc == "" {
				log.Printf("  skipping entry: no legend specified")
				continue
			}
			if entry.MirrorX {
				desc += " (mirrored)"
			}
			log.Printf("  building keycap %s", desc)

			if err := buildOne(ctx, builder, k, opts, row, prof, entry, outDir, writeSTL); err != nil {
				log.Printf("  ERROR: %s: %v", desc, err)
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d keycap(s) failed", failed)
	}
	return nil
}

func buildOne(ctx context.Context, builder *keycap.Builder, k kernel.Kernel, opts pipeline.Options,
	row string, prof config.Profile, entry config.LegendEntry, outDir string, writeSTL bool) error {

	parts, err := builder.Build(row, prof, entry)
	if err != nil {
		return err
	}

	results := pipeline.Run(ctx, k, parts, opts)

	meshes := make([]*kernel.Mesh, 0, len(results))
	for _, res := range results {
		logDiagnostics(res.Part.Name, res.Diagnostics)
		if res.Err != nil {
			return res.Err
		}
		meshes = append(meshes, res.Mesh)
	}

	path := filepath.Join(outDir, keycap.Filename(entry, row))
	if err := export.Write3MF(path, meshes); err != nil {
		return err
	}
	log.Printf("  wrote %s", path)

	if writeSTL {
		base := strings.TrimSuffix(path, ".3mf")
		for _, m := range meshes {
			stlPath := fmt.Sprintf("%s_%s.stl", base, m.Tag)
			if err := export.WriteSTL(stlPath, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func logDiagnostics(part string, diags []repair.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	log.Printf("    %s: repaired %d defect(s): %d skipped faces, %d degenerate triangles, %d open boundaries",
		part, len(diags),
		repair.Count(diags, repair.DiagSkippedFace),
		repair.Count(diags, repair.DiagDegenerateTriangle),
		repair.Count(diags, repair.DiagUnrepairedBoundary))
}

func rowFilter(rows string) map[string]bool {
	if rows == "" {
		return nil
	}
	only := make(map[string]bool)
	for _, row := range strings.Split(rows, ",") {
		if row = strings.TrimSpace(row); row != "" {
			only[row] = true
		}
	}
	return only
}
