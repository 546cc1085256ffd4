// Package keycap builds the solid parts of one keycap: the cap body
// with legends cut out, the legend inlays themselves, and the Kailh
// Choc switch stem. It only assembles solids; meshing happens in the
// pipeline package.
package keycap

import (
	"errors"
	"fmt"

	"github.com/kwhite/capmill/pkg/config"
	"github.com/kwhite/capmill/pkg/kernel"
	"github.com/kwhite/capmill/pkg/pipeline"
)

// ErrNoLegend reports a legend entry with every text slot empty.
// Blank caps are skipped rather than generated.
var ErrNoLegend = errors.New("keycap: entry has no legend text")

// Choc stem dimensions in millimeters. The stem is two posts whose
// outer sides are scooped by large-radius cylinders, matching the
// Kailh Choc socket.
const (
	stemPostWidth  = 1.3
	stemPostDepth  = 3
	stemPostHeight = 3.1
	stemScoopR     = 3.4
	stemScoopX     = 3.9
	stemPostX      = 2.85
)

// legendPlaneInset is how far below the cap top the legend extrusions
// start, so they cut into the surface instead of sitting on it.
const legendPlaneInset = 0.4

// ChocStem builds the switch stem with its top face at z=0, extending
// downward. Callers position it under the cap's inner ceiling.
func ChocStem(k kernel.Kernel) kernel.Solid {
	post := k.Translate(k.Box(stemPostWidth, stemPostDepth, stemPostHeight),
		0, 0, -stemPostHeight/2)

	scoop := k.Translate(k.Cylinder(stemPostHeight, stemScoopR),
		0, 0, -stemPostHeight/2)
	post = k.Difference(post, k.Translate(scoop, stemScoopX, 0, 0))
	post = k.Difference(post, k.Translate(scoop, -stemScoopX, 0, 0))

	return k.Union(
		k.Translate(post, stemPostX, 0, 0),
		k.Translate(post, -stemPostX, 0, 0),
	)
}

// CapBody builds a hollow rounded cap for the profile, bottom rim at
// z=0. The cavity cuts through the bottom and leaves the top and side
// walls at the profile's wall thickness.
func CapBody(k kernel.Kernel, p config.Profile) kernel.Solid {
	shell := k.Translate(k.RoundedBox(p.Width, p.Depth, p.Height, p.Round),
		0, 0, p.Height/2)

	// The cavity extends one wall thickness below z=0 so the
	// subtraction never leaves a coincident face at the rim.
	cavity := k.Translate(k.Box(p.Width-2*p.Wall, p.Depth-2*p.Wall, p.Height),
		0, 0, p.Height/2-p.Wall)
	return k.Difference(shell, cavity)
}

// Builder turns profile and legend configuration into meshable parts.
type Builder struct {
	Kernel   kernel.Kernel
	Text     kernel.TextKernel
	Settings config.Settings
}

// Build assembles the parts of one keycap: the body with the legend
// text subtracted, the legend inlay (cap intersected with the text),
// and the stem unless the profile carries its own. Returns ErrNoLegend
// for an entry with no text at all.
func (b *Builder) Build(row string, prof config.Profile, entry config.LegendEntry) ([]pipeline.Part, error) {
	if LegendDesc(entry) == "" {
		return nil, fmt.Errorf("row %q: %w", row, ErrNoLegend)
	}

	k := b.Kernel
	capSolid := CapBody(k, prof)
	if prof.Rotation != 0 {
		capSolid = k.Rotate(capSolid, 0, 0, prof.Rotation)
	}
	if entry.MirrorX {
		capSolid = k.MirrorX(capSolid)
	}

	_, capMax := capSolid.BoundingBox()
	planeZ := capMax[2] - legendPlaneInset

	text, err := b.legendSolid(entry, planeZ)
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", row, err)
	}

	bodyQ := kernel.Quality{MeshCells: b.Settings.BodyCells}
	legendQ := kernel.Quality{MeshCells: b.Settings.LegendCells}

	parts := []pipeline.Part{
		{Name: "cap body", Tag: kernel.TagBody, Solid: k.Difference(capSolid, text), Quality: bodyQ},
		{Name: "legend", Tag: kernel.TagLegend, Solid: k.Intersection(capSolid, text), Quality: legendQ},
	}

	if !prof.HasStem {
		stem := k.Translate(ChocStem(k), 0, 0, prof.Height-prof.Wall)
		if entry.MirrorX {
			stem = k.MirrorX(stem)
		}
		parts = append(parts, pipeline.Part{
			Name: "stem", Tag: kernel.TagStem, Solid: stem, Quality: bodyQ,
		})
	}
	return parts, nil
}
