package keycap

import (
	"fmt"
	"strings"

	"github.com/kwhite/capmill/pkg/config"
	"github.com/kwhite/capmill/pkg/kernel"
)

// Extrusion depths. Tertiary legends sit off-center where curved cap
// tops fall away, so they reach deeper to stay connected to the body.
const (
	legendDepth         = 4
	tertiaryLegendDepth = 6
)

// legendSolid builds the union of the entry's text extrusions, placed
// on the legend plane at planeZ. With both primary and secondary set
// they stack along Y as a group; a single legend sits centered.
func (b *Builder) legendSolid(entry config.LegendEntry, planeZ float64) (kernel.Solid, error) {
	s := b.Settings
	primaryFont := fallback(entry.PrimaryFont, s.Font)
	secondaryFont := fallback(entry.SecondaryFont, primaryFont)
	tertiaryFont := fallback(entry.TertiaryFont, s.Font)

	var solid kernel.Solid

	switch {
	case entry.Primary != "" && entry.Secondary != "":
		totalHeight := s.PrimaryFontSize + s.LegendGap + s.SecondaryFontSize
		primaryOffset := -totalHeight/2 + s.PrimaryFontSize/2 + s.VerticalShift
		secondaryOffset := totalHeight/2 - s.SecondaryFontSize/2 + s.VerticalShift

		primary, err := b.text(entry.Primary, primaryFont, s.PrimaryFontSize, legendDepth,
			0, primaryOffset, planeZ)
		if err != nil {
			return nil, err
		}
		secondary, err := b.text(entry.Secondary, secondaryFont, s.SecondaryFontSize, legendDepth,
			0, secondaryOffset, planeZ)
		if err != nil {
			return nil, err
		}
		solid = b.Kernel.Union(primary, secondary)

	case entry.Primary != "":
		primary, err := b.text(entry.Primary, primaryFont, s.PrimaryFontSize, legendDepth,
			0, 0, planeZ)
		if err != nil {
			return nil, err
		}
		solid = primary

	case entry.Secondary != "":
		secondary, err := b.text(entry.Secondary, secondaryFont, s.SecondaryFontSize, legendDepth,
			0, 0, planeZ)
		if err != nil {
			return nil, err
		}
		solid = secondary
	}

	if entry.Tertiary != "" && solid != nil {
		tertiary, err := b.text(entry.Tertiary, tertiaryFont, s.TertiaryFontSize, tertiaryLegendDepth,
			s.TertiaryXOffset, 0, planeZ)
		if err != nil {
			return nil, err
		}
		solid = b.Kernel.Union(solid, tertiary)
	}
	return solid, nil
}

func (b *Builder) text(text, font string, size, depth, x, y, z float64) (kernel.Solid, error) {
	solid, err := b.Text.Text(text, font, size, depth)
	if err != nil {
		return nil, fmt.Errorf("legend %q: %w", text, err)
	}
	return b.Kernel.Translate(solid, x, y, z), nil
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

// LegendDesc names the entry for logs: its texts joined with "+".
// An entry with neither primary nor secondary text yields "" even if
// a tertiary is set, and such entries are skipped.
func LegendDesc(entry config.LegendEntry) string {
	switch {
	case entry.Primary != "" && entry.Secondary != "" && entry.Tertiary != "":
		return entry.Primary + "+" + entry.Secondary + "+" + entry.Tertiary
	case entry.Primary != "" && entry.Secondary != "":
		return entry.Primary + "+" + entry.Secondary
	case entry.Primary != "" && entry.Tertiary != "":
		return entry.Primary + "+" + entry.Tertiary
	case entry.Primary != "":
		return entry.Primary
	case entry.Secondary != "":
		return entry.Secondary
	}
	return ""
}

// filenameMap replaces legend characters that are unsafe in filenames.
var filenameMap = map[string]string{
	"<":  "less",
	">":  "greater",
	"/":  "slash",
	":":  "colon",
	"\\": "backslash",
	"|":  "pipe",
	"?":  "question",
	"*":  "asterisk",
	`"`:  "quote",
}

// Filename builds the output filename for a keycap, like
// "K_A_1_row2.3mf" for primary "A", secondary "1" on row "row2".
func Filename(entry config.LegendEntry, row string) string {
	var parts []string
	for _, text := range []string{entry.Primary, entry.Secondary, entry.Tertiary} {
		if text == "" {
			continue
		}
		if safe, ok := filenameMap[text]; ok {
			text = safe
		}
		parts = append(parts, text)
	}
	return fmt.Sprintf("K_%s_%s.3mf", strings.Join(parts, "_"), row)
}
