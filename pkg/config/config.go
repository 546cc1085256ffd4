// Package config loads the TOML file that drives a keycap batch:
// global legend settings, the keycap profiles to build, and the legend
// entries per profile row.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the global knobs shared by every generated cap.
type Settings struct {
	// Font is the path to the TTF used for legends unless an entry
	// overrides it.
	Font string `toml:"font"`

	PrimaryFontSize   float64 `toml:"primary_font_size"`
	SecondaryFontSize float64 `toml:"secondary_font_size"`
	TertiaryFontSize  float64 `toml:"tertiary_font_size"`

	// LegendGap spaces primary and secondary legends apart along Y,
	// VerticalShift moves the whole legend block, and TertiaryXOffset
	// places the tertiary legend off to the side.
	LegendGap       float64 `toml:"legend_gap"`
	VerticalShift   float64 `toml:"vertical_shift"`
	TertiaryXOffset float64 `toml:"tertiary_x_offset"`

	// Tolerance is the mesh repair vertex merge distance. Zero keeps
	// the repair package's default.
	Tolerance float64 `toml:"tolerance"`

	// Mesh resolution, in marching cubes cells per part kind. Legends
	// are small and detailed so they default finer than bodies.
	BodyCells   int `toml:"body_cells"`
	LegendCells int `toml:"legend_cells"`

	OutputDir string `toml:"output_dir"`
}

// Profile describes one keycap row shape in millimeters.
type Profile struct {
	Width  float64 `toml:"width"`
	Depth  float64 `toml:"depth"`
	Height float64 `toml:"height"`
	Round  float64 `toml:"round"`
	Wall   float64 `toml:"wall"`

	// Rotation turns the finished cap around Z, in degrees.
	Rotation float64 `toml:"rotation"`

	// HasStem marks profiles whose source shape already includes a
	// switch stem, so the generator must not add one.
	HasStem bool `toml:"has_stem"`
}

// LegendEntry is one keycap's legend text. Empty strings mean the
// slot is unused; an entry with all three slots empty produces a
// blank cap and is skipped.
type LegendEntry struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Tertiary  string `toml:"tertiary"`

	// MirrorX mirrors the cap body for left/right hand pairs.
	MirrorX bool `toml:"mirror_x"`

	// Per-entry font overrides, empty meaning Settings.Font.
	PrimaryFont   string `toml:"primary_font"`
	SecondaryFont string `toml:"secondary_font"`
	TertiaryFont  string `toml:"tertiary_font"`
}

// Config is the full parsed configuration. Legends is keyed by
// profile row name; every key must name an entry in Profiles.
type Config struct {
	Settings Settings                 `toml:"settings"`
	Profiles map[string]Profile       `toml:"profiles"`
	Legends  map[string][]LegendEntry `toml:"legends"`
}

// DefaultSettings returns the settings used when the TOML file leaves
// a field out.
func DefaultSettings() Settings {
	return Settings{
		Font:              "Rajdhani",
		PrimaryFontSize:   8,
		SecondaryFontSize: 6,
		TertiaryFontSize:  5,
		TertiaryXOffset:   -5,
		BodyCells:         200,
		LegendCells:       300,
		OutputDir:         "results",
	}
}

// Load reads and validates a configuration file. Fields missing from
// the file keep their DefaultSettings value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Settings: DefaultSettings()}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Settings.BodyCells <= 0 || c.Settings.LegendCells <= 0 {
		return fmt.Errorf("mesh cells must be positive (body %d, legend %d)",
			c.Settings.BodyCells, c.Settings.LegendCells)
	}
	if c.Settings.Tolerance < 0 {
		return fmt.Errorf("tolerance %g must not be negative", c.Settings.Tolerance)
	}
	for name, p := range c.Profiles {
		if p.Width <= 0 || p.Depth <= 0 || p.Height <= 0 {
			return fmt.Errorf("profile %q: dimensions must be positive", name)
		}
		if p.Wall < 0 || 2*p.Wall >= min(p.Width, p.Depth) {
			return fmt.Errorf("profile %q: wall %g does not fit a %gx%g cap",
				name, p.Wall, p.Width, p.Depth)
		}
	}
	for row := range c.Legends {
		if _, ok := c.Profiles[row]; !ok {
			return fmt.Errorf("legends row %q has no matching profile", row)
		}
	}
	return nil
}
