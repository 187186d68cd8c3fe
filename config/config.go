// Package config loads the settings of the focus engine: the selection
// debounce delay and the look of each decoration channel.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gioui.org/font"
	"gioui.org/unit"
	"github.com/oligo/gvfocus"
	"github.com/oligo/gvfocus/textstyle"
	"github.com/oligo/gvfocus/textstyle/decoration"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

const envPrefix = "GVFOCUS_"

// Config holds all settings. The zero value is not usable, start from
// Default.
type Config struct {
	// Debounce is the quiet period after the last selection change before
	// the focus area follows the selection.
	Debounce   Duration         `toml:"debounce" yaml:"debounce"`
	Background BackgroundConfig `toml:"background" yaml:"background"`
	Border     BorderConfig     `toml:"border" yaml:"border"`
	Dim        DimConfig        `toml:"dim" yaml:"dim"`
}

type BackgroundConfig struct {
	Color         string `toml:"color" yaml:"color"`
	OverviewRuler string `toml:"overview_ruler" yaml:"overview_ruler"`
}

type BorderConfig struct {
	Color  string  `toml:"color" yaml:"color"`
	Width  float32 `toml:"width" yaml:"width"`
	Radius float32 `toml:"radius" yaml:"radius"`
}

type DimConfig struct {
	Opacity float32 `toml:"opacity" yaml:"opacity"`
	// FontWeight uses the CSS scale, 400 being normal.
	FontWeight int `toml:"font_weight" yaml:"font_weight"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Debounce: Duration(100 * time.Millisecond),
		Background: BackgroundConfig{
			Color:         "rgba(64, 128, 255, 0.08)",
			OverviewRuler: "rgba(64, 128, 255, 0.8)",
		},
		Border: BorderConfig{
			Color:  "rgba(64, 128, 255, 0.9)",
			Width:  2,
			Radius: 8,
		},
		Dim: DimConfig{
			Opacity:    0.25,
			FontWeight: 300,
		},
	}
}

// Load reads the file at path on top of the defaults. The format is picked
// from the file extension. A missing file is not an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	format, err := formatOf(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(bytes.NewReader(data), format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration from r on top of the defaults and validates it.
func Parse(r io.Reader, format Format) (Config, error) {
	cfg := Default()

	var err error
	switch format {
	case TOML:
		err = toml.NewDecoder(r).Decode(&cfg)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("decoding %s config: %w", format, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes the configuration in the given format.
func (c Config) Encode(w io.Writer, format Format) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(c)
	case YAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(c)
	}
	return fmt.Errorf("unknown config format %q", format)
}

// ApplyEnv overrides settings from GVFOCUS_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(envPrefix + "DEBOUNCE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sDEBOUNCE: %w", envPrefix, err)
		}
		c.Debounce = Duration(d)
	}

	if v, ok := os.LookupEnv(envPrefix + "DIM_OPACITY"); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%sDIM_OPACITY: %w", envPrefix, err)
		}
		c.Dim.Opacity = float32(f)
	}

	return c.Validate()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("debounce must be positive, got %s", c.Debounce))
	}

	for name, value := range map[string]string{
		"background.color":          c.Background.Color,
		"background.overview_ruler": c.Background.OverviewRuler,
		"border.color":              c.Border.Color,
	} {
		if value == "" {
			continue
		}
		if _, err := textstyle.ParseColor(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if c.Border.Width < 0 || c.Border.Radius < 0 {
		errs = append(errs, errors.New("border width and radius must not be negative"))
	}
	if c.Dim.Opacity < 0 || c.Dim.Opacity > 1 {
		errs = append(errs, fmt.Errorf("dim.opacity must be in [0, 1], got %v", c.Dim.Opacity))
	}
	if c.Dim.FontWeight < 100 || c.Dim.FontWeight > 900 {
		errs = append(errs, fmt.Errorf("dim.font_weight must be in [100, 900], got %d", c.Dim.FontWeight))
	}

	return errors.Join(errs...)
}

// Styles builds the style of every channel.
func (c Config) Styles() (map[gvfocus.ChannelKind]decoration.Style, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parse := func(s string) textstyle.Color {
		if s == "" {
			return textstyle.Color{}
		}
		// validated above.
		return textstyle.MustParseColor(s)
	}

	border := func(edges decoration.Edges, corners decoration.Corners) *decoration.BorderStyle {
		return &decoration.BorderStyle{
			Color:   parse(c.Border.Color),
			Width:   unit.Dp(c.Border.Width),
			Edges:   edges,
			Radius:  unit.Dp(c.Border.Radius),
			Corners: corners,
		}
	}

	sides := decoration.EdgeLeft | decoration.EdgeRight

	return map[gvfocus.ChannelKind]decoration.Style{
		gvfocus.BackgroundChannel: {
			Background:    parse(c.Background.Color),
			OverviewRuler: parse(c.Background.OverviewRuler),
		},
		gvfocus.TopBorderChannel:        {Border: border(decoration.EdgeTop|sides, decoration.TopCorners)},
		gvfocus.BottomBorderChannel:     {Border: border(decoration.EdgeBottom|sides, decoration.BottomCorners)},
		gvfocus.SideBorderChannel:       {Border: border(sides, 0)},
		gvfocus.SingleLineBorderChannel: {Border: border(decoration.AllEdges, decoration.AllCorners)},
		gvfocus.DimChannel: {
			Dim: &decoration.DimStyle{
				Opacity: c.Dim.Opacity,
				Weight:  cssWeight(c.Dim.FontWeight),
			},
		},
	}, nil
}

// cssWeight converts a CSS font weight to a Gio weight, where 0 is normal.
func cssWeight(w int) font.Weight {
	return font.Weight(w - 400)
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported config file %s", path)
}

// Duration is a time.Duration written as a Go duration string, e.g. "100ms".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}
