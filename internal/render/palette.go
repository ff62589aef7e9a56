// Package render draws choropleth maps of classified roll-call votes.
package render

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/cartovote/vote-map/internal/domain"
)

// Palette assigns fill colors to category keys plus the fixed chrome colors.
// All colors are CSS hex strings.
type Palette struct {
	Colors     map[string]string `yaml:"colors"`
	Fallback   string            `yaml:"fallback"`
	Background string            `yaml:"background"`
	Lines      string            `yaml:"lines"`
}

// LegendItem pairs a category key with its display label.
type LegendItem struct {
	Key   string
	Label string
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// SenatePalette returns the default six-orientation color assignment.
func SenatePalette() Palette {
	return Palette{
		Colors: map[string]string{
			string(domain.OrientationBothYea):         "#1CE67D",
			string(domain.OrientationBothNay):         "#F5311B",
			string(domain.OrientationSplitYeaNay):     "#FFDE26",
			string(domain.OrientationSplitYeaAbstain): "#90FF21",
			string(domain.OrientationSplitNayAbstain): "#FF9421",
			string(domain.OrientationBothAbstain):     "#D3D3D3",
		},
		Fallback:   "#BBBBBB",
		Background: "#FFFFFF",
		Lines:      "#0D0D0D",
	}
}

// HousePalette returns the default per-position color assignment used for
// district maps, where each seat casts a single vote.
func HousePalette() Palette {
	return Palette{
		Colors: map[string]string{
			string(domain.PositionYea):       "#2CA02C",
			string(domain.PositionNay):       "#D62728",
			string(domain.PositionPresent):   "#FF7F0E",
			string(domain.PositionNotVoting): "#7F7F7F",
		},
		Fallback:   "#BBBBBB",
		Background: "#FFFFFF",
		Lines:      "#0D0D0D",
	}
}

// SenateLegend lists the six orientations in legend order.
func SenateLegend() []LegendItem {
	items := make([]LegendItem, 0, 6)
	for _, o := range domain.Orientations() {
		items = append(items, LegendItem{Key: string(o), Label: o.Label()})
	}
	return items
}

// HouseLegend lists the four vote positions in legend order.
func HouseLegend() []LegendItem {
	items := make([]LegendItem, 0, 4)
	for _, p := range domain.Positions() {
		items = append(items, LegendItem{Key: string(p), Label: string(p)})
	}
	return items
}

// LoadPalette overlays a YAML palette file onto a base palette. Only the keys
// present in the file are overridden; every color must be a hex string.
func LoadPalette(path string, base Palette) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, fmt.Errorf("read palette file: %w", err)
	}

	var overlay Palette
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Palette{}, fmt.Errorf("decode palette file %s: %w", path, err)
	}

	merged := base
	merged.Colors = make(map[string]string, len(base.Colors))
	for k, v := range base.Colors {
		merged.Colors[k] = v
	}
	for k, v := range overlay.Colors {
		merged.Colors[k] = v
	}
	if overlay.Fallback != "" {
		merged.Fallback = overlay.Fallback
	}
	if overlay.Background != "" {
		merged.Background = overlay.Background
	}
	if overlay.Lines != "" {
		merged.Lines = overlay.Lines
	}

	if err := merged.validate(); err != nil {
		return Palette{}, fmt.Errorf("palette file %s: %w", path, err)
	}
	return merged, nil
}

func (p Palette) validate() error {
	for key, c := range p.Colors {
		if !hexColorRe.MatchString(c) {
			return fmt.Errorf("color for %q is not a hex color: %q", key, c)
		}
	}
	for name, c := range map[string]string{"fallback": p.Fallback, "background": p.Background, "lines": p.Lines} {
		if !hexColorRe.MatchString(c) {
			return fmt.Errorf("%s is not a hex color: %q", name, c)
		}
	}
	return nil
}

// color resolves a category key to its fill color, falling back for keys the
// palette does not define.
func (p Palette) color(key string) string {
	if c, ok := p.Colors[key]; ok {
		return c
	}
	return p.Fallback
}
