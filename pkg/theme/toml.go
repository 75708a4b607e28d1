package theme

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the TOML-serializable form of a Theme.
type tomlTheme struct {
	Name    string      `toml:"name"`
	Stroke  string      `toml:"stroke"`
	Chrome  tomlChrome  `toml:"chrome"`
	Tooltip tomlTooltip `toml:"tooltip"`
	Help    tomlHelp    `toml:"help"`
}

type tomlChrome struct {
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type tomlTooltip struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

type tomlHelp struct {
	Key  string `toml:"key"`
	Desc string `toml:"desc"`
}

// LoadFile parses a custom theme from a TOML file, registers it, and
// returns it. Missing chrome fields inherit from the default theme; the
// stroke string is passed through unvalidated because the engine owns color
// fallback.
func LoadFile(path string) (Theme, error) {
	var tt tomlTheme
	if _, err := toml.DecodeFile(path, &tt); err != nil {
		if os.IsNotExist(err) {
			return Theme{}, fmt.Errorf("theme file %s: %w", path, err)
		}
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if tt.Name == "" {
		return Theme{}, fmt.Errorf("theme %s: missing name", path)
	}

	base := Get("default")
	t := Theme{
		Name:       tt.Name,
		Stroke:     tt.Stroke,
		Foreground: orDefault(tt.Chrome.Foreground, base.Foreground),
		Dim:        orDefault(tt.Chrome.Dim, base.Dim),
		Accent:     orDefault(tt.Chrome.Accent, base.Accent),
		TooltipFG:  orDefault(tt.Tooltip.Foreground, base.TooltipFG),
		TooltipBG:  orDefault(tt.Tooltip.Background, base.TooltipBG),
		HelpKey:    orDefault(tt.Help.Key, base.HelpKey),
		HelpDesc:   orDefault(tt.Help.Desc, base.HelpDesc),
	}
	Register(t)
	return t, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
