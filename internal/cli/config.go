package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/errors"
)

// loadTheme reads a TOML theme file and overlays it on the default
// style, so a theme only needs to name the keys it changes.
func loadTheme(path string) (diagram.Style, error) {
	style := diagram.DefaultStyle()
	if path == "" {
		return style, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return style, errors.Wrap(errors.ErrCodeInvalidTheme, err, "read theme %s", path)
	}
	if err := toml.Unmarshal(data, &style); err != nil {
		return style, errors.Wrap(errors.ErrCodeInvalidTheme, err, "parse theme %s", path)
	}
	return style, nil
}
