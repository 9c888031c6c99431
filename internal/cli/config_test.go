package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/errors"
)

func TestLoadThemeDefault(t *testing.T) {
	style, err := loadTheme("")
	if err != nil {
		t.Fatal(err)
	}
	if style != diagram.DefaultStyle() {
		t.Error("empty path should yield the default style")
	}
}

func TestLoadThemeOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	theme := `element_fill = "#112233"
font_size = 14.0
`
	if err := os.WriteFile(path, []byte(theme), 0644); err != nil {
		t.Fatal(err)
	}

	style, err := loadTheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if style.ElementFill != "#112233" {
		t.Errorf("ElementFill = %q, want overridden value", style.ElementFill)
	}
	if style.FontSize != 14.0 {
		t.Errorf("FontSize = %v, want 14.0", style.FontSize)
	}
	// Keys the theme did not name keep their defaults.
	if style.ShadowFill != diagram.DefaultStyle().ShadowFill {
		t.Errorf("ShadowFill = %q, want default", style.ShadowFill)
	}
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := loadTheme(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("err = %v, want INVALID_THEME", err)
	}
}

func TestLoadThemeBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("element_fill = [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := loadTheme(path)
	if !errors.Is(err, errors.ErrCodeInvalidTheme) {
		t.Errorf("err = %v, want INVALID_THEME", err)
	}
}
