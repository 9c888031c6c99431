package diagram

// Style is the diagram's theme record: fill/stroke colors and font
// settings shared by every drawn item. Field names double as TOML keys so
// a theme file can override any subset.
type Style struct {
	FontFamily  string  `json:"fontFamily" toml:"font_family"`
	FontSize    float64 `json:"fontSize" toml:"font_size"`
	DocFontSize float64 `json:"docFontSize" toml:"doc_font_size"`

	ElementFill   string `json:"elementFill" toml:"element_fill"`
	ElementStroke string `json:"elementStroke" toml:"element_stroke"`
	GroupFill     string `json:"groupFill" toml:"group_fill"`
	GroupStroke   string `json:"groupStroke" toml:"group_stroke"`
	TypeFill      string `json:"typeFill" toml:"type_fill"`
	TypeStroke    string `json:"typeStroke" toml:"type_stroke"`
	TextColor     string `json:"textColor" toml:"text_color"`
	DocColor      string `json:"docColor" toml:"doc_color"`
	LineColor     string `json:"lineColor" toml:"line_color"`
	ShadowFill    string `json:"shadowFill" toml:"shadow_fill"`
	Background    string `json:"background" toml:"background"`
}

// DefaultStyle returns the built-in theme.
func DefaultStyle() Style {
	return Style{
		FontFamily:    "Helvetica, Arial, sans-serif",
		FontSize:      12,
		DocFontSize:   10,
		ElementFill:   "#eef3fb",
		ElementStroke: "#2b5797",
		GroupFill:     "#f5f0e1",
		GroupStroke:   "#8a6d3b",
		TypeFill:      "#eefbef",
		TypeStroke:    "#2e7d32",
		TextColor:     "#1a1a1a",
		DocColor:      "#555555",
		LineColor:     "#666666",
		ShadowFill:    "#d8d8d8",
		Background:    "#ffffff",
	}
}
