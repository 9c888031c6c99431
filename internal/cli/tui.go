package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/schemavis/schemavis/pkg/diagram"
	"github.com/schemavis/schemavis/pkg/layout"
	"github.com/schemavis/schemavis/pkg/pipeline"
	"github.com/schemavis/schemavis/pkg/render"
)

// Tree styles
var (
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	treeGroupStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	treeTypeStyle     = lipgloss.NewStyle().Foreground(colorBlue)
)

// tuiCommand creates the interactive schema browser command.
func (c *CLI) tuiCommand() *cobra.Command {
	var theme string
	var output string

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Browse a schema interactively and export the diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), args[0], theme, output)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "SVG path for the save key (default: input with .svg)")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, input, theme, output string) error {
	style, err := loadTheme(theme)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	d, err := runner.Build(ctx, pipeline.Options{SourcePath: input})
	if err != nil {
		return err
	}
	d.Style = style

	if output == "" {
		output = basePath("", input) + ".svg"
	}

	model := NewSchemaTreeModel(input, d, output)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// schemaTreeRow is one visible line of the tree: an item at a depth.
type schemaTreeRow struct {
	item  *diagram.Item
	depth int
}

// SchemaTreeModel is the bubbletea model for browsing a schema tree.
// Enter toggles expansion; the expand state feeds the exported diagram.
type SchemaTreeModel struct {
	Title    string
	Diagram  *diagram.Diagram
	SavePath string

	rows   []schemaTreeRow
	cursor int
	offset int
	height int
	status string
}

// NewSchemaTreeModel creates a tree model over a built diagram.
func NewSchemaTreeModel(title string, d *diagram.Diagram, savePath string) SchemaTreeModel {
	m := SchemaTreeModel{
		Title:    title,
		Diagram:  d,
		SavePath: savePath,
		height:   20,
	}
	m.rebuildRows()
	return m
}

// rebuildRows flattens the visible portion of the tree: roots always,
// children only under expanded items.
func (m *SchemaTreeModel) rebuildRows() {
	m.rows = m.rows[:0]
	var visit func(it *diagram.Item, depth int)
	visit = func(it *diagram.Item, depth int) {
		m.rows = append(m.rows, schemaTreeRow{item: it, depth: depth})
		if !it.Expanded {
			return
		}
		for _, child := range it.Children() {
			visit(child, depth+1)
		}
	}
	for _, root := range m.Diagram.Roots {
		visit(root, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m SchemaTreeModel) Init() tea.Cmd {
	return nil
}

func (m SchemaTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			it := m.rows[m.cursor].item
			if it.HasChildren() {
				it.Expanded = !it.Expanded
				m.rebuildRows()
			}
		case "e":
			m.Diagram.Walk(func(it *diagram.Item) bool {
				it.Expanded = true
				return true
			})
			m.rebuildRows()
		case "c":
			m.Diagram.Walk(func(it *diagram.Item) bool {
				it.Expanded = false
				return true
			})
			m.rebuildRows()
		case "s":
			if err := m.save(); err != nil {
				m.status = StyleWarning.Render(fmt.Sprintf("save failed: %v", err))
			} else {
				m.status = StyleSuccess.Render("saved " + m.SavePath)
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// save lays out the current expand state and writes the SVG.
func (m SchemaTreeModel) save() error {
	layout.Diagram(m.Diagram)
	return os.WriteFile(m.SavePath, render.SVG(m.Diagram), 0644)
}

func (m SchemaTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Schema: " + m.Title))
	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  e expand all  c collapse all  s save SVG  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		it := row.item

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "  "
		if it.HasChildren() {
			if it.Expanded {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + it.DisplayName()
		if extra := rowAnnotation(it); extra != "" {
			line += "  " + treeDimStyle.Render(extra)
		}

		switch {
		case i == m.cursor:
			b.WriteString(treeSelectedStyle.Render(line))
		case it.Kind == diagram.KindGroup:
			b.WriteString(treeGroupStyle.Render(line))
		case it.Kind == diagram.KindType:
			b.WriteString(treeTypeStyle.Render(line))
		default:
			b.WriteString(treeNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(treeDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))
	if m.status != "" {
		b.WriteString("  " + m.status)
	}

	return b.String()
}

// rowAnnotation summarizes an item's non-default properties for the
// tree line.
func rowAnnotation(it *diagram.Item) string {
	var parts []string
	if it.Kind == diagram.KindGroup {
		parts = append(parts, it.GroupKind.String())
	}
	if it.TypeLabel != "" {
		parts = append(parts, it.TypeLabel)
	}
	if it.MinOccurs != 1 || it.MaxOccurs != 1 {
		max := fmt.Sprintf("%d", it.MaxOccurs)
		if it.MaxOccurs == diagram.Unbounded {
			max = "∞"
		}
		parts = append(parts, fmt.Sprintf("%d..%s", it.MinOccurs, max))
	}
	return strings.Join(parts, " · ")
}
