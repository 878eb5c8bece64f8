package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/saravenpi/chatflow/internal/canvas"
	"github.com/saravenpi/chatflow/internal/chat"
)

// canvasModel wraps a drawing board. Each board cell is drawn two columns
// wide so it looks square in a terminal.
type canvasModel struct {
	board     *canvas.Board
	exportDir string
	notifier  chat.Notifier
	err       error
}

func newCanvasModel(width, height int, exportDir string, notifier chat.Notifier) canvasModel {
	w := (width - 4) / 2
	h := height - 8
	if w > 48 {
		w = 48
	}
	if h > 24 {
		h = 24
	}
	if w < 8 {
		w = 8
	}
	if h < 6 {
		h = 6
	}

	return canvasModel{
		board:     canvas.NewBoard(w, h),
		exportDir: exportDir,
		notifier:  notifier,
	}
}

// Update handles a key and reports whether the canvas is still open.
func (m canvasModel) Update(msg tea.KeyMsg) (canvasModel, bool) {
	switch msg.String() {
	case "up", "k":
		m.board.MoveCursor(0, -1)
	case "down", "j":
		m.board.MoveCursor(0, 1)
	case "left", "h":
		m.board.MoveCursor(-1, 0)
	case "right", "l":
		m.board.MoveCursor(1, 0)
	case " ", "enter":
		m.board.Press()
	case "p":
		m.board.SetTool(canvas.Pencil)
	case "r":
		m.board.SetTool(canvas.Rectangle)
	case "o":
		m.board.SetTool(canvas.Circle)
	case "1", "2", "3", "4", "5", "6":
		m.board.SetColor(int(msg.String()[0] - '1'))
	case "u":
		m.board.Undo()
	case "c":
		m.board.Clear()
	case "e":
		path, err := m.board.Export(m.exportDir)
		if err != nil {
			m.err = err
			m.notifier.Notify(chat.Notice{Title: "Export failed", Description: err.Error()})
			return m, true
		}
		m.err = nil
		m.notifier.Notify(chat.Notice{Title: "Drawing exported", Description: fmt.Sprintf("Saved to %s", path)})
	case "s":
		m.notifier.Notify(chat.Notice{Title: "Drawing Shared", Description: "Your drawing has been shared with the channel."})
		m.board.Close()
		return m, false
	case "esc", "q":
		m.board.Close()
		return m, false
	}
	return m, true
}

func (m canvasModel) View(th theme) string {
	grid := m.board.Raster()
	cursor := m.board.Cursor()
	anchor, pending := m.board.Anchor()
	bg := lipgloss.Color(canvas.Background)

	var rows []string
	for y, row := range grid {
		var line strings.Builder
		for x, c := range row {
			cell := lipgloss.NewStyle().Background(bg)
			if c >= 0 {
				cell = cell.Background(lipgloss.Color(canvas.Palette[c]))
			}

			glyph := "  "
			switch {
			case x == cursor.X && y == cursor.Y:
				glyph = "╋╋"
				cell = cell.Foreground(lipgloss.Color("16"))
			case pending && x == anchor.X && y == anchor.Y:
				glyph = "··"
				cell = cell.Foreground(lipgloss.Color("16"))
			}
			line.WriteString(cell.Render(glyph))
		}
		rows = append(rows, line.String())
	}

	var swatches []string
	for i, hex := range canvas.Palette {
		label := fmt.Sprintf(" %d ", i+1)
		style := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Foreground(lipgloss.Color("16"))
		if i == m.board.Color() {
			label = fmt.Sprintf("[%d]", i+1)
		}
		swatches = append(swatches, style.Render(label))
	}

	pen := "up"
	if m.board.PenDown() {
		pen = "down"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🎨 Canvas") + "  ")
	b.WriteString(th.muted.Render(fmt.Sprintf("tool: %s • pen: %s • shapes: %d", m.board.Tool(), pen, m.board.Len())) + "\n\n")
	b.WriteString(th.panel.Render(strings.Join(rows, "\n")) + "\n")
	b.WriteString(strings.Join(swatches, " ") + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}
	b.WriteString(helpStyle.Render("arrows/hjkl: move • space: draw • p/r/o: pencil/rect/circle • 1-6: colour • u: undo • c: clear • e: export • s: share • esc: close"))
	return b.String()
}
