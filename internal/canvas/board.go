// Package canvas implements the drawing board behind the chat canvas: a cell
// grid the user draws on with a keyboard cursor, exported as PNG.
package canvas

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// ExportName is the file written by Export.
const ExportName = "chatflow-drawing.png"

type Tool int

const (
	Pencil Tool = iota
	Rectangle
	Circle
)

func (t Tool) String() string {
	switch t {
	case Rectangle:
		return "rectangle"
	case Circle:
		return "circle"
	default:
		return "pencil"
	}
}

// Palette is the set of colours a shape can use, as hex strings.
var Palette = []string{
	"#E94560",
	"#00E5FF",
	"#1A1A2E",
	"#FFFFFF",
	"#FFCC00",
	"#66BB6A",
}

const Background = "#F8F9FA"

type Point struct {
	X, Y int
}

type Shape struct {
	Tool   Tool
	Color  int
	Points []Point
}

// Board holds the shapes drawn so far. Pencil strokes grow while the pen is
// down; rectangles and circles take two presses (anchor, then extent).
type Board struct {
	width, height int
	shapes        []Shape
	cursor        Point
	tool          Tool
	color         int
	penDown       bool
	anchor        *Point
	closed        bool
}

func NewBoard(width, height int) *Board {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Board{
		width:  width,
		height: height,
		cursor: Point{X: width / 2, Y: height / 2},
	}
}

func (b *Board) Size() (int, int) { return b.width, b.height }
func (b *Board) Cursor() Point    { return b.cursor }
func (b *Board) Tool() Tool       { return b.tool }
func (b *Board) Color() int       { return b.color }
func (b *Board) PenDown() bool    { return b.penDown }
func (b *Board) Closed() bool     { return b.closed }
func (b *Board) Len() int         { return len(b.shapes) }

// Anchor returns the pending first corner or centre of a shape.
func (b *Board) Anchor() (Point, bool) {
	if b.anchor == nil {
		return Point{}, false
	}
	return *b.anchor, true
}

func (b *Board) SetTool(t Tool) {
	b.tool = t
	b.penDown = false
	b.anchor = nil
}

func (b *Board) SetColor(i int) {
	if i >= 0 && i < len(Palette) {
		b.color = i
	}
}

// MoveCursor moves the cursor by (dx, dy), clamped to the board. With the
// pencil down the new position extends the current stroke.
func (b *Board) MoveCursor(dx, dy int) {
	b.cursor.X = clamp(b.cursor.X+dx, 0, b.width-1)
	b.cursor.Y = clamp(b.cursor.Y+dy, 0, b.height-1)

	if b.tool == Pencil && b.penDown && len(b.shapes) > 0 {
		last := &b.shapes[len(b.shapes)-1]
		last.Points = append(last.Points, b.cursor)
	}
}

// Press acts at the cursor: it toggles the pencil or places a shape point.
func (b *Board) Press() {
	if b.closed {
		return
	}

	switch b.tool {
	case Pencil:
		if b.penDown {
			b.penDown = false
			return
		}
		b.penDown = true
		b.shapes = append(b.shapes, Shape{Tool: Pencil, Color: b.color, Points: []Point{b.cursor}})
	default:
		if b.anchor == nil {
			p := b.cursor
			b.anchor = &p
			return
		}
		b.shapes = append(b.shapes, Shape{Tool: b.tool, Color: b.color, Points: []Point{*b.anchor, b.cursor}})
		b.anchor = nil
	}
}

// Undo removes the last shape and reports whether there was one.
func (b *Board) Undo() bool {
	b.penDown = false
	b.anchor = nil
	if len(b.shapes) == 0 {
		return false
	}
	b.shapes = b.shapes[:len(b.shapes)-1]
	return true
}

func (b *Board) Clear() {
	b.shapes = nil
	b.penDown = false
	b.anchor = nil
}

func (b *Board) Close() {
	b.closed = true
	b.penDown = false
	b.anchor = nil
}

// Raster returns the palette index of every cell, -1 for empty cells. It
// backs the terminal preview; exports are drawn by ExportPNG.
func (b *Board) Raster() [][]int {
	grid := make([][]int, b.height)
	for y := range grid {
		grid[y] = make([]int, b.width)
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	plot := func(p Point, c int) {
		if p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height {
			grid[p.Y][p.X] = c
		}
	}

	for _, s := range b.shapes {
		switch s.Tool {
		case Pencil:
			if len(s.Points) == 1 {
				plot(s.Points[0], s.Color)
			}
			for i := 1; i < len(s.Points); i++ {
				line(s.Points[i-1], s.Points[i], func(p Point) { plot(p, s.Color) })
			}
		case Rectangle:
			rect(s.Points[0], s.Points[1], func(p Point) { plot(p, s.Color) })
		case Circle:
			circle(s.Points[0], s.Points[1], func(p Point) { plot(p, s.Color) })
		}
	}

	return grid
}

// ExportPNG draws the shapes at scale pixels per cell and encodes them as a
// PNG. Points sit at cell centres; strokes are one cell wide.
func (b *Board) ExportPNG(w io.Writer, scale int) error {
	if scale < 1 {
		scale = 1
	}

	s := float64(scale)
	centre := func(p Point) (float64, float64) {
		return float64(p.X)*s + s/2, float64(p.Y)*s + s/2
	}

	dc := gg.NewContext(b.width*scale, b.height*scale)
	dc.SetHexColor(Background)
	dc.Clear()
	dc.SetLineWidth(s)
	dc.SetLineCapSquare()

	for _, shape := range b.shapes {
		dc.SetHexColor(Palette[shape.Color])
		switch shape.Tool {
		case Pencil:
			if len(shape.Points) == 1 {
				p := shape.Points[0]
				dc.DrawRectangle(float64(p.X)*s, float64(p.Y)*s, s, s)
				dc.Fill()
				continue
			}
			for i, p := range shape.Points {
				x, y := centre(p)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
		case Rectangle:
			x0, y0 := centre(shape.Points[0])
			x1, y1 := centre(shape.Points[1])
			dc.DrawRectangle(math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
			dc.Stroke()
		case Circle:
			cx, cy := centre(shape.Points[0])
			ex, ey := centre(shape.Points[1])
			dc.DrawCircle(cx, cy, math.Hypot(ex-cx, ey-cy))
			dc.Stroke()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode drawing: %w", err)
	}
	return nil
}

// Export writes the drawing to dir/chatflow-drawing.png and returns the path.
func (b *Board) Export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create drawing file: %w", err)
	}

	if err := b.ExportPNG(f, 8); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write drawing file: %w", err)
	}

	return path, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
