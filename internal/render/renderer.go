package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"github.com/cartovote/vote-map/internal/domain"
	"github.com/cartovote/vote-map/internal/geometry"
)

// Canvas proportions follow the original 11x7in figure at ~120dpi.
const (
	canvasWidth  = 1320
	canvasHeight = 840
	canvasMargin = 40.0

	legendSwatch  = 14.0
	legendRowStep = 22.0
)

// Renderer draws joined vote/boundary rows as a static choropleth PNG.
// Rendering is a pure function of the rows, the palette, and the legend:
// the same input always produces the same bytes.
type Renderer struct {
	palette Palette
	legend  []LegendItem
	logger  *slog.Logger
}

// NewRenderer creates a Renderer with a fixed palette and legend.
func NewRenderer(palette Palette, legend []LegendItem, logger *slog.Logger) *Renderer {
	return &Renderer{
		palette: palette,
		legend:  legend,
		logger:  logger,
	}
}

// Render projects each row's boundary to Albers planar coordinates, fills it
// with its category color, and adds the legend and title. Returns the encoded
// PNG. Failures wrap domain.ErrRender.
func (r *Renderer) Render(rows []geometry.JoinedRow, title string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to draw", domain.ErrRender)
	}

	projected, bounds := projectRows(rows)
	if bounds.empty() {
		return nil, fmt.Errorf("%w: boundaries contain no coordinates", domain.ErrRender)
	}

	dc := gg.NewContext(canvasWidth, canvasHeight)
	dc.SetHexColor(r.palette.Background)
	dc.Clear()

	tr := bounds.fit(canvasWidth, canvasHeight, canvasMargin)

	dc.SetFillRule(gg.FillRuleEvenOdd)
	for i, row := range rows {
		if _, ok := r.palette.Colors[row.Category]; !ok {
			r.logger.Warn("no palette color for category, using fallback",
				"key", row.Key, "category", row.Category)
		}
		tracePolygons(dc, projected[i], tr)
		dc.SetHexColor(r.palette.color(row.Category))
		dc.FillPreserve()
		dc.SetHexColor(r.palette.Lines)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	r.drawLegend(dc)

	dc.SetHexColor(r.palette.Lines)
	dc.DrawStringAnchored(title, canvasWidth/2, canvasMargin/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: encode png: %v", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawLegend(dc *gg.Context) {
	x := canvasMargin
	y := canvasHeight - canvasMargin - legendRowStep*float64(len(r.legend))

	for _, item := range r.legend {
		dc.DrawRectangle(x, y, legendSwatch, legendSwatch)
		dc.SetHexColor(r.palette.color(item.Key))
		dc.FillPreserve()
		dc.SetHexColor(r.palette.Lines)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.DrawStringAnchored(item.Label, x+legendSwatch+8, y+legendSwatch/2, 0, 0.5)
		y += legendRowStep
	}
}

// planarBounds tracks the extent of projected coordinates.
type planarBounds struct {
	minX, minY, maxX, maxY float64
	set                    bool
}

func (b *planarBounds) extend(x, y float64) {
	if !b.set {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.set = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *planarBounds) empty() bool {
	return !b.set || b.maxX == b.minX || b.maxY == b.minY
}

// transform maps projected meters onto the canvas, preserving aspect ratio
// and flipping Y for screen coordinates.
type transform struct {
	scale, offsetX, offsetY float64
	minX, maxY              float64
}

func (b *planarBounds) fit(width, height int, margin float64) transform {
	dx := b.maxX - b.minX
	dy := b.maxY - b.minY
	scale := math.Min((float64(width)-2*margin)/dx, (float64(height)-2*margin)/dy)
	return transform{
		scale:   scale,
		offsetX: (float64(width) - dx*scale) / 2,
		offsetY: (float64(height) - dy*scale) / 2,
		minX:    b.minX,
		maxY:    b.maxY,
	}
}

func (t transform) apply(x, y float64) (float64, float64) {
	return t.offsetX + (x-t.minX)*t.scale, t.offsetY + (t.maxY-y)*t.scale
}

// projRing is one ring of projected planar coordinates.
type projRing []orb.Point

func projectRows(rows []geometry.JoinedRow) ([][]projRing, *planarBounds) {
	bounds := &planarBounds{}
	projected := make([][]projRing, len(rows))
	for i, row := range rows {
		for _, polygon := range row.Shape.Boundary {
			for _, ring := range polygon {
				pr := make(projRing, 0, len(ring))
				for _, pt := range ring {
					x, y := projectAlbers(pt[0], pt[1])
					bounds.extend(x, y)
					pr = append(pr, orb.Point{x, y})
				}
				projected[i] = append(projected[i], pr)
			}
		}
	}
	return projected, bounds
}

func tracePolygons(dc *gg.Context, rings []projRing, tr transform) {
	for _, ring := range rings {
		for j, pt := range ring {
			x, y := tr.apply(pt[0], pt[1])
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}
}
