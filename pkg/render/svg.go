package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
)

// SVGOptions controls SVG rendering.
type SVGOptions struct {
	Width      int    // output width in pixels (0 = frame width)
	Height     int    // output height in pixels (0 = frame height)
	FontFamily string // label font
	Background bool   // paint a white background under the grid
}

// DefaultSVGOptions returns the defaults used by the CLI and server.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		FontFamily: "Inter, sans-serif",
		Background: true,
	}
}

// SVG renders the frame as a standalone SVG document.
func SVG(f Frame, opts SVGOptions) string {
	f = f.normalized()
	if opts.Width == 0 {
		opts.Width = int(f.Width)
	}
	if opts.Height == 0 {
		opts.Height = int(f.Height)
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "sans-serif"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %s %s">`+"\n",
		opts.Width, opts.Height, num(f.Width), num(f.Height))

	sb.WriteString("<defs>\n")
	fmt.Fprintf(&sb, `<pattern id="grid" width="%d" height="%d" patternUnits="userSpaceOnUse">`, scene.GridSize, scene.GridSize)
	fmt.Fprintf(&sb, `<path d="M %d 0 L 0 0 0 %d" fill="none" stroke="%s" stroke-width="1"/>`, scene.GridSize, scene.GridSize, gridColor)
	sb.WriteString("</pattern>\n</defs>\n")

	if opts.Background {
		fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", background)
	}

	// Scene content sits in one group carrying the view transform
	fmt.Fprintf(&sb, `<g transform="translate(%s %s) scale(%s)">`+"\n",
		num(f.View.Pan.X), num(f.View.Pan.Y), num(f.View.Zoom))
	fmt.Fprintf(&sb, `<rect width="%s" height="%s" fill="url(#grid)"/>`+"\n", num(f.Width), num(f.Height))

	for _, w := range f.Drawing.Walls {
		writeWall(&sb, w, "")
	}
	if f.Preview != nil {
		writeWall(&sb, *f.Preview, fmt.Sprintf(` opacity="%s" stroke-dasharray="%d,%d"`, num(previewAlpha), previewDash, previewDash))
	}

	for _, l := range f.Drawing.Labels {
		fmt.Fprintf(&sb, `<text x="%s" y="%s" fill="%s" font-size="%d" font-family="%s" font-weight="500" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
			num(l.Position.X), num(l.Position.Y), paint(l.Color), l.FontSize,
			attr(opts.FontFamily), html.EscapeString(l.Text))
	}

	for _, d := range f.Devices {
		writeDevice(&sb, d, opts.FontFamily)
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func writeWall(sb *strings.Builder, w scene.Wall, extra string) {
	fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%d" stroke-linecap="round"%s/>`+"\n",
		num(w.Start.X), num(w.Start.Y), num(w.End.X), num(w.End.Y),
		paint(w.Color), w.Thickness, extra)
}

func writeDevice(sb *strings.Builder, d scene.Device, family string) {
	x, y := d.Position.X, d.Position.Y

	fmt.Fprintf(sb, `<g class="device" data-id="%s">`+"\n", attr(d.ID))
	fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%d" fill="%s" stroke="white" stroke-width="%d"/>`+"\n",
		num(x), num(y), scene.MarkerRadius, d.MarkerColor(), markerStroke)

	if d.Category == scene.CategoryAdPoint {
		fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%d" height="%d" rx="%d" fill="white"/>`+"\n",
			num(x-glyphHalf), num(y-glyphHalf), 2*glyphHalf, 2*glyphHalf, glyphCorner)
	} else {
		fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%d" fill="white"/>`+"\n", num(x), num(y), glyphRadius)
	}

	fmt.Fprintf(sb, `<text x="%s" y="%s" fill="%s" font-size="%d" font-family="%s" font-weight="500" text-anchor="middle">%s</text>`+"\n",
		num(x), num(y+nameOffset), nameColor, nameSize, attr(family), html.EscapeString(d.Name))

	fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%d" fill="%s" stroke="white" stroke-width="%d"/>`+"\n",
		num(x+statusOffset), num(y-statusOffset), statusRadius, d.StatusColor(), statusStroke)
	sb.WriteString("</g>\n")
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}

// paint falls back to black for items stored without a colour.
func paint(c string) string {
	if c == "" {
		return defaultStroke
	}
	return html.EscapeString(c)
}
