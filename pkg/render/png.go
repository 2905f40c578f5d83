// Native PNG rendering for floor plans.
// Mirrors the SVG output using Go's image packages.

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/floorplan-toolkit/pkg/geom"
	"github.com/ha1tch/floorplan-toolkit/pkg/scene"
	"github.com/ha1tch/floorplan-toolkit/pkg/view"
)

// PNGOptions configures PNG rendering.
type PNGOptions struct {
	Width       int // output width in pixels (0 = frame width)
	Height      int // output height in pixels (0 = frame height)
	Supersample int // render scale before downsampling (0 = 4)
}

// DefaultPNGOptions returns sensible defaults for PNG rendering.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Supersample: 4}
}

var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{0, 0, 0, 255}
)

// renderContext holds the target image and the scene-to-pixel mapping.
type renderContext struct {
	img   *image.RGBA
	scale float64 // supersampling factor times output/frame ratio
	view  view.Transform
	font  *opentype.Font
	faces map[float64]font.Face
}

func newRenderContext(img *image.RGBA, scale float64, t view.Transform) *renderContext {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font
	}
	return &renderContext{
		img:   img,
		scale: scale,
		view:  t,
		font:  fnt,
		faces: make(map[float64]font.Face),
	}
}

// face returns a Go Regular face for a font size given in scene units.
func (ctx *renderContext) face(size float64) font.Face {
	px := math.Round(ctx.length(size)*4) / 4
	if f, ok := ctx.faces[px]; ok {
		return f
	}
	f, err := opentype.NewFace(ctx.font, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	})
	if err != nil {
		panic(err)
	}
	ctx.faces[px] = f
	return f
}

func (ctx *renderContext) close() {
	for _, f := range ctx.faces {
		f.Close()
	}
}

// pixel maps a scene point to supersampled image coordinates.
func (ctx *renderContext) pixel(p geom.Point) geom.Point {
	return ctx.view.SceneToScreen(p).Scale(ctx.scale)
}

// length maps a scene distance to supersampled pixels.
func (ctx *renderContext) length(v float64) float64 {
	return v * ctx.view.Zoom * ctx.scale
}

// PNG renders the frame and writes it as a PNG image.
// Uses supersampling for smoother output.
func PNG(f Frame, w io.Writer, opts PNGOptions) error {
	return png.Encode(w, Image(f, opts))
}

// Image renders the frame to an in-memory image.
func Image(f Frame, opts PNGOptions) *image.RGBA {
	f = f.normalized()
	if opts.Width == 0 {
		opts.Width = int(f.Width)
	}
	if opts.Height == 0 {
		opts.Height = int(f.Height)
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 4
	}

	ss := opts.Supersample
	large := image.NewRGBA(image.Rect(0, 0, opts.Width*ss, opts.Height*ss))
	scale := float64(opts.Width*ss) / f.Width

	ctx := newRenderContext(large, scale, f.View)
	defer ctx.close()
	renderScene(ctx, f)

	if ss == 1 {
		return large
	}
	final := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Over, nil)
	return final
}

func renderScene(ctx *renderContext, f Frame) {
	draw.Draw(ctx.img, ctx.img.Bounds(), image.NewUniform(colorWhite), image.Point{}, draw.Src)

	grid := scene.MustColor(gridColor)
	for x := 0.0; x <= f.Width; x += scene.GridSize {
		drawSegment(ctx, geom.Pt(x, 0), geom.Pt(x, f.Height), 1, grid, 1, 0)
	}
	for y := 0.0; y <= f.Height; y += scene.GridSize {
		drawSegment(ctx, geom.Pt(0, y), geom.Pt(f.Width, y), 1, grid, 1, 0)
	}

	for _, w := range f.Drawing.Walls {
		drawSegment(ctx, w.Start, w.End, float64(w.Thickness), parseOr(w.Color, colorBlack), 1, 0)
	}
	if p := f.Preview; p != nil {
		drawSegment(ctx, p.Start, p.End, float64(p.Thickness), parseOr(p.Color, colorBlack), previewAlpha, previewDash)
	}

	for _, l := range f.Drawing.Labels {
		drawText(ctx, l.Position, l.Text, float64(l.FontSize), parseOr(l.Color, colorBlack), true)
	}

	for _, d := range f.Devices {
		drawDevice(ctx, d)
	}
}

func drawDevice(ctx *renderContext, d scene.Device) {
	c := d.Position
	fillCircle(ctx, c, scene.MarkerRadius+markerStroke/2.0, colorWhite)
	fillCircle(ctx, c, scene.MarkerRadius-markerStroke/2.0, scene.MustColor(d.MarkerColor()))

	if d.Category == scene.CategoryAdPoint {
		fillRoundRect(ctx, geom.R(c.X-glyphHalf, c.Y-glyphHalf, c.X+glyphHalf, c.Y+glyphHalf), glyphCorner, colorWhite)
	} else {
		fillCircle(ctx, c, glyphRadius, colorWhite)
	}

	drawText(ctx, c.Add(geom.Pt(0, nameOffset)), d.Name, nameSize, scene.MustColor(nameColor), false)

	s := c.Add(geom.Pt(statusOffset, -statusOffset))
	fillCircle(ctx, s, statusRadius+statusStroke/2.0, colorWhite)
	fillCircle(ctx, s, statusRadius-statusStroke/2.0, scene.MustColor(d.StatusColor()))
}

// drawSegment draws a round-capped stroke of the given scene width. With a
// non-zero dash length the stroke alternates on and off along its length.
func drawSegment(ctx *renderContext, a, b geom.Point, width float64, c color.RGBA, alpha, dash float64) {
	pa, pb := ctx.pixel(a), ctx.pixel(b)
	half := math.Max(ctx.length(width)/2, 0.5)
	dashPx := ctx.length(dash)
	length := pa.Dist(pb)

	box := bbox(math.Min(pa.X, pb.X)-half, math.Min(pa.Y, pb.Y)-half,
		math.Max(pa.X, pb.X)+half, math.Max(pa.Y, pb.Y)+half, ctx.img.Bounds())

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			p := geom.Pt(float64(x)+0.5, float64(y)+0.5)
			if geom.DistanceToSegment(p, pa, pb) > half {
				continue
			}
			if dashPx > 0 && length > 0 {
				d := pb.Sub(pa)
				t := ((p.X-pa.X)*d.X + (p.Y-pa.Y)*d.Y) / length
				if t >= 0 && int(t/dashPx)%2 == 1 {
					continue
				}
			}
			blend(ctx.img, x, y, c, alpha)
		}
	}
}

func fillCircle(ctx *renderContext, center geom.Point, r float64, c color.RGBA) {
	pc := ctx.pixel(center)
	pr := ctx.length(r)
	box := bbox(pc.X-pr, pc.Y-pr, pc.X+pr, pc.Y+pr, ctx.img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if geom.Pt(float64(x)+0.5, float64(y)+0.5).Dist(pc) <= pr {
				ctx.img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillRoundRect(ctx *renderContext, r geom.Rect, radius float64, c color.RGBA) {
	lo, hi := ctx.pixel(r.Min), ctx.pixel(r.Max)
	pr := ctx.length(radius)
	inner := geom.Rect{Min: lo.Add(geom.Pt(pr, pr)), Max: hi.Sub(geom.Pt(pr, pr))}
	box := bbox(lo.X, lo.Y, hi.X, hi.Y, ctx.img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			p := geom.Pt(float64(x)+0.5, float64(y)+0.5)
			if p.Dist(inner.Clamp(p)) <= pr {
				ctx.img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawText draws text centred horizontally on at. With middle set the text
// is also centred vertically; otherwise at is the baseline.
func drawText(ctx *renderContext, at geom.Point, text string, size float64, c color.RGBA, middle bool) {
	if text == "" {
		return
	}
	face := ctx.face(size)
	p := ctx.pixel(at)
	width := font.MeasureString(face, text)

	baseline := p.Y
	if middle {
		// Cap height is roughly 0.7 of the ascent
		baseline += float64(face.Metrics().Ascent.Ceil()) * 0.35
	}

	d := &font.Drawer{
		Dst:  ctx.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(p.X*64) - width/2,
			Y: fixed.Int26_6(baseline * 64),
		},
	}
	d.DrawString(text)
}

// blend composites c over the pixel at (x, y) with the given opacity.
func blend(img *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	if alpha >= 1 {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*alpha + float64(d)*(1-alpha)))
	}
	img.SetRGBA(x, y, color.RGBA{mix(c.R, dst.R), mix(c.G, dst.G), mix(c.B, dst.B), 255})
}

// bbox returns the integer pixel rectangle covering the given extent,
// clipped to bounds.
func bbox(x0, y0, x1, y1 float64, bounds image.Rectangle) image.Rectangle {
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1))+1, int(math.Ceil(y1))+1)
	return r.Intersect(bounds)
}

func parseOr(s string, fallback color.RGBA) color.RGBA {
	c, err := scene.ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
