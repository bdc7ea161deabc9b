package trackswipe

import (
	"image"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground = Color{R: 0.04, G: 0.04, B: 0.06, A: 1}
	colorCard       = Color{R: 0.12, G: 0.11, B: 0.16, A: 0.96}
	colorCardEdge   = Color{R: 1, G: 1, B: 1, A: 0.12}
	colorTrack      = Color{R: 1, G: 1, B: 1, A: 0.2}
	colorMuted      = Color{R: 1, G: 1, B: 1, A: 0.6}
	colorDim        = Color{R: 0.42, G: 0.45, B: 0.5, A: 1}
	colorUnplayed   = Color{R: 1, G: 1, B: 1, A: 0.3}
	colorPlayed     = Color{R: 1, G: 0.6, B: 0.62, A: 0.9}
	colorRule       = Color{R: 0.12, G: 0.16, B: 0.22, A: 1}
)

// whiteSubImage is the source texture for solid triangles.
var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(ColorWhite.RGBA())
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

func fillRect(dst *ebiten.Image, r Rect, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), true)
}

func strokeRect(dst *ebiten.Image, r Rect, width float64, c Color) {
	if c.A <= 0 {
		return
	}
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), c.RGBA(), true)
}

func fillCircle(dst *ebiten.Image, cx, cy, radius float64, c Color) {
	if radius <= 0 || c.A <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(radius), c.RGBA(), true)
}

// fillRoundRect fills r with corners of the given radius, built from two
// rectangles and four circles.
func fillRoundRect(dst *ebiten.Image, r Rect, radius float64, c Color) {
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	if radius <= 0 {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, Rect{X: r.X + radius, Y: r.Y, Width: r.Width - 2*radius, Height: r.Height}, c)
	fillRect(dst, Rect{X: r.X, Y: r.Y + radius, Width: radius, Height: r.Height - 2*radius}, c)
	fillRect(dst, Rect{X: r.X + r.Width - radius, Y: r.Y + radius, Width: radius, Height: r.Height - 2*radius}, c)
	fillCircle(dst, r.X+radius, r.Y+radius, radius, c)
	fillCircle(dst, r.X+r.Width-radius, r.Y+radius, radius, c)
	fillCircle(dst, r.X+radius, r.Y+r.Height-radius, radius, c)
	fillCircle(dst, r.X+r.Width-radius, r.Y+r.Height-radius, radius, c)
}

func fillTriangle(dst *ebiten.Image, x0, y0, x1, y1, x2, y2 float64, c Color) {
	rgba := c.RGBA()
	cr := float32(rgba.R) / 255
	cg := float32(rgba.G) / 255
	cb := float32(rgba.B) / 255
	ca := float32(rgba.A) / 255
	vs := []ebiten.Vertex{
		{DstX: float32(x0), DstY: float32(y0), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: float32(x1), DstY: float32(y1), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: float32(x2), DstY: float32(y2), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, []uint16{0, 1, 2}, whiteSubImage, op)
}

// --- Screen drawing ---

// Draw renders the review screen.
func (s *Screen) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground.RGBA())
	w := float64(s.cfg.Width)
	h := float64(s.cfg.Height)
	sess := s.reviewer.Session()

	drawText(screen, s.fonts.title(), "AI Music Review", w/2, 22, TextAlignCenter, ColorWhite, 1)
	drawText(screen, s.fonts.small(), "Swipe through AI-generated tracks. Like or dislike to review",
		w/2, 56, TextAlignCenter, colorDim, 1)
	fillRect(screen, Rect{X: 0, Y: 78, Width: w, Height: 1}, colorRule)

	switch {
	case s.card.Visible:
		s.drawCard(screen)
	case sess.LoadErr != nil:
		drawText(screen, s.fonts.label(), "Could not load tracks", w/2, 300, TextAlignCenter, ColorReject, 1)
		drawText(screen, s.fonts.small(), sess.LoadErr.Error(), w/2, 340, TextAlignCenter, colorMuted, 1)
	case sess.Complete():
		drawText(screen, s.fonts.title(), "All Done!", w/2, 280, TextAlignCenter, ColorWhite, 1)
		drawText(screen, s.fonts.body(), "You've reviewed all available tracks. Great work!",
			w/2, 325, TextAlignCenter, colorMuted, 1)
		drawText(screen, s.fonts.small(), "Come back later for more music", w/2, 360, TextAlignCenter, colorDim, 1)
	default:
		drawText(screen, s.fonts.body(), "Loading tracks...", w/2, 330, TextAlignCenter, colorMuted, 1)
	}
	if s.resetBtn.Visible {
		label := "Reset for Demo"
		if sess.LoadErr != nil {
			label = "Retry"
		}
		s.drawButton(screen, s.resetBtn.WorldBounds(), label, Color{R: 0.2, G: 0.22, B: 0.26, A: 0.8}, !sess.Pending)
	}

	fillRect(screen, Rect{X: 0, Y: h - 48, Width: w, Height: 1}, colorRule)
	reviewed, remaining := sess.Counts()
	drawText(screen, s.fonts.small(), "Reviewed: "+strconv.Itoa(reviewed)+"   ·   Remaining: "+strconv.Itoa(remaining),
		w/2, h-32, TextAlignCenter, colorDim, 1)

	s.drawNotice(screen)
	if s.debugOverlay {
		drawDebugOverlay(screen)
	}
	s.flushScreenshots(screen)
}

func (s *Screen) drawButton(dst *ebiten.Image, r Rect, label string, c Color, enabled bool) {
	if !enabled {
		c = c.WithAlpha(c.A * 0.5)
	}
	fillRoundRect(dst, r, 14, c)
	tc := ColorWhite
	if !enabled {
		tc = colorMuted
	}
	drawText(dst, s.fonts.body(), label, r.X+r.Width/2, r.MidY()-10, TextAlignCenter, tc, 1)
}

// drawCard renders the card offscreen in its own frame, then composites it
// with the drag translation, tilt and scale.
func (s *Screen) drawCard(screen *ebiten.Image) {
	cb := s.card.Bounds
	cw, ch := int(cb.Width), int(cb.Height)
	if s.cardImg == nil || s.cardImg.Bounds().Dx() != cw || s.cardImg.Bounds().Dy() != ch {
		if s.cardImg != nil {
			s.cardImg.Deallocate()
		}
		s.cardImg = ebiten.NewImage(cw, ch)
	}
	img := s.cardImg
	img.Clear()

	w, h := cb.Width, cb.Height
	fillRoundRect(img, Rect{Width: w, Height: h}, 24, colorCard)
	strokeRect(img, Rect{X: 1, Y: 1, Width: w - 2, Height: h - 2}, 1, colorCardEdge)

	// Icon.
	fillCircle(img, w/2, 72, 32, ColorPink)
	fillCircle(img, w/2, 72, 26, ColorAccent)
	fillCircle(img, w/2-5, 82, 7, ColorWhite)
	fillRect(img, Rect{X: w/2 + 0.5, Y: 56, Width: 3, Height: 26}, ColorWhite)
	fillRect(img, Rect{X: w/2 + 0.5, Y: 56, Width: 10, Height: 3}, ColorWhite)

	if t, ok := s.reviewer.Session().Current(); ok {
		drawText(img, s.fonts.title(), ellipsize(t.Title, 28), w/2, 126, TextAlignCenter, ColorWhite, 1)
	}

	s.drawPlayer(img)

	disabled := s.reviewDisabled()
	s.drawButton(img, s.local(s.dislike), "Dislike", ColorReject.WithAlpha(0.35), !disabled)
	s.drawButton(img, s.local(s.like), "Like", ColorLike.WithAlpha(0.35), !disabled)

	if ov := s.cardView.Overlay(); ov.Visible {
		fillRoundRect(img, Rect{Width: w, Height: h}, 24, ov.Tint.WithAlpha(ov.FillAlpha))
		strokeRect(img, Rect{X: 1, Y: 1, Width: w - 2, Height: h - 2}, 2, ov.Tint.WithAlpha(ov.BorderAlpha))
		drawText(img, s.fonts.label(), ov.Label, w/2, 150, TextAlignCenter, ov.Tint.WithAlpha(ov.LabelAlpha), ov.LabelScale)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	sc := s.cardView.Scale()
	op.GeoM.Scale(sc, sc)
	op.GeoM.Rotate(s.cardView.Rotation() * math.Pi / 180)
	wb := s.card.WorldBounds()
	op.GeoM.Translate(wb.X+w/2, wb.Y+h/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func (s *Screen) drawPlayer(img *ebiten.Image) {
	// Play button.
	pb := s.local(s.playBtn)
	cx, cy := pb.X+pb.Width/2, pb.MidY()
	fillCircle(img, cx, cy, pb.Width/2, ColorPink)
	fillCircle(img, cx, cy, pb.Width/2-3, ColorAccent)
	if s.playback.Playing() {
		fillRect(img, Rect{X: cx - 9, Y: cy - 11, Width: 6, Height: 22}, ColorWhite)
		fillRect(img, Rect{X: cx + 3, Y: cy - 11, Width: 6, Height: 22}, ColorWhite)
	} else {
		fillTriangle(img, cx-7, cy-12, cx-7, cy+12, cx+13, cy, ColorWhite)
	}

	// Progress.
	pr := s.local(s.progress)
	aff := s.progressScrub.Affordance()
	frac := s.playback.Fraction()
	if aff.Highlight {
		wave := Rect{X: pr.X, Y: pr.Y - 46, Width: pr.Width, Height: 44}
		s.waveBuf = s.waveform.Layout(wave, frac, s.waveBuf)
		for _, b := range s.waveBuf {
			c := colorUnplayed
			if b.Played {
				c = colorPlayed
			}
			fillRect(img, b.Rect, c)
		}
	}
	s.drawTrack(img, pr, frac, aff, 20)
	drawText(img, s.fonts.small(), FormatTime(s.playback.Position()), pr.X, pr.Y+pr.Height+2, TextAlignLeft, colorMuted, 1)
	drawText(img, s.fonts.small(), FormatTime(s.playback.Duration()), pr.X+pr.Width, pr.Y+pr.Height+2, TextAlignRight, colorMuted, 1)

	// Volume.
	vr := s.local(s.volume)
	fillRect(img, Rect{X: vr.X - 22, Y: vr.MidY() - 4, Width: 5, Height: 8}, colorMuted)
	fillTriangle(img, vr.X-18, vr.MidY()-4, vr.X-10, vr.MidY()-9, vr.X-10, vr.MidY()+9, colorMuted)
	fillTriangle(img, vr.X-18, vr.MidY()+4, vr.X-18, vr.MidY()-4, vr.X-10, vr.MidY()+9, colorMuted)
	s.drawTrack(img, vr, VolumeToFraction(s.playback.Volume()), s.volumeScrub.Affordance(), 16)
}

// drawTrack draws a scrub track with its fill and handle.
func (s *Screen) drawTrack(img *ebiten.Image, r Rect, frac float64, aff Affordance, handle float64) {
	th := aff.TrackThickness
	track := Rect{X: r.X, Y: r.MidY() - th/2, Width: r.Width, Height: th}
	fillRoundRect(img, track, th/2, colorTrack)
	fill := track
	fill.Width = track.Width * clamp01(frac)
	fillRoundRect(img, fill, th/2, ColorAccent)
	if aff.Highlight {
		fillRoundRect(img, track, th/2, ColorPink.WithAlpha(0.2))
	}
	if !aff.HandleVisible {
		return
	}
	size := handle * aff.HandleScale
	hx := r.X + r.Width*clamp01(frac) - HandleOffset(frac*100, size) + size/2
	fillCircle(img, hx, r.MidY(), size/2+1, ColorPink.WithAlpha(0.4))
	fillCircle(img, hx, r.MidY(), size/2, ColorWhite.WithAlpha(0.9))
}

func (s *Screen) drawNotice(screen *ebiten.Image) {
	n := s.notice
	if n == nil {
		return
	}
	w := float64(s.cfg.Width)
	box := Rect{X: 24, Y: float64(s.cfg.Height) - 130, Width: w - 48, Height: 66}
	c := Color{R: 0.1, G: 0.1, B: 0.12, A: 0.95}
	edge := ColorLike
	switch n.Kind {
	case NoticeError:
		edge = ColorReject
	case NoticeInfo:
		edge = ColorAccent
	}
	a := clamp01(s.noticeAlpha)
	fillRoundRect(screen, box, 12, c.WithAlpha(c.A*a))
	fillRect(screen, Rect{X: box.X, Y: box.Y + 10, Width: 4, Height: box.Height - 20}, edge.WithAlpha(a))
	drawText(screen, s.fonts.body(), n.Title, box.X+18, box.Y+12, TextAlignLeft, ColorWhite.WithAlpha(a), 1)
	drawText(screen, s.fonts.small(), n.Description, box.X+18, box.Y+38, TextAlignLeft, colorMuted.WithAlpha(colorMuted.A*a), 1)
}

// local returns n's bounds in the card's frame, ignoring the card's drag offset.
func (s *Screen) local(n *Node) Rect {
	wb := n.WorldBounds()
	cb := s.card.WorldBounds()
	return wb.Translate(-cb.X, -cb.Y)
}

func ellipsize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
