package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const hudLineSpacing = 16

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// statuser is implemented by shapes that can describe their progress.
type statuser interface {
	Status() string
}

// drawText draws s with its top-left corner at (x,y), scaled by scale.
func drawText(dst *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = hudLineSpacing
	text.Draw(dst, s, hudFace, op)
}

// drawCentredText draws s centred horizontally on cx.
func drawCentredText(dst *ebiten.Image, s string, cx, y, scale float64, c color.Color) {
	w, _ := text.Measure(s, hudFace, hudLineSpacing)
	drawText(dst, s, cx-w*scale/2, y, scale, c)
}

// hudLines returns the status block shown over the play area.
func hudLines(s *Session, muted bool) []string {
	lines := []string{
		fmt.Sprintf("SCORE %d", s.Score()),
		fmt.Sprintf("BEST  %d", s.BestScore()),
		fmt.Sprintf("LEVEL %d", s.Level()),
	}
	if rem := s.LevelRemaining(); rem >= 0 {
		lines = append(lines, fmt.Sprintf("NEXT  %ds", (int(rem)+999)/1000))
	}
	if cur := s.CurrentShape(); cur != nil {
		lines = append(lines, strings.ToUpper(cur.Name()))
		if st, ok := cur.(statuser); ok {
			lines = append(lines, st.Status())
		}
	}
	if muted {
		lines = append(lines, "muted")
	}
	return lines
}

// drawHUD renders the status block in the top-left corner of the play area.
func drawHUD(screen *ebiten.Image, area PlayArea, lines []string) {
	const padX, padY = 6, 4
	maxW := 0.0
	for _, l := range lines {
		if w, _ := text.Measure(l, hudFace, hudLineSpacing); w > maxW {
			maxW = w
		}
	}
	bx, by := float32(area.X+4), float32(area.Y+4)
	bw := float32(maxW + padX*2)
	bh := float32(len(lines)*hudLineSpacing + padY*2)
	vector.FillRect(screen, bx, by, bw, bh, color.RGBA{R: 6, G: 6, B: 14, A: 180}, false)
	vector.StrokeRect(screen, bx, by, bw, bh, 1, color.RGBA{R: 70, G: 70, B: 120, A: 180}, false)
	drawText(screen, strings.Join(lines, "\n"), float64(bx)+padX, float64(by)+padY, 1, color.White)
}

// drawOverlay dims the play area and shows a title with an optional hint.
func drawOverlay(screen *ebiten.Image, area PlayArea, title, hint string) {
	vector.FillRect(screen, float32(area.X), float32(area.Y), float32(area.Size), float32(area.Size),
		color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)
	cy := area.CenterY()
	drawCentredText(screen, title, area.CenterX(), cy-40, 3, color.White)
	if hint != "" {
		drawCentredText(screen, hint, area.CenterX(), cy+10, 1, color.RGBA{R: 200, G: 200, B: 220, A: 255})
	}
}

// drawKeyLegend prints the key bindings in the feed panel footer.
func drawKeyLegend(screen *ebiten.Image, panelX int) {
	drawText(screen, "P pause  R restart  C copy  M mute", float64(panelX+8), fieldHeight-18, 1,
		color.RGBA{R: 140, G: 140, B: 170, A: 255})
}
