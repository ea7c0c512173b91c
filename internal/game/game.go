package game

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// reportWindowMs is how much recent play the copied report carries.
const reportWindowMs = 15000.0

// noticeMs is how long a transient notice stays on screen.
const noticeMs = 2000.0

// Game is the Ebiten front-end. It measures frame time, routes input to the
// session and renders the field, the HUD and the event feed.
type Game struct {
	width   int
	height  int
	session *Session
	sounds  SoundSink
	stars   *Starfield

	lastFrame time.Time
	paused    bool

	notice      string
	noticeTimer float64

	touchIDs []ebiten.TouchID
}

// New creates the front-end for cfg. sounds may be nil for a silent game;
// store may be nil to keep the best score in memory only.
func New(cfg Config, sounds SoundSink, store ScoreStore) (*Game, error) {
	if sounds == nil {
		sounds = &NopSounds{}
	}
	if store == nil {
		store = &MemoryScoreStore{}
	}
	s, err := NewSession(cfg, WithSounds(sounds), WithScoreStore(store))
	if err != nil {
		return nil, err
	}
	return &Game{
		width:   fieldWidth + feedPanelWidth,
		height:  fieldHeight,
		session: s,
		sounds:  sounds,
		stars:   NewStarfield(fieldWidth, fieldHeight, rand.New(rand.NewSource(time.Now().UnixNano()))), // #nosec G404 -- visual only
	}, nil
}

// Session returns the running session.
func (g *Game) Session() *Session { return g.session }

func (g *Game) Update() error {
	now := time.Now()
	dt := 0.0
	if !g.lastFrame.IsZero() {
		dt = float64(now.Sub(g.lastFrame)) / float64(time.Millisecond)
	}
	g.lastFrame = now

	g.handleKeys()
	if g.noticeTimer > 0 {
		g.noticeTimer -= dt
	}
	if g.paused {
		return nil
	}
	g.stars.Update(dt)
	g.handlePointer()
	g.session.Step(dt)
	return nil
}

// handleKeys processes edge-triggered key presses.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && !g.session.Over() {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.paused = false
		g.session.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sounds.SetMuted(!g.sounds.Muted())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := CopyToClipboard(SessionReport(g.session, reportWindowMs)); err != nil {
			log.Printf("game: %v", err)
			g.showNotice("copy failed")
		} else {
			g.showNotice("report copied")
		}
	}
}

// handlePointer routes mouse and touch input. Presses become clicks; the
// cursor or a held touch steers shapes that follow the pointer.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	g.session.PointerMove(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.session.Click(float64(mx), float64(my))
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		g.session.PointerMove(float64(tx), float64(ty))
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		g.session.Click(float64(tx), float64(ty))
	}
}

func (g *Game) showNotice(msg string) {
	g.notice = msg
	g.noticeTimer = noticeMs
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 4, G: 4, B: 12, A: 255})
	g.stars.Draw(screen)

	area := g.session.Config().Area
	ax, ay, as := float32(area.X), float32(area.Y), float32(area.Size)
	vector.FillRect(screen, ax, ay, as, as, color.RGBA{R: 0, G: 0, B: 0, A: 120}, false)
	vector.StrokeRect(screen, ax, ay, as, as, 2, color.RGBA{R: 90, G: 90, B: 140, A: 255}, false)

	g.session.Draw(clipToArea(screen, area))
	drawHUD(screen, area, hudLines(g.session, g.sounds.Muted()))

	switch {
	case g.session.Over():
		drawOverlay(screen, area, "GAME OVER", "R to restart  C to copy the report")
	case g.paused:
		drawOverlay(screen, area, "PAUSED", "P to resume")
	}
	if g.noticeTimer > 0 {
		drawCentredText(screen, g.notice, area.CenterX(), area.Bottom()-30, 1, color.RGBA{R: 230, G: 230, B: 120, A: 255})
	}

	g.session.Feed().Draw(screen, fieldWidth, g.height)
	drawKeyLegend(screen, fieldWidth)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
