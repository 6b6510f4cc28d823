package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/game"
)

// PanelHeight is the height of the status panel under the map.
const PanelHeight = 7

// BarWidth is the width of the HP bar.
const BarWidth = 20

var (
	colorDarkWall    = tcell.NewRGBColor(0, 0, 100)
	colorLightWall   = tcell.NewRGBColor(130, 110, 50)
	colorDarkGround  = tcell.NewRGBColor(50, 50, 150)
	colorLightGround = tcell.NewRGBColor(200, 180, 50)
)

// Renderer draws a session to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the full frame: map, entities, status panel and message log.
// mouseX and mouseY feed the look-under-cursor line; pass -1,-1 when the
// pointer is idle.
func (r *Renderer) Render(s *game.Session, mouseX, mouseY int) {
	r.screen.Clear()
	r.renderMap(s)
	r.renderEntities(s)
	r.renderPanel(s, mouseX, mouseY)
	r.screen.Show()
}

func (r *Renderer) renderMap(s *game.Session) {
	for y := 0; y < s.Level.Height; y++ {
		for x := 0; x < s.Level.Width; x++ {
			tile := s.Level.Tile(x, y)
			if !tile.Explored && !s.InFOV(x, y) && !tile.Lit {
				continue
			}

			bright := s.InFOV(x, y) || tile.Lit
			var glyph rune
			var color tcell.Color
			switch {
			case tile.Blocked && bright:
				glyph, color = '#', colorLightWall
			case tile.Blocked:
				glyph, color = '#', colorDarkWall
			case bright:
				glyph, color = '.', colorLightGround
			default:
				glyph, color = '.', colorDarkGround
			}
			r.screen.SetContent(x, y, glyph, tcell.StyleDefault.Foreground(color))
		}
	}
}

// renderEntities draws visible entities, non-blockers first so corpses and
// items sit under whoever stands on them.
func (r *Renderer) renderEntities(s *game.Session) {
	drawable := make([]*entity.Entity, 0, s.Store.Len())
	for _, e := range s.Store.All() {
		if s.IsVisible(e) {
			drawable = append(drawable, e)
		}
	}
	sort.SliceStable(drawable, func(i, j int) bool {
		return !drawable[i].Blocks && drawable[j].Blocks
	})

	for _, e := range drawable {
		r.screen.SetContent(e.X, e.Y, e.Glyph, tcell.StyleDefault.Foreground(e.Color))
	}
}

func (r *Renderer) renderPanel(s *game.Session, mouseX, mouseY int) {
	panelY := s.Level.Height

	stats := s.Stats()
	r.renderBar(1, panelY+1, "HP", stats.HP, stats.MaxHP, tcell.ColorRed, tcell.ColorDarkRed)
	r.screen.Print(1, panelY+3, fmt.Sprintf("Dungeon level: %d", stats.DungeonLevel),
		tcell.StyleDefault.Foreground(tcell.ColorWhite))

	if names := r.namesUnderMouse(s, mouseX, mouseY); names != "" {
		r.screen.Print(1, panelY, names, tcell.StyleDefault.Foreground(tcell.ColorLightGray))
	}

	// Newest messages at the bottom of the panel.
	msgs := s.Log.Messages()
	msgX := BarWidth + 2
	y := panelY + PanelHeight - 1
	for i := len(msgs) - 1; i >= 0 && y > panelY; i-- {
		r.screen.Print(msgX, y, msgs[i].Text, tcell.StyleDefault.Foreground(msgs[i].Color))
		y--
	}
}

// renderBar draws a labeled value bar, filled proportionally.
func (r *Renderer) renderBar(x, y int, name string, value, maximum int, barColor, backColor tcell.Color) {
	filled := 0
	if maximum > 0 {
		filled = value * BarWidth / maximum
	}

	for i := 0; i < BarWidth; i++ {
		color := backColor
		if i < filled {
			color = barColor
		}
		r.screen.SetContent(x+i, y, ' ', tcell.StyleDefault.Background(color))
	}

	label := fmt.Sprintf("%s: %d/%d", name, value, maximum)
	labelX := x + (BarWidth-len(label))/2
	for i, ch := range label {
		color := backColor
		if labelX-x+i < filled {
			color = barColor
		}
		r.screen.SetContent(labelX+i, y, ch,
			tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(color))
	}
}

// namesUnderMouse lists the visible entities on the hovered tile.
func (r *Renderer) namesUnderMouse(s *game.Session, mouseX, mouseY int) string {
	if mouseX < 0 || !s.Level.InBounds(mouseX, mouseY) {
		return ""
	}

	var names []string
	for _, e := range s.Store.All() {
		if e.X == mouseX && e.Y == mouseY && s.IsVisible(e) {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, ", ")
}
