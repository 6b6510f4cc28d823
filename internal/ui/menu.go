package ui

import (
	"github.com/gdamore/tcell/v2"
)

// menu draws a centered option box over the current frame and blocks until
// the player picks an entry by letter. Returns the option index, or -1 on
// cancel. With no options any key dismisses the box.
func (a *App) menu(header string, options []string, width int) int {
	if len(options) > 26 {
		panic("ui: menu cannot hold more than 26 options")
	}

	screenW, screenH := a.screen.Size()
	height := len(options) + 2
	if header != "" {
		height += 2
	}
	x := (screenW - width) / 2
	y := (screenH - height) / 2

	style := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	a.drawBox(x, y, width, height, style)

	textY := y + 1
	if header != "" {
		a.screen.Print(x+2, textY, header, style)
		textY += 2
	}
	for i, option := range options {
		line := string(rune('a'+i)) + ") " + option
		a.screen.Print(x+2, textY+i, line, style)
	}
	a.screen.Show()

	for {
		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape:
				return -1
			case tcell.KeyRune:
				ch := ev.Rune()
				if len(options) == 0 {
					return -1
				}
				if ch >= 'a' && int(ch-'a') < len(options) {
					return int(ch - 'a')
				}
			default:
				if len(options) == 0 {
					return -1
				}
			}
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
}

// msgBox shows a dismissable text box.
func (a *App) msgBox(text string, width int) {
	a.menu(text, nil, width)
}

// msgBoxLines shows a dismissable multi-line text box.
func (a *App) msgBoxLines(lines []string, width int) {
	screenW, screenH := a.screen.Size()
	height := len(lines) + 2
	x := (screenW - width) / 2
	y := (screenH - height) / 2

	style := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	a.drawBox(x, y, width, height, style)
	for i, line := range lines {
		a.screen.Print(x+2, y+1+i, line, style)
	}
	a.screen.Show()

	for {
		switch a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
}

func (a *App) drawBox(x, y, width, height int, style tcell.Style) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			a.screen.SetContent(x+dx, y+dy, ' ', style)
		}
	}
}
