package ui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/combat"
	"github.com/samdwyer/underdark/internal/game"
	"github.com/samdwyer/underdark/internal/save"
)

// App runs the terminal frontend: the main menu, the play loop and every
// blocking interaction the session asks for.
type App struct {
	screen   *Screen
	renderer *Renderer
	session  *game.Session
	savePath string

	mouseX, mouseY int
}

// NewApp initializes the terminal and the renderer.
func NewApp(savePath string) (*App, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		savePath: savePath,
		mouseX:   -1,
		mouseY:   -1,
	}, nil
}

// Run shows the main menu and plays sessions until the player quits.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	for {
		a.renderTitle()
		switch a.menu("", []string{"Play a new game", "Continue last game", "Quit"}, 24) {
		case 0:
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			session, err := game.NewSession(ctx, game.DefaultConfig(), rng)
			if err != nil {
				return fmt.Errorf("starting game: %w", err)
			}
			a.play(ctx, session)
		case 1:
			snap, err := save.Read(a.savePath)
			if err != nil {
				a.msgBox("No saved game to load.", 24)
				continue
			}
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			session, err := game.RestoreSession(game.DefaultConfig(), rng, snap)
			if err != nil {
				a.msgBox("No saved game to load.", 24)
				continue
			}
			a.play(ctx, session)
		default:
			return nil
		}
	}
}

func (a *App) renderTitle() {
	a.screen.Clear()
	w, h := a.screen.Size()
	title := "TOMBS OF THE ANCIENT KINGS"
	a.screen.Print((w-len(title))/2, h/2-4, title,
		tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	a.screen.Show()
}

// play runs one session until the player exits. A living player's game is
// saved on exit; a dead player's save is removed.
func (a *App) play(ctx context.Context, session *game.Session) {
	a.session = session

	for {
		a.renderer.Render(session, a.mouseX, a.mouseY)

		intent, ok := a.nextIntent()
		if !ok {
			continue
		}

		if session.ApplyIntent(ctx, intent, a) == game.ExitGame {
			break
		}
	}

	if session.Player().Alive {
		if err := save.Write(a.savePath, session.Snapshot()); err != nil {
			a.msgBox(fmt.Sprintf("Could not save the game: %v", err), 40)
		}
	} else {
		_ = save.Remove(a.savePath)
	}
	a.session = nil
}

// nextIntent blocks for one input event and maps it to a player intent.
// ok is false for events that need no session action (mouse motion, resize).
func (a *App) nextIntent() (game.Intent, bool) {
	switch ev := a.screen.PollEvent().(type) {
	case *tcell.EventKey:
		return a.keyIntent(ev)
	case *tcell.EventMouse:
		a.mouseX, a.mouseY = ev.Position()
		return game.Intent{}, false
	case *tcell.EventResize:
		a.screen.Sync()
		return game.Intent{}, false
	}
	return game.Intent{}, false
}

func (a *App) keyIntent(ev *tcell.EventKey) (game.Intent, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.Intent{Kind: game.IntentExit}, true
	case tcell.KeyUp:
		return game.Intent{Kind: game.IntentMove, DY: -1}, true
	case tcell.KeyDown:
		return game.Intent{Kind: game.IntentMove, DY: 1}, true
	case tcell.KeyLeft:
		return game.Intent{Kind: game.IntentMove, DX: -1}, true
	case tcell.KeyRight:
		return game.Intent{Kind: game.IntentMove, DX: 1}, true
	}

	if ev.Key() != tcell.KeyRune {
		return game.Intent{}, false
	}

	switch ev.Rune() {
	case 'k':
		return game.Intent{Kind: game.IntentMove, DY: -1}, true
	case 'j':
		return game.Intent{Kind: game.IntentMove, DY: 1}, true
	case 'h':
		return game.Intent{Kind: game.IntentMove, DX: -1}, true
	case 'l':
		return game.Intent{Kind: game.IntentMove, DX: 1}, true
	case 'y':
		return game.Intent{Kind: game.IntentMove, DX: -1, DY: -1}, true
	case 'u':
		return game.Intent{Kind: game.IntentMove, DX: 1, DY: -1}, true
	case 'b':
		return game.Intent{Kind: game.IntentMove, DX: -1, DY: 1}, true
	case 'n':
		return game.Intent{Kind: game.IntentMove, DX: 1, DY: 1}, true
	case '.':
		return game.Intent{Kind: game.IntentWait}, true
	case 'g':
		return game.Intent{Kind: game.IntentPickUp}, true
	case 'i':
		if slot := a.inventoryMenu("Press the key next to an item to use it, or Esc to cancel."); slot >= 0 {
			return game.Intent{Kind: game.IntentUseItem, Slot: slot}, true
		}
		return game.Intent{}, false
	case 'd':
		if slot := a.inventoryMenu("Press the key next to an item to drop it, or Esc to cancel."); slot >= 0 {
			return game.Intent{Kind: game.IntentDropItem, Slot: slot}, true
		}
		return game.Intent{}, false
	case '<':
		return game.Intent{Kind: game.IntentDescend}, true
	case 'c':
		a.characterSheet()
		return game.Intent{Kind: game.IntentCharacterSheet}, true
	case 'q':
		return game.Intent{Kind: game.IntentExit}, true
	}
	return game.Intent{}, false
}

// inventoryMenu lists the inventory slot by slot; equipped gear is flagged.
func (a *App) inventoryMenu(header string) int {
	items := a.session.Inventory.Items()
	if len(items) == 0 {
		a.msgBox("Inventory is empty.", 24)
		return -1
	}

	options := make([]string, len(items))
	for i, item := range items {
		options[i] = item.Name
		if item.Equipment != nil && item.Equipment.Equipped {
			options[i] = fmt.Sprintf("%s (on %s)", item.Name, item.Equipment.Slot)
		}
	}
	return a.menu(header, options, inventoryWidth)
}

const inventoryWidth = 50

func (a *App) characterSheet() {
	stats := a.session.Stats()
	a.msgBoxLines([]string{
		"Character information",
		"",
		fmt.Sprintf("Level: %d", stats.Level),
		fmt.Sprintf("Experience: %d", stats.XP),
		fmt.Sprintf("Experience to level up: %d", stats.NextLevelXP),
		"",
		fmt.Sprintf("Maximum HP: %d", stats.MaxHP),
		fmt.Sprintf("Attack: %d", stats.Power),
		fmt.Sprintf("Defense: %d", stats.Defense),
	}, 30)
}

// ChooseLevelUp asks for the level-up reward.
func (a *App) ChooseLevelUp() combat.LevelUpChoice {
	a.renderer.Render(a.session, a.mouseX, a.mouseY)
	choice := a.menu("Level up! Choose a stat to raise:", []string{
		"Constitution (+20 HP)",
		"Strength (+1 attack)",
		"Agility (+1 defense)",
	}, 40)

	switch choice {
	case 0:
		return combat.ChoiceHP
	case 1:
		return combat.ChoicePower
	case 2:
		return combat.ChoiceDefense
	default:
		return combat.ChoiceInvalid
	}
}

// PickTile blocks until the player left-clicks a visible tile in range, or
// cancels with a right click or Escape.
func (a *App) PickTile(maxRange float64) (int, int, bool) {
	for {
		a.renderer.Render(a.session, a.mouseX, a.mouseY)

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape {
				return 0, 0, false
			}
		case *tcell.EventMouse:
			a.mouseX, a.mouseY = ev.Position()
			buttons := ev.Buttons()
			if buttons&tcell.Button2 != 0 {
				return 0, 0, false
			}
			if buttons&tcell.Button1 == 0 {
				continue
			}

			x, y := a.mouseX, a.mouseY
			if !a.session.InFOV(x, y) {
				continue
			}
			if maxRange > 0 && a.session.Player().Distance(x, y) > maxRange {
				continue
			}
			return x, y, true
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}
}

// PickMonster blocks until the player clicks a living monster in range.
func (a *App) PickMonster(maxRange float64) (int, bool) {
	for {
		x, y, ok := a.PickTile(maxRange)
		if !ok {
			return 0, false
		}

		id := a.session.Store.FighterAt(x, y)
		if id < 0 {
			continue
		}
		if e := a.session.Store.Get(id); e.AI == nil {
			continue
		}
		return id, true
	}
}
