package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keycompose/internal/config"
	"github.com/dshills/keycompose/internal/input/key"
	"github.com/dshills/keycompose/internal/input/sequence"
)

var (
	styleTitle = tcell.StyleDefault.Bold(true)
	styleDim   = tcell.StyleDefault.Dim(true)
)

// resetExpired is the interrupt payload posted when the reset delay runs out.
type resetExpired struct{}

// tryout is the interactive sequence tester. It feeds terminal key events
// through the store's matching operations and renders the outcome.
type tryout struct {
	store  *config.Store
	screen tcell.Screen

	composing  bool
	pending    sequence.Sequence
	typed      []rune
	status     string
	resetTimer *time.Timer
}

func runTry(store *config.Store) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	t := &tryout{store: store, screen: screen, status: "idle"}
	t.draw()
	return t.loop()
}

func (t *tryout) loop() error {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				t.stopResetTimer()
				return nil
			}
			if ev.Key() == tcell.KeyEscape && !t.store.IsComposeTrigger(key.Named(key.KeyEscape)) {
				if !t.composing {
					t.stopResetTimer()
					return nil
				}
				t.reset("cancelled")
			} else {
				t.handle(symbolFromEvent(ev))
			}
			t.draw()

		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(resetExpired); ok && t.composing {
				t.reset("timed out")
				t.draw()
			}

		case *tcell.EventResize:
			t.screen.Sync()
			t.draw()
		}
	}
}

func (t *tryout) handle(sym key.Symbol) {
	if !sym.Usable() {
		return
	}
	if t.store.CaseInsensitive() && sym.IsPrintable() {
		sym = key.Printable(strings.ToLower(sym.Text()))
	}

	if t.isTrigger(sym) {
		t.reset("composing")
		t.composing = true
		t.armResetTimer()
		return
	}

	if !t.composing {
		t.echo(sym)
		return
	}

	t.pending = t.pending.Append(sym)
	switch {
	case t.store.IsValidSequence(t.pending):
		status := "matched " + t.pending.Labels()
		t.emit(t.store.Result(t.pending))
		t.reset(status)

	case t.store.IsValidPrefix(t.pending):
		t.status = "composing " + t.pending.Labels()
		t.armResetTimer()

	default:
		status := "no match for " + t.pending.Labels()
		if t.store.BeepOnInvalid() {
			t.screen.Beep()
		}
		if !t.store.DiscardOnInvalid() {
			for _, s := range t.pending {
				t.echo(s)
			}
		}
		t.reset(status)
	}
}

// isTrigger accepts the configured compose key plus F2. The configured key
// is normally a bare modifier, which terminals never deliver as a key event,
// so F2 stands in for it here.
func (t *tryout) isTrigger(sym key.Symbol) bool {
	return t.store.IsComposeTrigger(sym) || sym == key.Named(key.KeyF2)
}

func (t *tryout) emit(result string) {
	t.typed = append(t.typed, []rune(result)...)
	if t.store.InsertZWSP() {
		t.typed = append(t.typed, '​')
	}
}

// echo appends a non-composing key to the typed line. Return clears the
// line, Backspace trims it.
func (t *tryout) echo(sym key.Symbol) {
	if sym.IsPrintable() {
		t.typed = append(t.typed, []rune(sym.Text())...)
		return
	}
	switch sym.Key() {
	case key.KeyReturn:
		t.typed = t.typed[:0]
	case key.KeyBackspace:
		if n := len(t.typed); n > 0 {
			t.typed = t.typed[:n-1]
		}
	}
}

func (t *tryout) reset(status string) {
	t.stopResetTimer()
	t.composing = false
	t.pending = nil
	t.status = status
}

// armResetTimer abandons the pending sequence after the configured delay.
// The timer goroutine only posts an event; state changes stay on the event
// loop.
func (t *tryout) armResetTimer() {
	t.stopResetTimer()
	d := t.store.ResetDelay()
	if d <= 0 {
		return
	}
	t.resetTimer = time.AfterFunc(time.Duration(d)*time.Millisecond, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(resetExpired{}))
	})
}

func (t *tryout) stopResetTimer() {
	if t.resetTimer != nil {
		t.resetTimer.Stop()
		t.resetTimer = nil
	}
}

func (t *tryout) draw() {
	s := t.store
	t.screen.Clear()

	drawText(t.screen, 0, 0, styleTitle, "keycompose "+version)
	drawText(t.screen, 0, 1, styleDim, fmt.Sprintf(
		"compose key %s   language %s   sequences %d   reset_delay %d",
		s.ComposeKey().Name(), displayLanguage(s.Language()), s.EntryCount(), s.ResetDelay()))
	drawText(t.screen, 0, 2, styleDim, fmt.Sprintf(
		"case_insensitive %v   discard_on_invalid %v   beep_on_invalid %v   insert_zwsp %v",
		s.CaseInsensitive(), s.DiscardOnInvalid(), s.BeepOnInvalid(), s.InsertZWSP()))
	drawText(t.screen, 0, 3, styleDim,
		"F2 starts a sequence (stands in for the compose key). Esc cancels, Ctrl+C exits.")

	drawText(t.screen, 0, 5, tcell.StyleDefault, "state: "+t.status)

	line := []rune("> " + string(t.typed))
	w, _ := t.screen.Size()
	if w > 0 && len(line) > w {
		line = line[len(line)-w:]
	}
	drawText(t.screen, 0, 7, tcell.StyleDefault, string(line))
	t.screen.ShowCursor(len(line), 7)

	t.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// symbolFromEvent maps a terminal key event to a Symbol. Keys with no
// mapping come back as the zero Symbol, which matching ignores.
func symbolFromEvent(ev *tcell.EventKey) key.Symbol {
	switch ev.Key() {
	case tcell.KeyRune:
		return key.PrintableRune(ev.Rune())
	case tcell.KeyEnter:
		return key.Named(key.KeyReturn)
	case tcell.KeyTab:
		return key.Named(key.KeyTab)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Named(key.KeyBackspace)
	case tcell.KeyDelete:
		return key.Named(key.KeyDelete)
	case tcell.KeyInsert:
		return key.Named(key.KeyInsert)
	case tcell.KeyEscape:
		return key.Named(key.KeyEscape)
	case tcell.KeyHome:
		return key.Named(key.KeyHome)
	case tcell.KeyEnd:
		return key.Named(key.KeyEnd)
	case tcell.KeyPgUp:
		return key.Named(key.KeyPageUp)
	case tcell.KeyPgDn:
		return key.Named(key.KeyPageDown)
	case tcell.KeyUp:
		return key.Named(key.KeyUp)
	case tcell.KeyDown:
		return key.Named(key.KeyDown)
	case tcell.KeyLeft:
		return key.Named(key.KeyLeft)
	case tcell.KeyRight:
		return key.Named(key.KeyRight)
	case tcell.KeyF1:
		return key.Named(key.KeyF1)
	case tcell.KeyF2:
		return key.Named(key.KeyF2)
	case tcell.KeyF3:
		return key.Named(key.KeyF3)
	case tcell.KeyF4:
		return key.Named(key.KeyF4)
	case tcell.KeyF5:
		return key.Named(key.KeyF5)
	case tcell.KeyF6:
		return key.Named(key.KeyF6)
	case tcell.KeyF7:
		return key.Named(key.KeyF7)
	case tcell.KeyF8:
		return key.Named(key.KeyF8)
	case tcell.KeyF9:
		return key.Named(key.KeyF9)
	case tcell.KeyF10:
		return key.Named(key.KeyF10)
	case tcell.KeyF11:
		return key.Named(key.KeyF11)
	case tcell.KeyF12:
		return key.Named(key.KeyF12)
	default:
		return key.Symbol{}
	}
}
