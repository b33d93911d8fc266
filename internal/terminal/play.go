// Package terminal plays rounds on a line-oriented terminal.
//
// Each line read is either a command (":new", ":theme", ":quit") or a guess.
// The screen is redrawn after every line that changed the round or the theme.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/internal/game"
	"github.com/robalobadob/guessgame/internal/prefs"
)

// PrefsOwner is the preference owner used by terminal play.
const PrefsOwner = "terminal"

// Player runs the read-eval-draw loop for one round.
type Player struct {
	round  *game.Round
	theme  *prefs.ThemePreference
	render *Renderer
	in     io.Reader
	out    io.Writer

	view  game.View
	dirty bool
}

// NewPlayer binds round and theme to in and out.
func NewPlayer(round *game.Round, theme *prefs.ThemePreference, in io.Reader, out io.Writer) *Player {
	p := &Player{
		round:  round,
		theme:  theme,
		render: NewRenderer(theme.Theme()),
		in:     in,
		out:    out,
		view:   round.View(),
		dirty:  true,
	}
	round.Observe(func(v game.View) {
		p.view = v
		p.dirty = true
	})
	return p
}

// Run reads lines until EOF, ":quit" or ctx is done.
func (p *Player) Run(ctx context.Context) error {
	sc := bufio.NewScanner(p.in)
	p.draw()
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := p.handle(ctx, strings.TrimSpace(sc.Text()))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		p.draw()
	}
	return sc.Err()
}

// handle applies one input line. It reports whether the loop should stop.
func (p *Player) handle(ctx context.Context, line string) (bool, error) {
	switch line {
	case "":
		return false, nil
	case ":quit", ":q":
		return true, nil
	case ":new":
		p.round.Restart()
		return false, nil
	case ":theme":
		t, err := p.theme.Toggle(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("toggle theme")
			p.notice("Could not save theme")
			return false, nil
		}
		p.render.SetTheme(t)
		p.dirty = true
		return false, nil
	}
	if strings.HasPrefix(line, ":") {
		p.notice(fmt.Sprintf("Unknown command %s", line))
		return false, nil
	}

	if err := p.round.UpdateInput(line); err != nil {
		p.reject(err)
		return false, nil
	}
	if _, err := p.round.Submit(); err != nil {
		p.reject(err)
	}
	return false, nil
}

// reject explains a refused guess. ErrNotInDictionary already shows through the view message.
func (p *Player) reject(err error) {
	switch {
	case errors.Is(err, game.ErrRoundOver):
		p.notice("Round over. Type :new to play again")
	case errors.Is(err, game.ErrInvalidInput):
		p.notice(fmt.Sprintf("Use %d letters a-z", p.view.WordLength))
	case errors.Is(err, game.ErrIncompleteGuess):
		p.notice(fmt.Sprintf("Need %d letters", p.view.WordLength))
	case errors.Is(err, game.ErrNotInDictionary):
	default:
		log.Error().Err(err).Msg("guess")
	}
}

func (p *Player) notice(msg string) {
	_, _ = lipgloss.Fprintln(p.out, lipgloss.NewStyle().Foreground(p.render.p.TextDim).Render(msg))
}

func (p *Player) draw() {
	if !p.dirty {
		return
	}
	p.dirty = false
	_, _ = lipgloss.Fprintln(p.out, p.render.Screen(p.view))
}
