package prefs

import (
	"context"
	"sync"
)

// ThemeKey is the preference key holding the theme.
const ThemeKey = "theme"

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme; anything unknown is light.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Icon is the toggle button glyph for the theme.
func (t Theme) Icon() string {
	if t == ThemeDark {
		return "🌞"
	}
	return "🌙"
}

// ThemePreference is one owner's theme flag. It is read from the store once
// by LoadTheme and written back on every Toggle.
type ThemePreference struct {
	mu    sync.Mutex
	store Store
	owner string
	dark  bool
}

// LoadTheme reads owner's theme from st.
func LoadTheme(ctx context.Context, st Store, owner string) (*ThemePreference, error) {
	v, _, err := st.Get(ctx, owner, ThemeKey)
	if err != nil {
		return nil, err
	}
	return &ThemePreference{store: st, owner: owner, dark: ParseTheme(v) == ThemeDark}, nil
}

// Dark reports whether the dark theme is active.
func (t *ThemePreference) Dark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Theme returns the current theme.
func (t *ThemePreference) Theme() Theme {
	return themeOf(t.Dark())
}

func themeOf(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips the theme and persists it. On a write error the flag is not flipped.
func (t *ThemePreference) Toggle(ctx context.Context) (Theme, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := themeOf(!t.dark)
	if err := t.store.Set(ctx, t.owner, ThemeKey, string(next)); err != nil {
		return themeOf(t.dark), err
	}
	t.dark = next == ThemeDark
	return next, nil
}
