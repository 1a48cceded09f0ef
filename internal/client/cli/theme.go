package cli

import "context"

// palette is a set of ANSI SGR sequences for one color scheme.
type palette struct {
	title  string
	accent string
	muted  string
	warn   string
	price  string
}

const ansiReset = "\033[0m"

var (
	lightPalette = palette{
		title:  "\033[1;34m",
		accent: "\033[32m",
		muted:  "\033[90m",
		warn:   "\033[31m",
		price:  "\033[35m",
	}
	darkPalette = palette{
		title:  "\033[1;96m",
		accent: "\033[92m",
		muted:  "\033[37m",
		warn:   "\033[91m",
		price:  "\033[93m",
	}
)

// Theme renders text in the light or dark palette. With color disabled
// (output is not a terminal) every helper returns its input unchanged.
type Theme struct {
	color bool
	dark  bool
}

func NewTheme(color bool) *Theme {
	return &Theme{color: color}
}

// Apply switches the palette. It satisfies services.ThemeApplier.
func (t *Theme) Apply(dark bool) { t.dark = dark }

func (t *Theme) Dark() bool { return t.dark }

func (t *Theme) paint(pick func(palette) string, s string) string {
	if !t.color || s == "" {
		return s
	}
	p := lightPalette
	if t.dark {
		p = darkPalette
	}
	return pick(p) + s + ansiReset
}

func (t *Theme) Title(s string) string  { return t.paint(func(p palette) string { return p.title }, s) }
func (t *Theme) Accent(s string) string { return t.paint(func(p palette) string { return p.accent }, s) }
func (t *Theme) Muted(s string) string  { return t.paint(func(p palette) string { return p.muted }, s) }
func (t *Theme) Warn(s string) string   { return t.paint(func(p palette) string { return p.warn }, s) }
func (t *Theme) Price(s string) string  { return t.paint(func(p palette) string { return p.price }, s) }

// ToggleTheme flips dark mode and persists the choice.
func (a *App) ToggleTheme(ctx context.Context) error {
	dark, err := a.prefService.Toggle(ctx)
	if err != nil {
		a.log.Warn(ctx, "save theme preference", "err", err)
	}
	state := "off"
	if dark {
		state = "on"
	}
	a.println(a.theme.Accent("Dark mode " + state + "."))
	return nil
}
