package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/shopsphere/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/shopsphere/internal/logging"
)

const DarkModeKey = "dark_mode"

// ThemeApplier switches the presentation between light and dark.
type ThemeApplier interface {
	Apply(dark bool)
}

// ThemeFunc adapts a function to ThemeApplier.
type ThemeFunc func(dark bool)

func (f ThemeFunc) Apply(dark bool) { f(dark) }

type PreferenceService interface {
	// Load resolves the dark-mode flag (stored value, else the terminal's
	// preference), persists it and applies it.
	Load(ctx context.Context) (bool, error)
	// Toggle flips, persists and applies the flag.
	Toggle(ctx context.Context) (bool, error)
	DarkMode() bool
}

type preferenceService struct {
	repo  preferences.Repository
	theme ThemeApplier
	log   logging.Logger

	// lookupEnv is os.LookupEnv outside tests.
	lookupEnv func(string) (string, bool)

	mu   sync.Mutex
	dark bool
}

func NewPreferenceService(repo preferences.Repository, theme ThemeApplier, log logging.Logger) PreferenceService {
	return &preferenceService{repo: repo, theme: theme, log: log, lookupEnv: os.LookupEnv}
}

func (s *preferenceService) Load(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dark := PrefersDark(s.lookupEnv)
	v, ok, err := s.repo.Get(ctx, DarkModeKey)
	if err != nil {
		// fall back to the terminal preference, still usable
		s.log.Warn(ctx, "reading theme preference failed", "err", err)
	}
	if ok {
		if b, perr := strconv.ParseBool(v); perr == nil {
			dark = b
		} else {
			s.log.Warn(ctx, "ignoring malformed theme preference", "value", v)
		}
	}

	s.dark = dark
	s.theme.Apply(dark)
	if err != nil {
		return dark, err
	}
	return dark, s.persist(ctx, dark)
}

func (s *preferenceService) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dark = !s.dark
	s.theme.Apply(s.dark)
	return s.dark, s.persist(ctx, s.dark)
}

func (s *preferenceService) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

func (s *preferenceService) persist(ctx context.Context, dark bool) error {
	if err := s.repo.Set(ctx, DarkModeKey, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}

// PrefersDark reads the terminal's background from COLORFGBG ("fg;bg" or
// "fg;default;bg"). Backgrounds 0-6 and 8 are dark. Unknown means light.
func PrefersDark(lookupEnv func(string) (string, bool)) bool {
	v, ok := lookupEnv("COLORFGBG")
	if !ok || v == "" {
		return false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}
