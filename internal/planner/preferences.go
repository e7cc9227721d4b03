package planner

import (
	"fmt"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
	"golang.org/x/text/language"
)

// Language is a supported interface language.
type Language struct {
	Code string
	Name string
	RTL  bool
}

// Languages lists the supported languages; the first is the fallback.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Español"},
	{Code: "fr", Name: "Français"},
	{Code: "de", Name: "Deutsch"},
	{Code: "ar", Name: "العربية", RTL: true},
	{Code: "he", Name: "עברית", RTL: true},
	{Code: "ja", Name: "日本語"},
}

var langMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(Languages))
	for i, l := range Languages {
		tags[i] = language.Make(l.Code)
	}
	return language.NewMatcher(tags)
}()

// MatchLanguage maps a BCP 47 tag such as "fr-CA" or "pt-BR" to the
// closest supported language. Tags with no reasonable match fail.
func MatchLanguage(code string) (Language, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return Language{}, fmt.Errorf("%w: language %q: %v", ErrInvalid, code, err)
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return Language{}, fmt.Errorf("%w: unsupported language %q", ErrInvalid, code)
	}
	return Languages[idx], nil
}

const (
	DefaultTheme           = "#A855F7"
	DefaultReminderMinutes = 15
	maxReminderMinutes     = 7 * 24 * 60
)

// Preferences holds the settings screen values, each under its own key.
type Preferences struct {
	s *State

	settings        models.Settings
	language        string
	theme           string
	fontSize        models.FontSize
	reminderDefault int

	settingsSlot *store.Slot[models.Settings]
	languageSlot *store.Slot[string]
	themeSlot    *store.Slot[string]
	fontSlot     *store.Slot[models.FontSize]
	reminderSlot *store.Slot[int]
}

func newPreferences(s *State, b store.Backend) *Preferences {
	p := &Preferences{
		s:            s,
		settingsSlot: store.NewSlot(b, KeySettings, store.Value(models.Settings{Notifications: true})),
		languageSlot: store.NewSlot(b, KeyLanguage, store.Value(Languages[0].Code)),
		themeSlot:    store.NewSlot(b, KeyTheme, store.Value(DefaultTheme)),
		fontSlot:     store.NewSlot(b, KeyFontSize, store.Value(models.FontMedium)),
		reminderSlot: store.NewSlot(b, KeyReminderDefault, store.Value(DefaultReminderMinutes)),
	}
	p.settings = p.settingsSlot.Load()
	p.language = p.languageSlot.Load()
	p.theme = p.themeSlot.Load()
	p.fontSize = p.fontSlot.Load()
	if !p.fontSize.Valid() {
		p.fontSize = models.FontMedium
	}
	p.reminderDefault = p.reminderSlot.Load()
	return p
}

// Settings returns the boolean toggles.
func (p *Preferences) Settings() models.Settings {
	p.s.lock()
	defer p.s.unlock()
	return p.settings
}

// SetDarkMode stores the dark mode toggle.
func (p *Preferences) SetDarkMode(on bool) error {
	p.s.lock()
	defer p.s.unlock()

	p.settings.DarkMode = on
	err := save(p.settingsSlot, p.settings)
	p.s.record("settings.dark_mode", on, "", err)
	return err
}

// SetNotifications stores the notifications toggle.
func (p *Preferences) SetNotifications(on bool) error {
	p.s.lock()
	defer p.s.unlock()

	p.settings.Notifications = on
	err := save(p.settingsSlot, p.settings)
	p.s.record("settings.notifications", on, "", err)
	return err
}

// Language returns the selected language. An unknown stored code falls
// back to the first supported language.
func (p *Preferences) Language() Language {
	p.s.lock()
	code := p.language
	p.s.unlock()

	if l, err := MatchLanguage(code); err == nil {
		return l
	}
	return Languages[0]
}

// SetLanguage matches code against the supported languages and stores
// the result.
func (p *Preferences) SetLanguage(code string) (Language, error) {
	p.s.lock()
	defer p.s.unlock()

	l, err := MatchLanguage(code)
	if err != nil {
		p.s.record("settings.language", code, "", err)
		return Language{}, err
	}
	p.language = l.Code
	err = save(p.languageSlot, p.language)
	p.s.record("settings.language", code, "", err)
	return l, err
}

// Theme returns the accent color.
func (p *Preferences) Theme() string {
	p.s.lock()
	defer p.s.unlock()
	return p.theme
}

// SetTheme stores a #rrggbb accent color.
func (p *Preferences) SetTheme(color string) error {
	p.s.lock()
	defer p.s.unlock()

	if err := validate.Var(color, "required,hexcolor"); err != nil {
		err = fmt.Errorf("%w: theme %q must be a hex color", ErrInvalid, color)
		p.s.record("settings.theme", color, "", err)
		return err
	}
	p.theme = color
	err := save(p.themeSlot, p.theme)
	p.s.record("settings.theme", color, "", err)
	return err
}

// FontSize returns the text size.
func (p *Preferences) FontSize() models.FontSize {
	p.s.lock()
	defer p.s.unlock()
	return p.fontSize
}

// SetFontSize stores the text size.
func (p *Preferences) SetFontSize(f models.FontSize) error {
	p.s.lock()
	defer p.s.unlock()

	if !f.Valid() {
		err := fmt.Errorf("%w: font size %q (small, medium, large)", ErrInvalid, f)
		p.s.record("settings.font_size", f, "", err)
		return err
	}
	p.fontSize = f
	err := save(p.fontSlot, p.fontSize)
	p.s.record("settings.font_size", f, "", err)
	return err
}

// ReminderDefault returns the lead time in minutes offered for new events.
func (p *Preferences) ReminderDefault() int {
	p.s.lock()
	defer p.s.unlock()
	return p.reminderDefault
}

// SetReminderDefault stores the default reminder lead time in minutes.
func (p *Preferences) SetReminderDefault(minutes int) error {
	p.s.lock()
	defer p.s.unlock()

	if minutes < 0 || minutes > maxReminderMinutes {
		err := fmt.Errorf("%w: reminder must be between 0 and %d minutes", ErrInvalid, maxReminderMinutes)
		p.s.record("settings.reminder_default", minutes, "", err)
		return err
	}
	p.reminderDefault = minutes
	err := save(p.reminderSlot, p.reminderDefault)
	p.s.record("settings.reminder_default", minutes, "", err)
	return err
}
