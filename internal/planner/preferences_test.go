package planner

import (
	"testing"

	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		rtl     bool
		wantErr bool
	}{
		{in: "en", want: "en"},
		{in: "fr-CA", want: "fr"},
		{in: "es-419", want: "es"},
		{in: "ar-EG", want: "ar", rtl: true},
		{in: "he", want: "he", rtl: true},
		{in: "ja-JP", want: "ja"},
		{in: "!!", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			l, err := MatchLanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Code)
			assert.Equal(t, tt.rtl, l.RTL)
		})
	}
}

func TestPreferences(t *testing.T) {
	h := newHarness(t)
	p := h.state.Prefs

	assert.Equal(t, "en", p.Language().Code)
	assert.Equal(t, models.FontMedium, p.FontSize())
	assert.Equal(t, DefaultTheme, p.Theme())
	assert.Equal(t, DefaultReminderMinutes, p.ReminderDefault())
	assert.True(t, p.Settings().Notifications)

	l, err := p.SetLanguage("de-AT")
	require.NoError(t, err)
	assert.Equal(t, "de", l.Code)
	require.NoError(t, p.SetDarkMode(true))
	require.NoError(t, p.SetFontSize(models.FontLarge))
	require.NoError(t, p.SetTheme("#10B981"))
	require.NoError(t, p.SetReminderDefault(30))

	assert.ErrorIs(t, p.SetFontSize("huge"), ErrInvalid)
	assert.ErrorIs(t, p.SetTheme("green"), ErrInvalid)
	assert.ErrorIs(t, p.SetReminderDefault(-1), ErrInvalid)

	again := h.open().Prefs
	assert.Equal(t, "de", again.Language().Code)
	assert.True(t, again.Settings().DarkMode)
	assert.Equal(t, models.FontLarge, again.FontSize())
	assert.Equal(t, "#10B981", again.Theme())
	assert.Equal(t, 30, again.ReminderDefault())
}
