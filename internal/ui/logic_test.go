package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-sambat/internal/config"
	"github.com/zalando/go-keyring"
)

func TestValidatePort(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")

	tests := []struct {
		in      string
		wantErr string
	}{
		{"18081", ""},
		{"1", ""},
		{"65535", ""},
		{"", "Port is required"},
		{"abc", "Port must be a number"},
		{"0", "Port must be between 1 and 65535"},
		{"70000", "Port must be between 1 and 65535"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := app.validatePort(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

// TestSourceCard_Visibility checks that each source mode shows only its own form.
func TestSourceCard_Visibility(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	sw := app.newSettingsWidgets()
	layoutChanges := 0
	app.buildSourceCard(w, sw, func() { layoutChanges++ })

	labels, _ := app.sourceModes()
	assert.Equal(t, labels[0], sw.modeSelect.Selected, "bundled is selected by default")
	assert.False(t, sw.webForm.Visible())
	assert.False(t, sw.localForm.Visible())

	sw.modeSelect.SetSelected(labels[1])
	assert.True(t, sw.webForm.Visible())
	assert.False(t, sw.localForm.Visible())

	sw.modeSelect.SetSelected(labels[2])
	assert.False(t, sw.webForm.Visible())
	assert.True(t, sw.localForm.Visible())

	assert.Equal(t, 2, layoutChanges)
}

func TestSourceCard_RestoresSavedMode(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	sw := app.newSettingsWidgets()
	app.buildSourceCard(w, sw, func() {})

	assert.Equal(t, "Local JSON file", sw.modeSelect.Selected)
	assert.True(t, sw.localForm.Visible())
}

func TestSaveSettings(t *testing.T) {
	app, _, _ := setupTestApp(t)
	setLanguage(app, "en")
	app.setupTrayMenu()
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	sw := app.newSettingsWidgets()
	app.buildSourceCard(w, sw, func() {})

	labels, _ := app.sourceModes()
	sw.langSelect.SetSelected("ne")
	sw.modeSelect.SetSelected(labels[1])
	sw.urlEntry.SetText("https://example.com/table.json")
	sw.userEntry.SetText("ram")
	sw.passEntry.SetText("s3cret")
	sw.entryInterval.SetText("")
	sw.entryPort.SetText("18090")

	app.saveSettings(sw)

	assert.Equal(t, "ne", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, config.SourceModeWeb, app.Preferences.String(config.PrefSourceMode))
	assert.Equal(t, "https://example.com/table.json", app.Preferences.String(config.PrefDataURL))
	assert.Equal(t, "ram", app.Preferences.String(config.PrefUsername))
	assert.Equal(t, config.DisabledInterval, app.Preferences.Int(config.PrefInterval))
	assert.Equal(t, "18090", app.Preferences.String(config.PrefServerPort))

	pwd, err := keyring.Get(config.KeyringService, "ram")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pwd)

	// The new language is live in the tray.
	assert.Equal(t, "सेटिङ...", app.TraySettingsItem.Label)
}

func TestSettingsWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	w := app.Window
	require.NotNil(t, w)

	app.ShowSettingsWindow()
	assert.Same(t, w, app.Window)

	w.Close()
	assert.Nil(t, app.Window)
}
