// ABOUTME: Tests for the settings store: persistence, validation, diff emission.
// ABOUTME: Uses testify for the field-mutation table.
package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/readiness/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	return s
}

func TestOpenDefaults(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, models.DefaultSettings(), s.Current())
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Update(func(c *models.Settings) {
		c.WindowLengthDays = 30
		c.UseSleepAdjustment = false
	})
	require.NoError(t, err)

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 30, reloaded.Current().WindowLengthDays)
	assert.False(t, reloaded.Current().UseSleepAdjustment)
}

func TestUpdateEmitsTypedDiff(t *testing.T) {
	s := openTestStore(t)

	var gotDiff models.SettingsDiff
	var gotSettings models.Settings
	s.Subscribe(func(diff models.SettingsDiff, updated models.Settings) {
		gotDiff = diff
		gotSettings = updated
	})

	_, err := s.Update(func(c *models.Settings) { c.Mode = models.ModeFullDay })
	require.NoError(t, err)

	assert.Equal(t, []models.SettingsField{models.FieldMode}, gotDiff.Changed)
	assert.Equal(t, models.ModeFullDay, gotSettings.Mode)
}

func TestNoOpUpdateEmitsNothing(t *testing.T) {
	s := openTestStore(t)

	called := false
	s.Subscribe(func(models.SettingsDiff, models.Settings) { called = true })

	diff, err := s.Update(func(*models.Settings) {})
	require.NoError(t, err)
	assert.True(t, diff.Empty())
	assert.False(t, called)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Update(func(c *models.Settings) { c.WindowLengthDays = 11 })
	require.Error(t, err)
	// Store keeps the previous value after a rejected update.
	assert.Equal(t, models.DefaultSettings().WindowLengthDays, s.Current().WindowLengthDays)
}

func TestSetField(t *testing.T) {
	tests := []struct {
		field, value string
		check        func(t *testing.T, s models.Settings)
	}{
		{"window", "7", func(t *testing.T, s models.Settings) { assert.Equal(t, 7, s.WindowLengthDays) }},
		{"min-samples", "5", func(t *testing.T, s models.Settings) { assert.Equal(t, 5, s.MinimumSamplesForBaseline) }},
		{"rhr-adjustment", "false", func(t *testing.T, s models.Settings) { assert.False(t, s.UseRHRAdjustment) }},
		{"sleep-adjustment", "false", func(t *testing.T, s models.Settings) { assert.False(t, s.UseSleepAdjustment) }},
		{"mode", "full_day", func(t *testing.T, s models.Settings) { assert.Equal(t, models.ModeFullDay, s.Mode) }},
		{"window-end-hour", "9", func(t *testing.T, s models.Settings) { assert.Equal(t, 9, s.WindowEndHour) }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			s := openTestStore(t)
			_, err := s.SetField(tt.field, tt.value)
			require.NoError(t, err)
			tt.check(t, s.Current())
		})
	}
}

func TestSetFieldUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SetField("color", "blue")
	require.Error(t, err)
}

func TestSetFieldBadValueLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.SetField("window", "not-a-number")
	require.Error(t, err)

	// File was never created: nothing was persisted.
	_, err = Open(path)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), s.Current())
}
