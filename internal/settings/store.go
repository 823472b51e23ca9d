// ABOUTME: JSON-file settings store with typed change notification.
// ABOUTME: Updates emit a SettingsDiff naming exactly which fields changed.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/harperreed/readiness/internal/models"
)

// Listener receives the typed diff and the updated settings after every
// successful write. This replaces broadcast "something changed"
// notifications: the receiver knows exactly which fields moved.
type Listener func(diff models.SettingsDiff, updated models.Settings)

// Store holds the scoring settings in a JSON file. Getters are
// synchronous; writes validate, persist, then notify the listener.
type Store struct {
	path string

	mu       sync.Mutex
	current  models.Settings
	listener Listener
}

// DefaultPath returns the settings file path following XDG spec.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "readiness", "settings.json")
}

// Open loads settings from path, falling back to defaults when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, current: models.DefaultSettings()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var loaded models.Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}
	s.current = loaded
	return s, nil
}

// Current returns a snapshot of the settings.
func (s *Store) Current() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers the listener that receives settings diffs. Only one
// listener is supported: the recalculation coordinator.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listener = l
}

// Update applies fn to a copy of the settings, validates and persists the
// result, and notifies the listener with the diff. A no-op update does
// not touch the file and emits nothing.
func (s *Store) Update(fn func(*models.Settings)) (models.SettingsDiff, error) {
	s.mu.Lock()
	old := s.current
	updated := old
	fn(&updated)

	diff := models.DiffSettings(old, updated)
	if diff.Empty() {
		s.mu.Unlock()
		return diff, nil
	}

	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return models.SettingsDiff{}, err
	}
	if err := s.save(updated); err != nil {
		s.mu.Unlock()
		return models.SettingsDiff{}, err
	}
	s.current = updated
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(diff, updated)
	}
	return diff, nil
}

// SetField parses and applies a single named field. Field names accept
// both the JSON form and short CLI aliases.
func (s *Store) SetField(field, value string) (models.SettingsDiff, error) {
	apply, err := fieldMutation(field, value)
	if err != nil {
		return models.SettingsDiff{}, err
	}
	return s.Update(apply)
}

func fieldMutation(field, value string) (func(*models.Settings), error) {
	switch field {
	case "window", "window_length_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid window length %q", value)
		}
		return func(c *models.Settings) { c.WindowLengthDays = n }, nil
	case "min-samples", "minimum_samples_for_baseline":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum samples %q", value)
		}
		return func(c *models.Settings) { c.MinimumSamplesForBaseline = n }, nil
	case "rhr-adjustment", "use_rhr_adjustment":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", value)
		}
		return func(c *models.Settings) { c.UseRHRAdjustment = b }, nil
	case "sleep-adjustment", "use_sleep_adjustment":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean %q", value)
		}
		return func(c *models.Settings) { c.UseSleepAdjustment = b }, nil
	case "mode":
		m, err := models.ParseMode(value)
		if err != nil {
			return nil, err
		}
		return func(c *models.Settings) { c.Mode = m }, nil
	case "window-end-hour", "window_end_hour":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid hour %q", value)
		}
		return func(c *models.Settings) { c.WindowEndHour = n }, nil
	default:
		return nil, fmt.Errorf("unknown settings field %q", field)
	}
}

func (s *Store) save(settings models.Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
