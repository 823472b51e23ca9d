// ABOUTME: File-based widget publisher: JSON snapshot in the data dir.
// ABOUTME: Widget processes poll the file; writes go through a temp-file rename.
package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FilePublisher writes the snapshot as JSON to a fixed path.
type FilePublisher struct {
	path string
}

// NewFilePublisher publishes to widget.json inside dataDir.
func NewFilePublisher(dataDir string) *FilePublisher {
	return &FilePublisher{path: filepath.Join(dataDir, "widget.json")}
}

// Path returns the snapshot file location.
func (p *FilePublisher) Path() string { return p.path }

func (p *FilePublisher) Publish(ctx context.Context, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode widget snapshot: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create widget directory: %w", err)
	}

	// Rename so a reader never sees a half-written snapshot.
	tmp, err := os.CreateTemp(dir, "widget-*.json")
	if err != nil {
		return fmt.Errorf("create widget temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write widget snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close widget snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("publish widget snapshot: %w", err)
	}
	return nil
}
