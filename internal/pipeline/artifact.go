package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactPath builds the output file name for one rendered map.
func ArtifactPath(dir, chamber string, congress, session, roll int) string {
	name := fmt.Sprintf("vote_%s_%d_%d_%d.png", chamber, congress, session, roll)
	return filepath.Join(dir, name)
}

// WriteArtifact writes the PNG to path atomically: the bytes land in a
// temporary file first and are renamed into place, so a crash mid-write never
// leaves a truncated artifact behind.
func WriteArtifact(path string, png []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, png, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize artifact: %w", err)
	}
	return nil
}
