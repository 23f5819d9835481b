package site

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// ManifestFile is written at the root of the build output.
const ManifestFile = "build.json"

// Manifest records what a build produced.
type Manifest struct {
	BuildID     string       `json:"build_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Pages       []PageResult `json:"pages"`
	Assets      []string     `json:"assets"`
}

// NewManifest starts a manifest with a fresh build id.
func NewManifest() *Manifest {
	return &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}
}

// Failed returns the pages that were written with their fallback.
func (m *Manifest) Failed() []PageResult {
	var out []PageResult
	for _, p := range m.Pages {
		if p.Fallback {
			out = append(out, p)
		}
	}
	return out
}

// Write stores the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
