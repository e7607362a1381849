package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one input in the output manifest.
type ManifestEntry struct {
	Name    string `json:"name"`
	Input   string `json:"input,omitempty"`
	Output  string `json:"output,omitempty"`
	Preview string `json:"preview,omitempty"`
	Before  Counts `json:"before"`
	After   Counts `json:"after"`
	Error   string `json:"error,omitempty"`
}

// WriteManifest writes the results as a JSON array. Output and preview paths
// are stored relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Name:    r.Name,
			Input:   r.Input,
			Output:  relTo(dir, r.Output),
			Preview: relTo(dir, r.Preview),
			Before:  r.Before,
			After:   r.After,
			Error:   r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func relTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
