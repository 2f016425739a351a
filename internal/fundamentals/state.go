package fundamentals

import (
	"encoding/json"
	"os"
	"path/filepath"

	"MorningBrief/internal/model"
)

// loadCache reads the snapshot map from a JSON file.
// Returns an empty map if the file doesn't exist.
func loadCache(filePath string) (map[string]model.FundamentalsSnapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]model.FundamentalsSnapshot{}, nil
		}
		return nil, err
	}
	cache := map[string]model.FundamentalsSnapshot{}
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}

// saveCache writes the snapshot map to a JSON file.
func saveCache(filePath string, cache map[string]model.FundamentalsSnapshot) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
