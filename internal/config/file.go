package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// parseFile reads path and decodes it into a RawConfig. The JSON schema
// mirrors the command-line surface field for field and is closed: any
// unknown top-level field fails the decode.
func parseFile(path string) (RawConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return RawConfig{}, fmt.Errorf("read config file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()

	var raw RawConfig
	if err := decoder.Decode(&raw); err != nil {
		return RawConfig{}, fmt.Errorf("parse config file %q: %w", path, err)
	}

	return raw, nil
}
