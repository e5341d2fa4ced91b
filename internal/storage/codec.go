package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/julianstephens/gradeboard/internal/models"
)

// EncodeDocument serializes a schedule document for storage.
func EncodeDocument(doc models.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}
	return string(data), nil
}

// DecodeDocument restores a stored schedule document.
func DecodeDocument(payload []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return models.Document{}, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// SettingsRows flattens settings into key/value pairs in a stable order.
func SettingsRows(settings models.Settings) [][2]string {
	m := models.SettingsToMap(settings)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rows := make([][2]string, len(keys))
	for i, k := range keys {
		rows[i] = [2]string{k, m[k]}
	}
	return rows
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgres reports whether config names a PostgreSQL connection.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}
