// Package save persists game snapshots to disk as JSON.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samdwyer/underdark/internal/game"
)

// DefaultFile is the save file name used when the caller has no preference.
const DefaultFile = "underdark.sav"

// ErrNoSavedGame reports that no usable save exists at the given path,
// covering both a missing file and one that cannot be decoded.
var ErrNoSavedGame = errors.New("no saved game")

// Write stores the snapshot at path. The file is written to a temp sibling
// first and renamed into place so an interrupted save never clobbers a
// previous one.
func Write(path string, snap *game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// Read loads a snapshot from path. A missing or undecodable file yields
// ErrNoSavedGame.
func Read(path string) (*game.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSavedGame
		}
		return nil, fmt.Errorf("reading save: %w", err)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSavedGame, err)
	}
	return &snap, nil
}

// Remove deletes the save at path. A missing file is not an error; a dead
// player's save must not come back.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing save: %w", err)
	}
	return nil
}

// DefaultPath resolves the default save location next to the working
// directory.
func DefaultPath() string {
	return filepath.Join(".", DefaultFile)
}
