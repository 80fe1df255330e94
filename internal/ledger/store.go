package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Store persists the full account set. Implementations load everything
// at startup and rewrite the whole record set on every mutation; there
// is no incremental write.
type Store interface {
	Load() (map[string]*model.UserAccount, error)
	SaveAll(accounts map[string]*model.UserAccount) error
}

// FileStore keeps the ledger as one JSON object keyed by caller id.
type FileStore struct {
	Path string
}

// NewFileStore creates a store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the whole ledger. A missing file is an empty ledger; a
// corrupt or unreadable file is an error for the caller to handle.
func (s *FileStore) Load() (map[string]*model.UserAccount, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.UserAccount{}, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	var raw map[string]*model.UserAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	if raw == nil {
		raw = map[string]*model.UserAccount{}
	}
	for id, acct := range raw {
		acct.ID = id
	}
	return raw, nil
}

// SaveAll rewrites the whole ledger file.
func (s *FileStore) SaveAll(accounts map[string]*model.UserAccount) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
