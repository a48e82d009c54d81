package reader

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
)

const (
	BackupKind    = "CollectionBackup"
	BackupVersion = "v1"
)

// Backup is the JSON export of a single collection.
type Backup struct {
	Kind       string             `json:"kind"`
	Version    string             `json:"version"`
	Collection string             `json:"collection"`
	ExportedAt time.Time          `json:"exportedAt"`
	Documents  []storage.Document `json:"documents"`
}

func NewBackup(collection string, docs []storage.Document) *Backup {
	if docs == nil {
		docs = []storage.Document{}
	}
	return &Backup{
		Kind:       BackupKind,
		Version:    BackupVersion,
		Collection: collection,
		ExportedAt: time.Now().UTC(),
		Documents:  docs,
	}
}

func (b *Backup) Validate() error {
	if b.Kind != BackupKind {
		return fmt.Errorf("unexpected backup kind %q", b.Kind)
	}
	if b.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", b.Version)
	}
	if b.Collection == "" {
		return fmt.Errorf("backup collection is required")
	}
	for i, d := range b.Documents {
		if !json.Valid(d.Data) {
			return fmt.Errorf("documents[%d] (%s) has invalid data", i, d.Key)
		}
	}
	return nil
}

func WriteBackup(w io.Writer, b *Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// BackupLoader decodes a backup written by WriteBackup.
type BackupLoader struct {
	reader io.Reader
}

func NewBackupLoader(reader io.Reader) *BackupLoader {
	return &BackupLoader{reader: reader}
}

func (bl *BackupLoader) Load(validate bool) (*Backup, error) {
	var b Backup
	if err := json.NewDecoder(bl.reader).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if validate {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return &b, nil
}
