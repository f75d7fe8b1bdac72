package validator

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goodnatureofminers/blockinsight7000-validator/internal/model"
)

// FileDirectory reads the peer directory from a YAML file on every call so
// edits apply from the next round.
type FileDirectory struct {
	path string
}

func NewFileDirectory(path string) *FileDirectory {
	return &FileDirectory{path: path}
}

type directoryFile struct {
	Peers []model.PeerInfo `yaml:"peers"`
}

func (d *FileDirectory) Peers(_ context.Context) ([]model.PeerInfo, error) {
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("read peer directory: %w", err)
	}
	return ParseDirectory(raw)
}

// ParseDirectory decodes a peer directory, rejecting duplicate uids and hotkeys.
func ParseDirectory(raw []byte) ([]model.PeerInfo, error) {
	var file directoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode peer directory: %w", err)
	}

	uids := make(map[uint16]struct{}, len(file.Peers))
	hotkeys := make(map[string]struct{}, len(file.Peers))
	for _, p := range file.Peers {
		if p.Hotkey == "" {
			return nil, fmt.Errorf("peer uid %d has no hotkey", p.UID)
		}
		if _, dup := uids[p.UID]; dup {
			return nil, fmt.Errorf("duplicate uid %d", p.UID)
		}
		if _, dup := hotkeys[p.Hotkey]; dup {
			return nil, fmt.Errorf("duplicate hotkey %s", p.Hotkey)
		}
		uids[p.UID] = struct{}{}
		hotkeys[p.Hotkey] = struct{}{}
	}
	return file.Peers, nil
}
