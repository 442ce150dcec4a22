package client

import (
	"os"
	"path/filepath"
	"strings"

	"hostdash/internal/config"
)

// Profile remembers the username of the last successful CLI login so that
// `hostdash logout` can be run without arguments.
type Profile struct {
	path     string
	Username string
}

func LoadProfile() (*Profile, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	p := &Profile{path: filepath.Join(dir, "user")}
	data, err := os.ReadFile(p.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	p.Username = strings.TrimSpace(string(data))
	return p, nil
}

func (p *Profile) Save(username string) error {
	p.Username = username
	return os.WriteFile(p.path, []byte(username+"\n"), 0600)
}

func (p *Profile) Clear() error {
	p.Username = ""
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
