// Package credentials holds the table of accepted username/password pairs.
// Passwords are kept as SHA-256 digests and compared in constant time, so
// the comparison does not depend on the stored password's length and an
// unknown user takes the same path as a wrong password.
package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store is a fixed username -> password table. The zero value rejects
// everything.
type Store struct {
	users map[string][sha256.Size]byte
}

type fileFormat struct {
	Users map[string]string `yaml:"users"`
}

// Default returns the built-in table of ten demo accounts, user1/pass1
// through user10/pass10.
func Default() *Store {
	users := make(map[string]string, 10)
	for i := 1; i <= 10; i++ {
		users[fmt.Sprintf("user%d", i)] = fmt.Sprintf("pass%d", i)
	}
	return New(users)
}

// New copies users into a new Store.
func New(users map[string]string) *Store {
	s := &Store{users: make(map[string][sha256.Size]byte, len(users))}
	for name, pass := range users {
		s.users[name] = sha256.Sum256([]byte(pass))
	}
	return s
}

// LoadFile reads a YAML file of the form
//
//	users:
//	  alice: secret
//	  bob: hunter2
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("credentials file %s defines no users", path)
	}

	return New(f.Users), nil
}

// Verify reports whether password is the exact password for username.
func (s *Store) Verify(username, password string) bool {
	if s == nil {
		return false
	}
	got := sha256.Sum256([]byte(password))
	want, ok := s.users[username]
	// Unknown users compare against the zero digest.
	match := subtle.ConstantTimeCompare(got[:], want[:]) == 1
	return ok && match
}

// Len returns the number of accounts in the table.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}
