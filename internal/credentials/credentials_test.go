package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_AllPairsVerify(t *testing.T) {
	s := Default()
	if s.Len() != 10 {
		t.Fatalf("expected 10 accounts, got %d", s.Len())
	}
	for i := 1; i <= 10; i++ {
		user := fmt.Sprintf("user%d", i)
		pass := fmt.Sprintf("pass%d", i)
		if !s.Verify(user, pass) {
			t.Errorf("expected %s/%s to verify", user, pass)
		}
	}
}

func TestVerify_Rejects(t *testing.T) {
	s := Default()
	cases := []struct{ user, pass string }{
		{"user1", "pass2"},
		{"user1", ""},
		{"nobody", "pass1"},
		{"", ""},
		{"USER1", "pass1"},
		{"user10", "pass1"},
		{"user1", "pass10"},
		{"user1", "pass1 "},
	}
	for _, c := range cases {
		if s.Verify(c.user, c.pass) {
			t.Errorf("expected %q/%q to be rejected", c.user, c.pass)
		}
	}
}

func TestVerify_EmptyPassword(t *testing.T) {
	s := New(map[string]string{"guest": ""})
	if !s.Verify("guest", "") {
		t.Error("expected an empty stored password to match an empty input")
	}
	if s.Verify("guest", "x") {
		t.Error("expected a non-empty input to be rejected")
	}
	if s.Verify("nobody", "") {
		t.Error("unknown user with empty password must be rejected")
	}
}

func TestVerify_NilStore(t *testing.T) {
	var s *Store
	if s.Verify("user1", "pass1") {
		t.Error("nil store must reject everything")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	users := map[string]string{"alice": "secret"}
	s := New(users)
	users["alice"] = "changed"

	if !s.Verify("alice", "secret") {
		t.Error("store should not observe later changes to the input map")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	content := "users:\n  alice: secret\n  bob: hunter2\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !s.Verify("bob", "hunter2") {
		t.Error("expected bob/hunter2 to verify")
	}
	if s.Verify("user1", "pass1") {
		t.Error("file store must not include the built-in accounts")
	}
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte("users: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for a file with no users")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
