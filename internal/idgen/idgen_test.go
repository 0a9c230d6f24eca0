package idgen

import (
	"regexp"
	"testing"
)

func TestComment_PrefixAndLength(t *testing.T) {
	id, err := Comment()
	if err != nil {
		t.Fatalf("Comment() error: %v", err)
	}
	if id[:len(CommentPrefix)] != CommentPrefix {
		t.Errorf("Comment() = %q, want prefix %q", id, CommentPrefix)
	}
	wantLen := len(CommentPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("Comment() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestNotification_Prefix(t *testing.T) {
	id, err := Notification()
	if err != nil {
		t.Fatalf("Notification() error: %v", err)
	}
	if id[:len(NotificationPrefix)] != NotificationPrefix {
		t.Errorf("Notification() = %q, want prefix %q", id, NotificationPrefix)
	}
}

func TestComment_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(CommentPrefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := Comment()
		if err != nil {
			t.Fatalf("Comment() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("Comment() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestComment_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := Comment()
		if err != nil {
			t.Fatalf("Comment() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	prefix := "test-"
	id, err := GenerateWithPrefix(prefix)
	if err != nil {
		t.Fatalf("GenerateWithPrefix(%q) error: %v", prefix, err)
	}

	if id[:len(prefix)] != prefix {
		t.Errorf("GenerateWithPrefix(%q) = %q, want prefix %q", prefix, id, prefix)
	}

	wantLen := len(prefix) + Length
	if len(id) != wantLen {
		t.Errorf("GenerateWithPrefix(%q) length = %d, want %d (id=%q)", prefix, len(id), wantLen, id)
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[a-zA-Z0-9]+$`)
	if !pattern.MatchString(id) {
		t.Errorf("GenerateWithPrefix(%q) = %q, does not match expected charset pattern", prefix, id)
	}
}
