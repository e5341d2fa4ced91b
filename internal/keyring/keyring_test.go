package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	// Use mock keyring for testing
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"

	// Test Set
	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	// Test Get
	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}

	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	err := SetConnectionString("")
	if err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteConnectionString()

	_, err := GetConnectionString()
	if err != ErrNotFound {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb"

	// First, set a connection string
	err := SetConnectionString(testConnStr)
	if err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	// Delete it
	err = DeleteConnectionString()
	if err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}

	// Verify it's gone
	_, err = GetConnectionString()
	if err != ErrNotFound {
		t.Errorf("After DeleteConnectionString(), GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	// Ensure nothing is stored
	_ = DeleteConnectionString()

	err := DeleteConnectionString()
	if err != ErrNotFound {
		t.Errorf("DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	available := IsAvailable()
	// In mock mode, keyring should be available
	if !available {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	if err := SetSession("S1001", "abc123"); err != nil {
		t.Fatalf("SetSession() failed: %v", err)
	}
	got, err := GetSession(" S1001 ")
	if err != nil {
		t.Fatalf("GetSession() failed: %v", err)
	}
	if got != "abc123" {
		t.Errorf("GetSession() = %q, want %q", got, "abc123")
	}

	// sessions are per student
	if _, err := GetSession("S2002"); err != ErrNotFound {
		t.Errorf("GetSession(other) error = %v, want %v", err, ErrNotFound)
	}

	if err := DeleteSession("S1001"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if _, err := GetSession("S1001"); err != ErrNotFound {
		t.Errorf("after delete, GetSession() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSessionValidation(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		name    string
		student string
		cookie  string
	}{
		{"blank student", "  ", "cookie"},
		{"blank cookie", "S1", " "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetSession(tt.student, tt.cookie); err == nil {
				t.Error("SetSession() should fail")
			}
		})
	}

	if _, err := GetSession(""); err == nil || err == ErrNotFound {
		t.Errorf("GetSession(\"\") error = %v, want validation error", err)
	}
}
