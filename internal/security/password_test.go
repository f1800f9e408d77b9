package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/argon2"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}

	ok, needsRehash, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
	if needsRehash {
		t.Fatal("fresh bcrypt hash should not need a rehash")
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password-one")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, _, err := VerifyPassword("password-two", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail for a different password")
	}
}

// legacyArgon2idHash builds a hash in the deprecated scheme's encoding.
func legacyArgon2idHash(t *testing.T, password string) string {
	t.Helper()

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		t.Fatalf("rand: %v", err)
	}

	hash := argon2.IDKey([]byte(password), salt, 3, 64*1024, 2, 32)
	return fmt.Sprintf("$argon2id$v=19$t=3,m=65536,p=2$%s$%s",
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash))
}

func TestVerify_LegacyArgon2id(t *testing.T) {
	t.Parallel()

	encoded := legacyArgon2idHash(t, "legacy-password")

	ok, needsRehash, err := VerifyPassword("legacy-password", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected legacy hash to verify")
	}
	if !needsRehash {
		t.Fatal("legacy scheme must be flagged for rehash")
	}

	ok, _, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail against legacy hash")
	}
}

func TestVerify_MalformedLegacyHash(t *testing.T) {
	t.Parallel()

	if _, _, err := VerifyPassword("anything", "$argon2id$garbage"); err == nil {
		t.Fatal("expected an error for a malformed argon2id hash")
	}
}
