package security

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Passwords are hashed with bcrypt. Hashes written by the earlier argon2id
// scheme still verify; VerifyPassword reports them as needing a rehash so
// login can upgrade them in place.

const bcryptCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks password against an encoded hash of any supported
// scheme. needsRehash is true when the stored hash uses a deprecated scheme
// or a weaker-than-current bcrypt cost.
func VerifyPassword(password string, encodedHash string) (ok bool, needsRehash bool, err error) {
	if strings.HasPrefix(encodedHash, "$argon2id$") {
		ok, err = verifyArgon2id(password, encodedHash)
		return ok, ok, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return false, false, nil
		}
		return false, false, fmt.Errorf("verify password: %w", err)
	}

	cost, err := bcrypt.Cost([]byte(encodedHash))
	if err != nil {
		return true, false, nil
	}
	return true, cost < bcryptCost, nil
}

func verifyArgon2id(password string, encodedHash string) (bool, error) {
	// $argon2id$v=19$t=3,m=65536,p=2$<salt>$<hash>
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("parse hash: malformed argon2id hash")
	}

	var (
		time    uint32
		memory  uint32
		threads uint8
	)
	if _, err := fmt.Sscanf(parts[3], "t=%d,m=%d,p=%d", &time, &memory, &threads); err != nil {
		return false, fmt.Errorf("parse hash params: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}

	hash, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}
