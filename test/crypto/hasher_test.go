package crypto

import (
	"errors"
	"strings"
	"testing"

	commoncrypto "github.com/hackerclone/hackerclone/internal/common/crypto"
	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

const testSecret = "test-secret-key-0123456789abcdef"

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	hasher := commoncrypto.NewArgon2Hasher(testSecret)

	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id encoding, got %s", hash)
	}

	if strings.Contains(hash, "correct horse battery") {
		t.Error("hash contains the password")
	}

	if err := hasher.Compare(hash, "correct horse battery"); err != nil {
		t.Errorf("expected match, got %v", err)
	}
}

func TestArgon2Hasher_WrongPassword(t *testing.T) {
	hasher := commoncrypto.NewArgon2Hasher(testSecret)

	hash, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	err = hasher.Compare(hash, "incorrect horse battery")
	if !errors.Is(err, commoncrypto.ErrPasswordMismatch) {
		t.Errorf("expected password mismatch, got %v", err)
	}
}

func TestArgon2Hasher_SaltedHashesDiffer(t *testing.T) {
	hasher := commoncrypto.NewArgon2Hasher(testSecret)

	first, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	second, err := hasher.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Error("expected distinct salts to produce distinct hashes")
	}

	if err := hasher.Compare(second, "correct horse battery"); err != nil {
		t.Errorf("expected match against second hash, got %v", err)
	}
}

func TestArgon2Hasher_SecretBindsHash(t *testing.T) {
	hasherA := commoncrypto.NewArgon2Hasher(testSecret)
	hasherB := commoncrypto.NewArgon2Hasher("another-secret-key-fedcba98765432")

	hash, err := hasherA.Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	err = hasherB.Compare(hash, "correct horse battery")
	if !errors.Is(err, commoncrypto.ErrPasswordMismatch) {
		t.Errorf("expected mismatch under a different secret, got %v", err)
	}
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := commoncrypto.NewArgon2Hasher(testSecret)

	testCases := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not a phc string", hash: "plainly not a hash"},
		{name: "wrong algorithm", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5"},
		{name: "bad version", hash: "$argon2id$v=99$m=65536,t=1,p=4$c2FsdA$a2V5"},
		{name: "bad parameters", hash: "$argon2id$v=19$m=abc$c2FsdA$a2V5"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!$a2V5"},
		{name: "bad key encoding", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!"},
		{name: "empty key", hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$"},
		{name: "zero rounds", hash: "$argon2id$v=19$m=65536,t=0,p=4$c2FsdA$a2V5"},
		{name: "zero parallelism", hash: "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$a2V5"},
		{name: "memory below floor", hash: "$argon2id$v=19$m=4,t=1,p=4$c2FsdA$a2V5"},
		{name: "memory above cap", hash: "$argon2id$v=19$m=4294967295,t=1,p=4$c2FsdA$a2V5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := hasher.Compare(tc.hash, "whatever password")
			if !errors.Is(err, commonerrors.ErrHashingFailure) {
				t.Errorf("expected hashing failure, got %v", err)
			}
			if errors.Is(err, commoncrypto.ErrPasswordMismatch) {
				t.Error("malformed hash must not read as a mismatch")
			}
		})
	}
}
