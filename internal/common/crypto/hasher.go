package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// maxHashMemoryKiB caps the memory parameter accepted from a stored hash,
// four times what Hash itself uses.
const maxHashMemoryKiB = 256 * 1024

// ErrPasswordMismatch is returned by Compare when the candidate password does
// not reproduce the stored hash. Anything else Compare returns is a
// HashingFailure.
var ErrPasswordMismatch = errors.New("password does not match")

// Argon2Hasher hashes passwords with argon2id keyed by the process-wide
// server secret: the password is peppered through HMAC-SHA256 with the secret
// before key derivation, so hashes are not verifiable without it.
type Argon2Hasher struct {
	secret  []byte
	time    uint32
	memory  uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

func NewArgon2Hasher(secret string) *Argon2Hasher {
	return &Argon2Hasher{
		secret:  []byte(secret),
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		saltLen: 16,
		keyLen:  32,
	}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", commonerrors.ErrHashingFailure.WithCause(err)
	}

	key := h.deriveKey(password, salt, h.time, h.memory, h.threads, h.keyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (h *Argon2Hasher) Compare(hash string, password string) error {
	memory, time, threads, salt, key, err := decodeHash(hash)
	if err != nil {
		return commonerrors.ErrHashingFailure.WithCause(err)
	}

	candidate := h.deriveKey(password, salt, time, memory, threads, uint32(len(key)))

	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func (h *Argon2Hasher) deriveKey(password string, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(password))
	peppered := mac.Sum(nil)

	return argon2.IDKey(peppered, salt, time, memory, threads, keyLen)
}

func decodeHash(encoded string) (memory, time uint32, threads uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, errors.New("malformed argon2id hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed version: %w", err)
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed parameters: %w", err)
	}
	// argon2.IDKey panics on t=0 or p=0, and memory is an allocation we
	// make on behalf of whatever wrote the hash. Reject out-of-range
	// parameters as corruption instead.
	if time < 1 || threads < 1 {
		return 0, 0, 0, nil, nil, fmt.Errorf("argon2 parameters out of range: t=%d, p=%d", time, threads)
	}
	if memory < 8*uint32(threads) || memory > maxHashMemoryKiB {
		return 0, 0, 0, nil, nil, fmt.Errorf("argon2 memory out of range: m=%d", memory)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed salt: %w", err)
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, fmt.Errorf("malformed key: %w", err)
	}
	if len(key) == 0 {
		return 0, 0, 0, nil, nil, errors.New("empty key")
	}

	return memory, time, threads, salt, key, nil
}
