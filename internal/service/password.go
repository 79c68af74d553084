package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"unicode"

	"parish/internal/domain"

	"golang.org/x/crypto/argon2"
)

type Argon2Params struct {
	// Stored alongside the hash so verification uses the original cost.
	Time    uint32 `json:"t"` // iterations
	Memory  uint32 `json:"m"` // KiB
	Threads uint8  `json:"p"` // parallelism
	KeyLen  uint32 `json:"k"` // bytes
	SaltLen uint32 `json:"s"` // bytes
}

// Hasher derives and verifies argon2id password hashes.
type Hasher struct {
	currentVer int
	cur        Argon2Params
}

func NewHasher() *Hasher {
	return &Hasher{
		currentVer: 1,
		cur: Argon2Params{
			Time:    3,
			Memory:  64 * 1024, // 64 MiB
			Threads: 1,
			KeyLen:  32,
			SaltLen: 16,
		},
	}
}

func (h *Hasher) Hash(password string) (hash, salt, paramsJSON []byte, ver int, err error) {
	salt = make([]byte, h.cur.SaltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, nil, 0, err
	}
	hash = argon2.IDKey([]byte(password), salt, h.cur.Time, h.cur.Memory, h.cur.Threads, h.cur.KeyLen)
	paramsJSON, err = json.Marshal(h.cur)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	return hash, salt, paramsJSON, h.currentVer, nil
}

func (h *Hasher) Verify(password string, u *domain.User) bool {
	var stored Argon2Params
	if err := json.Unmarshal(u.ParamsJSON, &stored); err != nil {
		return false
	}
	calculated := argon2.IDKey([]byte(password), u.PasswordSalt, stored.Time, stored.Memory, stored.Threads, stored.KeyLen)
	return subtle.ConstantTimeCompare(calculated, u.PasswordHash) == 1
}

// ValidPassword enforces the shared policy: at least 8 characters with
// one uppercase, one lowercase and one digit. Applied identically at
// registration, reset and admin creation.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
