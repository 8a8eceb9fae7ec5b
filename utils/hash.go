package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"FormUp/config"
)

// HashPhone produces a salted lookup hash for a phone number. The plaintext is
// only ever stored encrypted; equality checks go through this hash.
func HashPhone(phone string) string {
	key := config.Cfg.PhoneHashSalt

	sum := sha256.Sum256([]byte(key + ":" + phone))

	return hex.EncodeToString(sum[:])
}
