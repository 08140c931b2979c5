package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey hashes a config hash plus structured options into a fixed-width
// key component.
func hashKey(configHash string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(append([]byte(configHash+"|"), data...))
	return fmt.Sprintf("%s:%s", configHash[:min(len(configHash), 12)], hex.EncodeToString(sum[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Pattern configurations are hashed from their interchange JSON form.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
