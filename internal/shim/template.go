package shim

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
)

// FileName is the module name the interpreter imports automatically at
// startup when it is found on sys.path.
const FileName = "sitecustomize.py"

// Version identifies the revision of the embedded payload. Bump it whenever
// sitecustomize.py changes.
const Version = "1"

// RecordStart opens every log record the shim writes.
const RecordStart = "***START RECORD***"

//go:embed sitecustomize.py
var template []byte

// Template returns a copy of the embedded payload.
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// Digest returns the hex SHA-256 of the embedded payload.
func Digest() string {
	sum := sha256.Sum256(template)
	return hex.EncodeToString(sum[:])
}
