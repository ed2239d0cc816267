package dedupe

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// fileReadChunkSize bounds memory while hashing: input is streamed in fixed
// chunks, never read whole.
const fileReadChunkSize = 8192

// HashFile computes the content fingerprint of a file: an MD5 over the raw
// bytes. Name and extension are excluded, so two byte-identical files hash
// equal regardless of what they are called. Collision resistance, not
// cryptographic strength, is what matters here.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, fileReadChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
