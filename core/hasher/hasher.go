package hasher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"mod-sync/core/errdefs"
)

// chunkSize only affects throughput, never the digest.
const chunkSize = 64 << 10

// MismatchError reports a file whose digest differs from the expected one.
// It unwraps to errdefs.ErrIntegrity.
type MismatchError struct {
	Path     string
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sha1 mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Got)
}

func (e *MismatchError) Unwrap() error { return errdefs.ErrIntegrity }

// ComputeSHA1 streams the file at path through SHA-1 and returns the lowercase
// hex digest. Open and read failures are returned wrapped in
// errdefs.ErrTransient; no partial digest is ever returned.
func ComputeSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", errdefs.ErrTransient, path, err)
	}
	defer f.Close()

	return HashReader(f, path)
}

// HashReader digests r in fixed-size chunks. name is only used in errors.
func HashReader(r io.Reader, name string) (string, error) {
	h := sha1.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", errdefs.ErrTransient, name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify hashes path and compares it with expected (case-insensitive).
// It returns nil on match, a *MismatchError on mismatch, and an I/O error
// (not ErrIntegrity) when the file cannot be read.
func Verify(path, expected string) error {
	got, err := ComputeSHA1(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, strings.TrimSpace(expected)) {
		return &MismatchError{
			Path:     path,
			Expected: strings.ToLower(strings.TrimSpace(expected)),
			Got:      got,
		}
	}
	return nil
}

// Matches is the boolean form of Verify. Mismatch yields (false, nil);
// read failures are still returned as errors.
func Matches(path, expected string) (bool, error) {
	err := Verify(path, expected)
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*MismatchError); ok {
		return false, nil
	}
	return false, err
}
