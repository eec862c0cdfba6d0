// Package hasher computes and verifies the SHA-1 of mod archives.
//
// Files are streamed in fixed-size chunks, so memory use does not depend on
// archive size. A read failure is returned as errdefs.ErrTransient and never
// produces a partial hash. A hash that does not match is a *MismatchError,
// which unwraps to errdefs.ErrIntegrity.
//
// # Usage
//
//	if err := hasher.Verify(path, release.SHA1); errors.Is(err, errdefs.ErrIntegrity) {
//	    os.Remove(path)
//	}
package hasher
