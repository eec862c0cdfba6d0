// Package reconcile decides which remote releases of a mod are genuine updates
// over what is installed locally.
//
// A local and a remote record are matched by mod name only. The engine takes
// the local latest release as a baseline and keeps the remote releases that
// rank strictly above it, returning a copy of the remote record that carries
// just that subset.
//
// # Modes
//
//  1. Version (default): a remote release qualifies when its version is higher
//     than the local latest version. Releases with unparseable versions never
//     qualify. A local baseline that cannot be parsed counts as no baseline.
//
//  2. Timestamp: local release times are first back-filled from the remote
//     release with the same SHA-1 (on a copy). Local archives with no remote
//     match get Epoch. A remote release qualifies when it was released after the
//     back-filled local latest. This depends on the catalog keeping hashes stable
//     and is offered as a secondary policy only.
//
// # Usage
//
//	engine, _ := reconcile.NewEngine("version")
//	result, err := engine.Reconcile(local, remote)
//	if result.HasUpdate() {
//	    fmt.Println(result.Versions())
//	}
package reconcile
