// Package version parses and orders mod version strings.
//
// Catalog versions are one to three dotted numeric components with optional
// prerelease and build suffixes ("2.0", "0.18.01", "1.1.7-rc1"). Parse maps
// them onto canonical semver, dropping leading zeros, so comparison is
// numeric per component: "1.10.0" is newer than "1.9.0".
//
// Strings that do not parse fail with ErrInvalidVersion, which unwraps to
// errdefs.ErrValidation. Callers that need a total order over arbitrary
// strings use CompareInvalidOldest, which ranks every invalid version below
// every valid one.
//
// # Usage
//
//	c, err := version.Compare("1.10.0", "1.9.3") // c > 0
//	v, _ := version.Parse("0.18.01")
//	fmt.Println(v.Canonical()) // v0.18.1
package version
