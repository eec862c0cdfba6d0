// Package rayid assigns every request an ID, stored in the fiber locals under
// LocalsKey and echoed in the X-Ray-ID response header.
package rayid
