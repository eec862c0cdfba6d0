// Package retry runs remote operations under a bounded retry policy.
package retry
