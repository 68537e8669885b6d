package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// LockScope represents the scope of a database advisory lock
type LockScope string

const (
	// LockScopeLeaseProperty serializes lease creation per property
	LockScopeLeaseProperty LockScope = "lease_property"
)

// LockRequest describes an advisory lock acquisition
type LockRequest struct {
	Key string
	// Timeout bounds how long to wait for the lock; nil means the default,
	// zero or negative means fail-fast
	Timeout *time.Duration
}

const defaultLockTimeout = 30 * time.Second

// GetTimeout returns the effective lock timeout
func (r LockRequest) GetTimeout() time.Duration {
	if r.Timeout == nil {
		return defaultLockTimeout
	}
	return *r.Timeout
}

// GenerateLockKey generates a deterministic lock key from a scope and
// parameters. The key is a plain string; Postgres hashes it internally via
// hashtext().
func GenerateLockKey(scope LockScope, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}
	return b.String()
}
