package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Entity id prefixes. Every persisted record gets a prefixed ULID so ids
// are sortable by creation time and self-describing in logs.
const (
	UUID_PREFIX_LEASE             = "lease"
	UUID_PREFIX_CHARGE            = "chrg"
	UUID_PREFIX_RECURRING_TEMPLATE = "tmpl"
	UUID_PREFIX_LEASE_CONTRACT    = "cntr"
	UUID_PREFIX_LEASE_TERMINATION = "term"
	UUID_PREFIX_LEASE_RENEWAL     = "renw"
	UUID_PREFIX_NOTIFICATION      = "notf"
	UUID_PREFIX_USER              = "user"
	UUID_PREFIX_REQUEST           = "req"
)

// GenerateUUID returns a lowercase ULID
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a prefixed lowercase ULID, e.g. lease_01h...
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
