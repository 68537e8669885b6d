package cache

import "time"

const (
	ExpiryDefaultInMemory = 30 * time.Minute

	// ExpiryAdminRecipients bounds how stale the cached admin recipient
	// list for charge summary notifications may get
	ExpiryAdminRecipients = 5 * time.Minute
)
