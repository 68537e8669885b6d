package notification

import (
	ierr "github.com/leaseflow/leaseflow/internal/errors"
	"github.com/leaseflow/leaseflow/internal/types"
)

// Notification is a persisted message for a recipient's inbox. Meta carries
// embedded metadata, e.g. the charge reference and reminder kind used to
// deduplicate payment reminders.
type Notification struct {
	ID     string                 `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	UserID string                 `json:"user_id" gorm:"column:user_id;type:varchar(64);index"`
	Type   types.NotificationType `json:"type" gorm:"column:type;type:varchar(32)"`
	Title  string                 `json:"title" gorm:"column:title;type:varchar(255)"`
	Body   string                 `json:"body" gorm:"column:body;type:text"`
	Link   string                 `json:"link" gorm:"column:link;type:varchar(255)"`
	Meta   map[string]string      `json:"meta,omitempty" gorm:"column:meta;serializer:json"`
	IsRead bool                   `json:"is_read" gorm:"column:is_read;default:false"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (Notification) TableName() string {
	return "notifications"
}

// Validate checks invariants on the notification
func (n *Notification) Validate() error {
	if n.UserID == "" {
		return ierr.NewError("user_id is required").
			Mark(ierr.ErrValidation)
	}
	if n.Title == "" {
		return ierr.NewError("title is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MetaMatches reports whether every key/value pair in want is present in
// the notification's meta.
func (n *Notification) MetaMatches(want map[string]string) bool {
	for k, v := range want {
		if n.Meta[k] != v {
			return false
		}
	}
	return true
}
