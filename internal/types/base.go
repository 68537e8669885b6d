package types

import "time"

// Status represents the row-level state of a record, independent of any
// domain lifecycle status the record carries.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

// BaseModel carries the audit columns shared by every persisted entity
type BaseModel struct {
	Status    Status    `json:"status" gorm:"column:status;type:varchar(20);default:'published'"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
	CreatedBy string    `json:"created_by" gorm:"column:created_by;type:varchar(64)"`
	UpdatedBy string    `json:"updated_by" gorm:"column:updated_by;type:varchar(64)"`
}

// GetDefaultBaseModel returns a BaseModel stamped with the current time and
// the acting user from context
func GetDefaultBaseModel(userID string) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: userID,
		UpdatedBy: userID,
	}
}
