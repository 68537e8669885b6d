package user

import (
	"context"

	"github.com/leaseflow/leaseflow/internal/types"
)

// User is the minimal projection of a user this core reads: notification
// recipients and administrative summary recipients.
type User struct {
	ID    string         `json:"id" gorm:"column:id;primaryKey;type:varchar(64)"`
	Email string         `json:"email" gorm:"column:email;type:varchar(255)"`
	Name  string         `json:"name" gorm:"column:name;type:varchar(255)"`
	Role  types.UserRole `json:"role" gorm:"column:role;type:varchar(20);index"`

	types.BaseModel
}

// TableName overrides the gorm table name
func (User) TableName() string {
	return "users"
}

// Repository defines the read-side contract on users
type Repository interface {
	// Get retrieves a user by id
	Get(ctx context.Context, id string) (*User, error)

	// ListAdmins retrieves every user holding an administrative role
	ListAdmins(ctx context.Context) ([]*User, error)
}
