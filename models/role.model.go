package models

// Granted roles. STUDENT is held while the user has at least one active enrollment.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type UserRole struct {
	Base
	UserID uint   `json:"user_id" gorm:"not null;index:idx_user_role"`
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Role   string `json:"role" gorm:"type:varchar(64);not null;index:idx_user_role"`
}
