package roles

import (
	"context"
	"entrelaunch/logger"
	"entrelaunch/models"
	"errors"

	"gorm.io/gorm"
)

// Service grants and revokes roles. Every method accepts an optional transaction
// handle; nil means the service's own connection.
type Service interface {
	AssignRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error
	RemoveRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error
	IsUserInRole(ctx context.Context, tx *gorm.DB, userID uint, role string) (bool, error)
}

type roleService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(db *gorm.DB, baseLog *logger.Logger) Service {
	return &roleService{db: db, log: baseLog.With("service", "RoleService")}
}

func (s *roleService) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx)
}

// AssignRole is idempotent: an already-held role is left as is.
func (s *roleService) AssignRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error {
	held, err := s.IsUserInRole(ctx, tx, userID, role)
	if err != nil {
		return err
	}
	if held {
		return nil
	}
	grant := models.UserRole{UserID: userID, Role: role}
	if err := s.conn(ctx, tx).Create(&grant).Error; err != nil {
		return err
	}
	s.log.Debug("Role assigned", "user_id", userID, "role", role)
	return nil
}

func (s *roleService) RemoveRole(ctx context.Context, tx *gorm.DB, userID uint, role string) error {
	res := s.conn(ctx, tx).
		Model(&models.UserRole{}).
		Scopes(models.Alive).
		Where("user_id = ? AND role = ?", userID, role).
		Update("lifecycle", models.LifecycleDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Debug("Role removed", "user_id", userID, "role", role)
	}
	return nil
}

func (s *roleService) IsUserInRole(ctx context.Context, tx *gorm.DB, userID uint, role string) (bool, error) {
	var grant models.UserRole
	err := s.conn(ctx, tx).
		Scopes(models.Alive).
		Where("user_id = ? AND role = ?", userID, role).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
