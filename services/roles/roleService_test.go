package roles

import (
	"context"
	"entrelaunch/database/testutil"
	"entrelaunch/models"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssignAndRemoveRole(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := NewService(db, testutil.Logger(t))
	user := testutil.SeedUser(t, db, "roles@example.com")

	require.NoError(t, svc.AssignRole(ctx, nil, user.ID, models.RoleStudent))
	require.NoError(t, svc.AssignRole(ctx, nil, user.ID, models.RoleStudent))

	var grants int64
	require.NoError(t, db.Model(&models.UserRole{}).Scopes(models.Alive).Where("user_id = ?", user.ID).Count(&grants).Error)
	assert.Equal(t, int64(1), grants)

	held, err := svc.IsUserInRole(ctx, nil, user.ID, models.RoleStudent)
	require.NoError(t, err)
	assert.True(t, held)

	held, err = svc.IsUserInRole(ctx, nil, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, held)

	require.NoError(t, svc.RemoveRole(ctx, nil, user.ID, models.RoleStudent))
	require.NoError(t, svc.RemoveRole(ctx, nil, user.ID, models.RoleStudent))

	held, err = svc.IsUserInRole(ctx, nil, user.ID, models.RoleStudent)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestAssignRoleRollsBackWithTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := NewService(db, testutil.Logger(t))
	user := testutil.SeedUser(t, db, "tx@example.com")
	boom := errors.New("boom")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := svc.AssignRole(ctx, tx, user.ID, models.RoleAdmin); err != nil {
			return err
		}
		held, err := svc.IsUserInRole(ctx, tx, user.ID, models.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, held)
		return boom
	})
	require.ErrorIs(t, err, boom)

	held, err := svc.IsUserInRole(ctx, nil, user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, held)
}
