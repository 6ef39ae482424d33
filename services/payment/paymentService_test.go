package payment

import (
	"context"
	"entrelaunch/database/testutil"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"entrelaunch/services/result"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := NewService(db, testutil.Logger(t))
	user := testutil.SeedUser(t, db, "payer@example.com")
	paid := testutil.SeedCourse(t, db, func(c *courseModels.Course) {
		c.IsFree = false
		c.Price = decimal.NewFromInt(499)
	})
	free := testutil.SeedCourse(t, db, nil)

	tests := []struct {
		name string
		req  PaymentCreate
		kind result.ErrorType
	}{
		{"zero amount", PaymentCreate{UserID: user.ID, CourseID: paid.ID, Amount: decimal.Zero}, result.Validation},
		{"unknown course", PaymentCreate{UserID: user.ID, CourseID: 9999, Amount: decimal.NewFromInt(10)}, result.NotFound},
		{"free course", PaymentCreate{UserID: user.ID, CourseID: free.ID, Amount: decimal.NewFromInt(10)}, result.BusinessRule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := svc.RecordPayment(ctx, tc.req)
			assert.False(t, res.IsSuccess)
			assert.Equal(t, tc.kind, res.Kind())
		})
	}

	ok, err := svc.IsPaid(ctx, nil, paid.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	res := svc.RecordPayment(ctx, PaymentCreate{UserID: user.ID, CourseID: paid.ID, Amount: decimal.NewFromInt(499), GatewayRef: "pay_123"})
	require.True(t, res.IsSuccess, res.Message)
	assert.Equal(t, models.PaymentCompleted, res.Data.Status)

	dup := svc.RecordPayment(ctx, PaymentCreate{UserID: user.ID, CourseID: paid.ID, Amount: decimal.NewFromInt(499), GatewayRef: "pay_123"})
	assert.Equal(t, result.Conflict, dup.Kind())

	ok, err = svc.IsPaid(ctx, db, paid.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list := svc.ListUserPayments(ctx, user.ID)
	require.True(t, list.IsSuccess)
	assert.Len(t, list.Data, 1)
}

func TestIsPaidIgnoresRefundedPayments(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := NewService(db, testutil.Logger(t))
	user := testutil.SeedUser(t, db, "refunded@example.com")
	course := testutil.SeedCourse(t, db, func(c *courseModels.Course) { c.IsFree = false; c.Price = decimal.NewFromInt(100) })
	p := testutil.SeedPayment(t, db, user.ID, course.ID, 100)

	require.NoError(t, db.Model(p).Update("status", models.PaymentRefunded).Error)

	ok, err := svc.IsPaid(ctx, nil, course.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
