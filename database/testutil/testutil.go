// Package testutil opens throwaway databases and seeds fixtures for package tests.
package testutil

import (
	"context"
	"entrelaunch/database"
	"entrelaunch/logger"
	"entrelaunch/models"
	courseModels "entrelaunch/models/course"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB returns a migrated in-memory SQLite database private to the calling test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := database.Open(sqlite.Open(dsn), database.NewGormLogger(logger.Nop(), gormLogger.Silent))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedUser(tb testing.TB, db *gorm.DB, email string) *models.User {
	tb.Helper()
	u := &models.User{Name: "Test User", Email: email, Password: "pw", Role: models.AccountUser}
	if err := db.WithContext(context.Background()).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates an ACTIVE free course; mutate adjusts it before insert.
func SeedCourse(tb testing.TB, db *gorm.DB, mutate func(*courseModels.Course)) *courseModels.Course {
	tb.Helper()
	c := &courseModels.Course{
		Title:  "Lean Startup Basics",
		Author: "EntreLaunch",
		IsFree: true,
		Price:  decimal.Zero,
		Status: courseModels.CourseActive,
	}
	if mutate != nil {
		mutate(c)
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLessons(tb testing.TB, db *gorm.DB, courseID uint, n int) []courseModels.Lesson {
	tb.Helper()
	lessons := make([]courseModels.Lesson, 0, n)
	for i := 0; i < n; i++ {
		l := courseModels.Lesson{CourseID: courseID, Title: fmt.Sprintf("Lesson %d", i+1), OrderIndex: i}
		if err := db.Create(&l).Error; err != nil {
			tb.Fatalf("seed lesson: %v", err)
		}
		lessons = append(lessons, l)
	}
	return lessons
}

// SeedExam attaches an exam to courseID with one question per mark. Each question
// has two answers; the first is correct.
func SeedExam(tb testing.TB, db *gorm.DB, courseID uint, maxAttempts int, marks ...int64) *courseModels.Exam {
	tb.Helper()
	cid := courseID
	exam := &courseModels.Exam{CourseID: &cid, Title: "Final exam", MaxAttempts: maxAttempts}
	total := decimal.Zero
	for i, m := range marks {
		mark := decimal.NewFromInt(m)
		total = total.Add(mark)
		exam.Questions = append(exam.Questions, courseModels.Question{
			Text:       fmt.Sprintf("Question %d", i+1),
			Mark:       mark,
			OrderIndex: i,
			Answers: []courseModels.Answer{
				{Text: "right", IsCorrect: true, OrderIndex: 0},
				{Text: "wrong", IsCorrect: false, OrderIndex: 1},
			},
		})
	}
	exam.MaxMark = total
	if err := db.Create(exam).Error; err != nil {
		tb.Fatalf("seed exam: %v", err)
	}
	return exam
}

func SeedPayment(tb testing.TB, db *gorm.DB, userID, courseID uint, amount int64) *models.Payment {
	tb.Helper()
	p := &models.Payment{
		UserID:     userID,
		TargetID:   courseID,
		TargetType: models.PaymentTargetCourse,
		Amount:     decimal.NewFromInt(amount),
		GatewayRef: fmt.Sprintf("gw-%d-%d", userID, courseID),
		Status:     models.PaymentCompleted,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed payment: %v", err)
	}
	return p
}
