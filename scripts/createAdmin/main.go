package main

import (
	"context"
	"entrelaunch/config"
	"entrelaunch/database"
	"entrelaunch/logger"
	"entrelaunch/models"
	"entrelaunch/services/roles"
	"errors"
	"flag"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("usage: createAdmin -email admin@example.com -password <min 8 chars> [-name Name]")
	}

	cfg := config.LoadConfig()
	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.ConnectDb(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to the database", "error", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), cfg.SaltRound)
	if err != nil {
		appLog.Fatal("Failed to hash password", "error", err)
	}

	ctx := context.Background()
	roleService := roles.NewService(db, appLog)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("email = ?", strings.ToLower(*email)).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{Name: *name, Email: strings.ToLower(*email), Role: models.AccountAdmin, Password: string(hashed)}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&user).Updates(map[string]interface{}{"role": models.AccountAdmin, "password": string(hashed)}).Error; err != nil {
				return err
			}
		}
		return roleService.AssignRole(ctx, tx, user.ID, models.RoleAdmin)
	})
	if err != nil {
		appLog.Fatal("Failed to create admin", "email", *email, "error", err)
	}
	appLog.Info("Admin ready", "email", *email)
}
