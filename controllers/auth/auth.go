package authController

import (
	"entrelaunch/database"
	"entrelaunch/logger"
	"entrelaunch/middleware"
	"entrelaunch/models"
	"entrelaunch/services/result"
	"entrelaunch/validators"
	authValidator "entrelaunch/validators/auth"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	blockDuration   = 15 * time.Minute
)

type Handler struct {
	db        *gorm.DB
	log       *logger.Logger
	jwtSecret string
	saltRound int
	now       func() time.Time
}

func NewHandler(db *gorm.DB, log *logger.Logger, jwtSecret string, saltRound int) *Handler {
	return &Handler{
		db:        db,
		log:       log.With("controller", "AuthController"),
		jwtSecret: jwtSecret,
		saltRound: saltRound,
		now:       time.Now,
	}
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	reqData := validators.Get[authValidator.SignupRequest](c, authValidator.SignupKey)
	reqData.Normalize()
	db := h.db.WithContext(c.UserContext())

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", reqData.Email).Count(&existing).Error; err != nil {
		h.log.Error("Error checking email", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if existing > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), h.saltRound)
	if err != nil {
		h.log.Error("Error hashing password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Role:     models.AccountUser,
		Password: string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		h.log.Error("Error saving user", "email", reqData.Email, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	h.log.Info("User registered", "user_id", newUser.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	reqData := validators.Get[authValidator.LoginRequest](c, authValidator.LoginKey)
	db := h.db.WithContext(c.UserContext())
	now := h.now()

	var user models.User
	err := db.Scopes(models.Alive).Where("email = ?", strings.ToLower(strings.TrimSpace(reqData.Email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
		}
		h.log.Error("Error loading user", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		updates := map[string]interface{}{"failed_login_attempts": gorm.Expr("failed_login_attempts + 1")}
		if user.FailedLoginAttempts+1 >= maxFailedLogins {
			updates["failed_login_attempts"] = 0
			updates["blocked_until"] = now.Add(blockDuration)
			h.log.Warn("User blocked after failed logins", "user_id", user.ID)
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			h.log.Error("Error recording failed login", "user_id", user.ID, "error", err)
		}
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"last_login":            now,
		"failed_login_attempts": 0,
		"blocked_until":         nil,
	}).Error; err != nil {
		h.log.Error("Error saving last login time", "user_id", user.ID, "error", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	tracking := models.LoginTracking{UserID: user.ID, IPAddress: ip, Device: c.Get("User-Agent"), Timestamp: now}
	if err := db.Create(&tracking).Error; err != nil {
		h.log.Error("Error saving login tracking details", "user_id", user.ID, "error", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email, h.jwtSecret)
	if err != nil {
		h.log.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// LoginHistoryList returns the caller's recent sign-ins, newest first.
func (h *Handler) LoginHistoryList(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	page := validators.Get[validators.Pagination](c, authValidator.HistoryKey)
	offset, pageNo, limit := result.Offset(page.Page, page.Limit)

	db := h.db.WithContext(c.UserContext()).Model(&models.LoginTracking{}).Where("user_id = ?", userID)
	var total int64
	if err := db.Count(&total).Error; err != nil {
		h.log.Error("Failed to count login history", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}
	history := []models.LoginTracking{}
	if err := db.Order("timestamp desc, id desc").Offset(offset).Limit(limit).Find(&history).Error; err != nil {
		h.log.Error("Failed to fetch login history", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched successfully.",
		result.Page[models.LoginTracking]{Items: history, Total: total, Page: pageNo, Limit: limit})
}

func (h *Handler) ChangeLoginPassword(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user session!", nil)
	}
	reqData := validators.Get[authValidator.ChangePasswordRequest](c, authValidator.PasswordKey)
	db := h.db.WithContext(c.UserContext())

	var user models.User
	if err := db.Scopes(models.Alive).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		h.log.Error("Error loading user", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), h.saltRound)
	if err != nil {
		h.log.Error("Error hashing password", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to hash password!", nil)
	}
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		h.log.Error("Error updating user password", "user_id", userID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}
