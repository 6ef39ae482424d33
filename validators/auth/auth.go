package authValidator

import (
	"entrelaunch/validators"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	SignupKey   = "validatedSignup"
	LoginKey    = "validatedLogin"
	HistoryKey  = "validatedLoginHistory"
	PasswordKey = "validatedChangePassword"
)

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	CnfPassword     string `json:"cnfPassword" validate:"required,eqfield=NewPassword"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return validators.Body[SignupRequest](SignupKey)
}

// Login validator middleware
func Login() fiber.Handler {
	return validators.Body[LoginRequest](LoginKey)
}

func ChangeLoginPassword() fiber.Handler {
	return validators.Body[ChangePasswordRequest](PasswordKey)
}

func LoginHistoryList() fiber.Handler {
	return validators.Query[validators.Pagination](HistoryKey)
}

// Normalize trims the request and lower-cases the email.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Mobile = strings.TrimSpace(r.Mobile)
}
