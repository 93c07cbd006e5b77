package controllers

import (
	"time"

	"studytrack_go/database"
	"studytrack_go/middleware"
	"studytrack_go/models"
	"studytrack_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct{}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns a token pair
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input, errs := utils.ValidateRegistration(req.Name, req.Email, req.Password, req.ConfirmPassword, req.Role)
	if errs == nil {
		// Uniqueness is only checked once the email is syntactically valid.
		var count int64
		if err := database.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return utils.FailInternal(c, "Registration failed", err)
		}
		if count > 0 {
			errs = map[string]string{"email": "A user with this email already exists."}
		}
	}
	if errs != nil {
		return utils.FailWithErrors(c, fiber.StatusBadRequest, utils.FirstRegistrationError(errs), errs)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return utils.FailInternal(c, "Registration failed", err)
	}

	user := models.User{
		Email:      input.Email,
		Name:       input.Name,
		Password:   hashedPassword,
		Role:       input.Role,
		IsActive:   true,
		DateJoined: time.Now(),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		// Covers the race where the same email lands twice between the
		// uniqueness check and the insert; the unique index rejects it.
		return utils.FailWithErrors(c, fiber.StatusBadRequest, "Registration failed",
			map[string]string{"detail": err.Error()})
	}

	token, refresh, err := middleware.GenerateTokenPair(&user)
	if err != nil {
		return utils.FailInternal(c, "Failed to generate token", err)
	}

	middleware.LogActivity(c, "CREATE", "users", fiber.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful",
		"user":    utils.ToUserDTO(&user),
		"token":   token,
		"refresh": refresh,
	})
}

// Login authenticates a user by email and password
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Please provide valid email and password")
	}

	email := utils.NormalizeEmail(req.Email)
	if !utils.IsValidEmail(email) || req.Password == "" {
		return utils.Fail(c, fiber.StatusBadRequest, "Please provide valid email and password")
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if !user.IsActive {
		return utils.Fail(c, fiber.StatusForbidden, "Account is disabled")
	}

	now := time.Now()
	if err := database.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return utils.FailInternal(c, "Login failed", err)
	}

	token, refresh, err := middleware.GenerateTokenPair(&user)
	if err != nil {
		return utils.FailInternal(c, "Failed to generate token", err)
	}

	middleware.LogActivity(c, "LOGIN", "auth", fiber.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    utils.ToUserDTO(&user),
		"token":   token,
		"refresh": refresh,
	})
}

// Verify confirms the bearer token is valid and returns the account
func (ac *AuthController) Verify(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    utils.ToUserDTO(user),
	})
}

// Logout invalidates the presented JWT by storing it in the Redis blacklist
// for 24 hours. The bearer token is optional: a logout without one (or with
// an already-expired one) still succeeds.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := middleware.ExtractBearerToken(c)
	if tokenString != "" {
		if err := middleware.BlacklistToken(tokenString, 24*time.Hour); err != nil {
			// Redis failure must not block logout
			middleware.LogActivity(c, "LOGOUT", "auth", fiber.Map{"error": err.Error()})
		} else if claims, err := middleware.ParseToken(tokenString); err == nil {
			middleware.LogActivity(c, "LOGOUT", "auth", fiber.Map{
				"user_id": claims.UserID,
				"email":   claims.Email,
			})
		}
	} else {
		middleware.LogActivity(c, "LOGOUT", "auth", fiber.Map{"note": "no token presented"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}
