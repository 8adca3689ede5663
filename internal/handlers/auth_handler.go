package handlers

import (
	"errors"
	"log"

	"pustaka/internal/httputil"
	"pustaka/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// The profile route sits behind the required-auth middleware.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/profile", authRequired, h.HandleProfile)
}

// RegisterRequest represents the request body for registration. Presence
// is the only rule for the password; its strength is the user's business.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Name     *string `json:"name"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest("INVALID_JSON", "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return httputil.BadRequest("VALIDATION_ERROR", registerValidationMessage(err))
	}

	user, token, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return httputil.Conflict("DUPLICATE_ENTRY", "User with this email already exists")
		}
		log.Printf("Error registering user: %v", err)
		return err
	}

	return httputil.Success(c, fiber.StatusCreated, "User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// registerValidationMessage distinguishes a missing field from a present
// but malformed email, so the failure message matches what actually failed.
func registerValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			if e.Tag() == "required" {
				return "Email and password are required"
			}
		}
		for _, e := range verrs {
			if e.Tag() == "email" {
				return "Email must be a valid email address"
			}
		}
	}
	return "Email and password are required"
}

// HandleLogin handles user login and issues a bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return httputil.BadRequest("INVALID_JSON", "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return httputil.BadRequest("VALIDATION_ERROR", "Email and password are required")
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return httputil.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleProfile returns the current user's projection.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return httputil.Unauthorized("AUTH_REQUIRED", "Authentication required")
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return httputil.NotFound("USER_NOT_FOUND", "User not found")
		}
		return err
	}

	return httputil.Success(c, fiber.StatusOK, "Profile retrieved successfully", user)
}
