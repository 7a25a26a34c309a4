package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Jack-WebDev/ahsa/internal/api/dto"
	"github.com/Jack-WebDev/ahsa/internal/api/validate"
	"github.com/Jack-WebDev/ahsa/internal/auth"
	"github.com/Jack-WebDev/ahsa/internal/domain"
	"github.com/Jack-WebDev/ahsa/internal/service"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

const dateLayout = "2006-01-02"

// UsersHandler exposes the user auth endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register handles POST /api/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidation("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return util.NewValidation("invalid payload", map[string][]string{
			"dateOfBirth": {"must be a date in 2006-01-02 format"},
		})
	}

	message, err := h.users.Register(c.UserContext(), service.RegisterInput{
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       req.Email,
		Password:    req.Password,
		Gender:      domain.Gender(req.Gender),
		Title:       domain.Title(req.Title),
		Ethnicity:   domain.Ethnicity(req.Ethnicity),
		Province:    domain.Province(req.Province),
		DateOfBirth: dob,
		IDNumber:    req.IDNumber,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.MessageResponse{Message: message})
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidation("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	pair, message, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Message:      message,
	})
}

// ForgotPassword handles POST /api/users/forgot-password.
func (h *UsersHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidation("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	message, err := h.users.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// VerifyOTP handles POST /api/users/verify-otp.
func (h *UsersHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidation("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	resetToken, err := h.users.VerifyOTP(c.UserContext(), req.Email, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"resetToken": resetToken})
}

// ResetPassword handles POST /api/users/reset-password.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidation("invalid payload", nil)
	}
	if err := validate.Struct(req); err != nil {
		return err
	}

	message, err := h.users.ResetPassword(c.UserContext(), req.ResetToken, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: message})
}

// Me handles GET /api/users/me behind the refresh middleware.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized("no token")
	}

	user, err := h.users.Profile(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Surname:     user.Surname,
		Email:       user.Email,
		Gender:      string(user.Gender),
		Title:       string(user.Title),
		Ethnicity:   string(user.Ethnicity),
		Province:    string(user.Province),
		DateOfBirth: user.DateOfBirth.Format(dateLayout),
		IDNumber:    user.IDNumber,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		Role:        string(user.Role),
		Status:      string(user.Status),
	})
}
