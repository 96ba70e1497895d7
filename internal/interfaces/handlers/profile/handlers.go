package profile

import (
	profilesvc "helwati-backend/internal/application/profile"
	"helwati-backend/internal/domain"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds the profile service and session config.
type Handlers struct {
	Service *profilesvc.Service
}

// GetProfile GET /api/v1/profile — returns the session user's profile row.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	actor := getSessionActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	uid, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Error(c, "Invalid user ID format (must be a valid UUID)", 400, nil)
	}

	u, err := h.Service.GetProfile(c.Context(), uid)
	if err != nil {
		return mapProfileError(c, err)
	}
	return response.Success(c, "Profile found", fiber.Map{"profile": safeProfile(u)}, nil)
}

// UpdateProfile PUT /api/v1/profile/update — updates allowed profile fields for the session user.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	actor := getSessionActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	uid, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Error(c, "Invalid user ID format (must be a valid UUID)", 400, nil)
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil || len(body) == 0 {
		return response.Error(c, "Missing update fields", 400, nil)
	}

	u, err := h.Service.UpdateProfile(c.Context(), uid, body)
	if err != nil {
		return mapProfileError(c, err)
	}

	// Keep the session identity in step with the stored profile
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   u.UserID.String(),
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
		Wilaya:   u.Wilaya,
	})

	return response.Success(c, "Profile updated successfully", fiber.Map{"profile": safeProfile(u)}, nil)
}

// SwitchRoleRequest body: role ("buyer" or "seller").
type SwitchRoleRequest struct {
	Role string `json:"role"`
}

// SwitchRole PATCH /api/v1/profile/switch-role — flips the account between
// buyer and seller and rewrites the session so subsequent requests see the
// new role without re-fetching the profile.
func (h *Handlers) SwitchRole(c *fiber.Ctx) error {
	actor := getSessionActor(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	uid, err := uuid.Parse(actor.UserID)
	if err != nil {
		return response.Error(c, "Invalid user ID format (must be a valid UUID)", 400, nil)
	}

	var req SwitchRoleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return response.Error(c, "role is required", 400, nil)
	}

	u, err := h.Service.SwitchRole(c.Context(), uid, req.Role)
	if err != nil {
		return mapProfileError(c, err)
	}

	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   u.UserID.String(),
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     u.Role,
		Wilaya:   u.Wilaya,
	})

	return response.Success(c, "Role updated successfully", fiber.Map{"profile": safeProfile(u)}, nil)
}

type sessionActor struct {
	UserID string
	Role   string
	Wilaya string
}

func getSessionActor(c *fiber.Ctx) *sessionActor {
	u := middleware.GetUser(c)
	if u == nil {
		return nil
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return nil
	}
	userID, _ := m["user_id"].(string)
	role, _ := m["role"].(string)
	if userID == "" || role == "" {
		return nil
	}
	wilaya, _ := m["wilaya"].(string)
	return &sessionActor{UserID: userID, Role: role, Wilaya: wilaya}
}

func safeProfile(u *domain.User) fiber.Map {
	return fiber.Map{
		"user_id":    u.UserID.String(),
		"fullname":   u.Fullname,
		"email":      u.Email,
		"phone":      u.Phone,
		"wilaya":     u.Wilaya,
		"bio":        u.Bio,
		"avatar_url": u.AvatarURL,
		"role":       u.Role,
		"rating":     u.Rating,
		"createdAt":  u.CreatedAt,
		"updatedAt":  u.UpdatedAt,
	}
}

func mapProfileError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	status := 500
	switch msg {
	case "Missing user ID", "Missing update fields", "No valid update fields provided",
		"Full name contains invalid characters", "Invalid wilaya",
		"Invalid phone number format", "Invalid role",
		"Seller accounts require a phone number", "Seller accounts require a wilaya":
		status = 400
	case "Profile not found":
		status = 404
	}
	return response.Error(c, msg, status, nil)
}
