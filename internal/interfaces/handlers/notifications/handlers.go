package notifications

import (
	"strconv"

	notifsvc "helwati-backend/internal/application/notifications"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds the notifications service.
type Handlers struct {
	Service *notifsvc.Service
}

// List GET /api/v1/notifications?limit= — the session user's feed, newest first.
func (h *Handlers) List(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	limit := notifsvc.DefaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return response.Error(c, "Invalid limit", 400, nil)
		}
		limit = n
	}

	items, err := h.Service.List(c.Context(), userID, limit)
	if err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "Notifications found", fiber.Map{"notifications": items}, fiber.Map{"count": len(items)})
}

// MarkRead PATCH /api/v1/notifications/mark-read/:notification_id — idempotent.
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	nid, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return response.Error(c, "Invalid notification ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.MarkRead(c.Context(), userID, nid); err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "Notification marked as read", nil, nil)
}

// MarkAllRead PATCH /api/v1/notifications/mark-all-read
func (h *Handlers) MarkAllRead(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.MarkAllRead(c.Context(), userID); err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "All notifications marked as read", nil, nil)
}

// Delete DELETE /api/v1/notifications/delete/:notification_id — swipe-to-delete
// commit. Deleting an absent notification is a no-op.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	nid, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return response.Error(c, "Invalid notification ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), userID, nid); err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "Notification deleted", nil, nil)
}

// ClearAll DELETE /api/v1/notifications/clear-all
func (h *Handlers) ClearAll(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.ClearAll(c.Context(), userID); err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "Notifications cleared", nil, nil)
}

// UnreadCount GET /api/v1/notifications/unread-count — badge count, always a
// fresh table count rather than a cached tally.
func (h *Handlers) UnreadCount(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	count, err := h.Service.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapNotificationError(c, err)
	}
	return response.Success(c, "Unread count", fiber.Map{"unread_count": count}, nil)
}

func actorUserID(c *fiber.Ctx) uuid.UUID {
	u := middleware.GetUser(c)
	if u == nil {
		return uuid.Nil
	}
	m, ok := u.(map[string]interface{})
	if !ok {
		return uuid.Nil
	}
	idStr, _ := m["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func mapNotificationError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	status := 500
	switch msg {
	case "Missing recipient", "Invalid limit":
		status = 400
	}
	return response.Error(c, msg, status, nil)
}
