package sellers

import (
	sellersvc "helwati-backend/internal/application/sellers"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds the sellers service.
type Handlers struct {
	Service *sellersvc.Service
}

// ViewSeller GET /api/v1/sellers/view-seller/:seller_id — public seller page.
func (h *Handlers) ViewSeller(c *fiber.Ctx) error {
	sid, err := uuid.Parse(c.Params("seller_id"))
	if err != nil {
		return response.Error(c, "Invalid seller ID format (must be a valid UUID)", 400, nil)
	}
	view, err := h.Service.ViewSeller(c.Context(), sid)
	if err != nil {
		return mapSellerError(c, err)
	}
	return response.Success(c, "Seller found", fiber.Map{"seller": view}, nil)
}

// WhatsAppLink GET /api/v1/sellers/whatsapp-link/:product_id — wa.me handoff
// URL with the pre-filled product inquiry message.
func (h *Handlers) WhatsAppLink(c *fiber.Ctx) error {
	pid, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}
	link, err := h.Service.ProductInquiryLink(c.Context(), pid)
	if err != nil {
		return mapSellerError(c, err)
	}
	return response.Success(c, "WhatsApp link", fiber.Map{"whatsapp_link": link}, nil)
}

// DashboardStats GET /api/v1/sellers/dashboard-stats — session seller's summary.
func (h *Handlers) DashboardStats(c *fiber.Ctx) error {
	sellerID := actorUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	stats, err := h.Service.Stats(c.Context(), sellerID)
	if err != nil {
		return mapSellerError(c, err)
	}
	return response.Success(c, "Dashboard stats", fiber.Map{"stats": stats}, nil)
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

func mapSellerError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	status := 500
	switch msg {
	case "seller_id is required", "product_id is required",
		"Seller has no contact number", "Seller not found in session":
		status = 400
	case "Seller not found", "Product not found":
		status = 404
	}
	return response.Error(c, msg, status, nil)
}
