package favorites

import (
	favsvc "helwati-backend/internal/application/favorites"
	"helwati-backend/internal/domain"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds the favorites service.
type Handlers struct {
	Service *favsvc.Service
}

// AddFavoriteRequest body: product_id.
type AddFavoriteRequest struct {
	ProductID string `json:"product_id"`
}

// AddFavorite POST /api/v1/favorites/add — favorite a product. Idempotent;
// a fresh favorite notifies the product's seller.
func (h *Handlers) AddFavorite(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return response.Error(c, "product_id is required", 400, nil)
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}

	fav, err := h.Service.Add(c.Context(), userID, pid)
	if err != nil {
		return mapFavoriteError(c, err)
	}
	return response.Success(c, "Product favorited", fiber.Map{"favorite": favoriteJSON(fav)}, nil)
}

// RemoveFavorite DELETE /api/v1/favorites/remove — unfavorite; absent is a no-op.
func (h *Handlers) RemoveFavorite(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return response.Error(c, "product_id is required", 400, nil)
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}

	if err := h.Service.Remove(c.Context(), userID, pid); err != nil {
		return mapFavoriteError(c, err)
	}
	return response.Success(c, "Favorite removed", nil, nil)
}

// MyFavorites GET /api/v1/favorites/my-favorites — the session user's saved products.
func (h *Handlers) MyFavorites(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	favs, err := h.Service.List(c.Context(), userID)
	if err != nil {
		return mapFavoriteError(c, err)
	}
	out := make([]fiber.Map, 0, len(favs))
	for i := range favs {
		out = append(out, favoriteJSON(&favs[i]))
	}
	return response.Success(c, "Favorites found", fiber.Map{"favorites": out}, fiber.Map{"count": len(out)})
}

// ClearFavorites DELETE /api/v1/favorites/clear-all — remove all saved products.
func (h *Handlers) ClearFavorites(c *fiber.Ctx) error {
	userID := actorUserID(c)
	if userID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.ClearAll(c.Context(), userID); err != nil {
		return mapFavoriteError(c, err)
	}
	return response.Success(c, "Favorites cleared", nil, nil)
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

func favoriteJSON(f *domain.Favorite) fiber.Map {
	out := fiber.Map{
		"favorite_id": f.FavoriteID.String(),
		"user_id":     f.UserID.String(),
		"product_id":  f.ProductID.String(),
		"createdAt":   f.CreatedAt,
	}
	if f.Product != nil {
		out["product"] = fiber.Map{
			"product_id": f.Product.ProductID.String(),
			"title":      f.Product.Title,
			"price":      f.Product.Price,
			"category":   f.Product.Category,
			"image_url":  f.Product.ImageURL,
			"status":     f.Product.Status,
		}
	}
	return out
}

func mapFavoriteError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	status := 500
	switch msg {
	case "Missing user ID", "product_id is required":
		status = 400
	case "Product not found":
		status = 404
	}
	return response.Error(c, msg, status, nil)
}
