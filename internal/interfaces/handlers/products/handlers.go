package products

import (
	productsvc "helwati-backend/internal/application/products"
	"helwati-backend/internal/domain"
	"helwati-backend/internal/middleware"
	"helwati-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds the products service.
type Handlers struct {
	Service *productsvc.Service
}

// CreateProductRequest body: title, description, price, category, image_url.
type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// CreateProduct POST /api/v1/products/create-product — seller lists a new product.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	sellerID := actorUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Missing required fields", 400, nil)
	}
	if req.Title == "" || req.Category == "" || req.Price == 0 {
		return response.Error(c, "Missing required fields", 400, nil)
	}

	product, err := h.Service.CreateProduct(c.Context(), productsvc.CreateProductInput{
		SellerID:    sellerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err.Error(), 400, nil)
	}
	return response.SuccessCreated(c, "Product created successfully", fiber.Map{"product": productJSON(product)}, nil)
}

// Feed GET /api/v1/products/feed?category=&q=&wilaya= — public home feed.
// Filtering runs in-process so feed and search behave identically.
func (h *Handlers) Feed(c *fiber.Ctx) error {
	products, err := h.Service.Feed(c.Context(), productsvc.FeedInput{
		Category: c.Query("category"),
		Query:    c.Query("q"),
		Wilaya:   c.Query("wilaya"),
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	out := make([]fiber.Map, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	return response.Success(c, "Products found", fiber.Map{"products": out}, fiber.Map{"count": len(out)})
}

// ViewProduct GET /api/v1/products/view-product/:product_id — public product detail.
func (h *Handlers) ViewProduct(c *fiber.Ctx) error {
	pid, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}
	product, err := h.Service.GetProductByID(c.Context(), pid)
	if err != nil {
		return mapProductError(c, err)
	}
	return response.Success(c, "Product found", fiber.Map{"product": productJSON(product)}, nil)
}

// MyProducts GET /api/v1/products/my-products — the session seller's own products.
func (h *Handlers) MyProducts(c *fiber.Ctx) error {
	sellerID := actorUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	products, err := h.Service.SellerProducts(c.Context(), sellerID)
	if err != nil {
		return mapProductError(c, err)
	}
	out := make([]fiber.Map, 0, len(products))
	for i := range products {
		out = append(out, productJSON(&products[i]))
	}
	return response.Success(c, "Products found", fiber.Map{"products": out}, fiber.Map{"count": len(out)})
}

// EditProductRequest body: product_id plus optional new_* fields.
type EditProductRequest struct {
	ProductID      string   `json:"product_id"`
	NewTitle       *string  `json:"new_title"`
	NewDescription *string  `json:"new_description"`
	NewPrice       *float64 `json:"new_price"`
	NewImageURL    *string  `json:"new_image_url"`
}

// EditProduct PUT /api/v1/products/edit-product — owner edits an active product.
func (h *Handlers) EditProduct(c *fiber.Ctx) error {
	sellerID := actorUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req EditProductRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "product_id is required", 400, nil)
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}

	product, err := h.Service.EditProduct(c.Context(), productsvc.EditProductInput{
		ProductID:      pid,
		SellerID:       sellerID,
		NewTitle:       req.NewTitle,
		NewDescription: req.NewDescription,
		NewPrice:       req.NewPrice,
		NewImageURL:    req.NewImageURL,
	})
	if err != nil {
		return mapProductError(c, err)
	}
	return response.Success(c, "Product updated successfully", fiber.Map{"product": productJSON(product)}, nil)
}

// RemoveProductRequest body: product_id.
type RemoveProductRequest struct {
	ProductID string `json:"product_id"`
}

// RemoveProduct DELETE /api/v1/products/remove-product — owner closes a listing.
func (h *Handlers) RemoveProduct(c *fiber.Ctx) error {
	sellerID := actorUserID(c)
	if sellerID == uuid.Nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RemoveProductRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return response.Error(c, "product_id is required", 400, nil)
	}
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.Error(c, "Invalid product ID format (must be a valid UUID)", 400, nil)
	}

	product, err := h.Service.RemoveProduct(c.Context(), pid, sellerID)
	if err != nil {
		return mapProductError(c, err)
	}
	return response.Success(c, "Product removed successfully", fiber.Map{"product": productJSON(product)}, nil)
}

// actorUserID reads the session user id from Locals; uuid.Nil when absent.
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

func productJSON(p *domain.Product) fiber.Map {
	out := fiber.Map{
		"product_id":  p.ProductID.String(),
		"seller_id":   p.SellerID.String(),
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"image_url":   p.ImageURL,
		"status":      p.Status,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
	if p.Seller != nil {
		out["seller"] = fiber.Map{
			"user_id":    p.Seller.UserID.String(),
			"fullname":   p.Seller.Fullname,
			"wilaya":     p.Seller.Wilaya,
			"avatar_url": p.Seller.AvatarURL,
			"rating":     p.Seller.Rating,
		}
	}
	return out
}

func mapProductError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	status := 500
	switch msg {
	case "Missing product_id", "Missing seller_id", "product_id is required",
		"Invalid title", "Invalid price", "Invalid category",
		"No valid changes provided", "Product is not editable", "Product is not active",
		"Seller not found in session":
		status = 400
	case "Product not found":
		status = 404
	case "Unauthorized product edit", "Unauthorized":
		status = 403
	}
	return response.Error(c, msg, status, nil)
}
