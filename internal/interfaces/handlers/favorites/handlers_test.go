package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	favsvc "helwati-backend/internal/application/favorites"
	"helwati-backend/internal/application/notifications"
	"helwati-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeNotifier records fan-out calls.
type fakeNotifier struct {
	calls []notifications.CreateInput
}

func (f *fakeNotifier) Create(ctx context.Context, in notifications.CreateInput) (*domain.Notification, error) {
	f.calls = append(f.calls, in)
	return &domain.Notification{NotificationID: uuid.New()}, nil
}

func setupFavoritesApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeNotifier, uuid.UUID, *domain.Product) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Favorite{}))

	seller := &domain.User{UserID: uuid.New(), Email: "seller@example.com", Role: domain.RoleSeller}
	require.NoError(t, db.Create(seller).Error)
	product := &domain.Product{
		ProductID: uuid.New(),
		SellerID:  seller.UserID,
		Title:     "قلب اللوز",
		Category:  "traditional",
		Price:     1200,
		Status:    domain.ProductStatusActive,
	}
	require.NoError(t, db.Create(product).Error)

	buyerID := uuid.New()
	notifier := &fakeNotifier{}
	h := &Handlers{Service: &favsvc.Service{DB: db, Notifier: notifier}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"user_id": buyerID.String(),
			"role":    domain.RoleBuyer,
		})
		return c.Next()
	})
	app.Post("/favorites/add", h.AddFavorite)
	app.Delete("/favorites/remove", h.RemoveFavorite)
	app.Get("/favorites/my-favorites", h.MyFavorites)
	app.Delete("/favorites/clear-all", h.ClearFavorites)
	return app, db, notifier, buyerID, product
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestAddFavorite_NotifiesSeller(t *testing.T) {
	app, _, notifier, buyerID, product := setupFavoritesApp(t)

	code, _ := request(t, app, "POST", "/favorites/add", map[string]string{"product_id": product.ProductID.String()})
	assert.Equal(t, fiber.StatusOK, code)

	require.Len(t, notifier.calls, 1)
	call := notifier.calls[0]
	assert.Equal(t, product.SellerID, call.Recipient)
	assert.Equal(t, buyerID, call.Actor)
	assert.Equal(t, domain.NotificationTypeLike, call.Type)
	assert.Equal(t, "إعجاب جديد ❤️", call.Title)
	assert.Contains(t, call.Message, "قلب اللوز")
	assert.Equal(t, "/product/"+product.ProductID.String(), call.Link)
}

func TestAddFavorite_Idempotent(t *testing.T) {
	app, db, notifier, buyerID, product := setupFavoritesApp(t)

	body := map[string]string{"product_id": product.ProductID.String()}
	code, _ := request(t, app, "POST", "/favorites/add", body)
	require.Equal(t, fiber.StatusOK, code)
	code, _ = request(t, app, "POST", "/favorites/add", body)
	assert.Equal(t, fiber.StatusOK, code)

	var count int64
	db.Model(&domain.Favorite{}).Where("user_id = ?", buyerID).Count(&count)
	assert.Equal(t, int64(1), count)
	// Only the first add notifies
	assert.Len(t, notifier.calls, 1)
}

func TestAddFavorite_ProductNotFound(t *testing.T) {
	app, _, _, _, _ := setupFavoritesApp(t)
	code, _ := request(t, app, "POST", "/favorites/add", map[string]string{"product_id": uuid.NewString()})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestRemoveFavorite(t *testing.T) {
	app, db, _, buyerID, product := setupFavoritesApp(t)
	body := map[string]string{"product_id": product.ProductID.String()}
	request(t, app, "POST", "/favorites/add", body)

	code, _ := request(t, app, "DELETE", "/favorites/remove", body)
	assert.Equal(t, fiber.StatusOK, code)

	var count int64
	db.Model(&domain.Favorite{}).Where("user_id = ?", buyerID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Removing an absent favorite is a no-op
	code, _ = request(t, app, "DELETE", "/favorites/remove", body)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestMyFavorites(t *testing.T) {
	app, _, _, _, product := setupFavoritesApp(t)
	request(t, app, "POST", "/favorites/add", map[string]string{"product_id": product.ProductID.String()})

	code, out := request(t, app, "GET", "/favorites/my-favorites", nil)
	assert.Equal(t, fiber.StatusOK, code)
	data, _ := out["data"].(map[string]interface{})
	list, _ := data["favorites"].([]interface{})
	require.Len(t, list, 1)
	first, _ := list[0].(map[string]interface{})
	inner, _ := first["product"].(map[string]interface{})
	require.NotNil(t, inner)
	assert.Equal(t, "قلب اللوز", inner["title"])
}

func TestClearFavorites(t *testing.T) {
	app, db, _, buyerID, product := setupFavoritesApp(t)
	request(t, app, "POST", "/favorites/add", map[string]string{"product_id": product.ProductID.String()})

	code, _ := request(t, app, "DELETE", "/favorites/clear-all", nil)
	assert.Equal(t, fiber.StatusOK, code)

	var count int64
	db.Model(&domain.Favorite{}).Where("user_id = ?", buyerID).Count(&count)
	assert.Equal(t, int64(0), count)
}
