package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	uploadsvc "helwati-backend/internal/application/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastBucket string
	lastPath   string
	err        error
}

func (f *fakeClient) CreateSignedUploadURL(ctx context.Context, bucket, path string) (string, error) {
	f.lastBucket = bucket
	f.lastPath = path
	if f.err != nil {
		return "", f.err
	}
	return "https://example.com/upload", nil
}

func setupUploadTest(t *testing.T) (*Handlers, *fakeClient) {
	client := &fakeClient{}
	svc := &uploadsvc.Service{
		Client:      client,
		SupabaseURL: "https://example.supabase.co",
	}
	h := &Handlers{Service: svc}
	return h, client
}

func TestUploadProductImage_MissingFileName(t *testing.T) {
	h, _ := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/product-image", h.UploadProductImage)

	body, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest("POST", "/api/v1/uploads/product-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUploadProductImage_Success(t *testing.T) {
	h, client := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/product-image", h.UploadProductImage)

	body, _ := json.Marshal(map[string]string{"file_name": "makrout.jpg"})
	req := httptest.NewRequest("POST", "/api/v1/uploads/product-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "product-images", client.lastBucket)
}

func TestUploadAvatar_Success(t *testing.T) {
	h, client := setupUploadTest(t)
	app := fiber.New()
	app.Post("/api/v1/uploads/avatar", h.UploadAvatar)

	body, _ := json.Marshal(map[string]string{"file_name": "avatar.png"})
	req := httptest.NewRequest("POST", "/api/v1/uploads/avatar", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "avatars", client.lastBucket)
}
