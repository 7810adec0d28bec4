package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "mood.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, app *fiber.App, field string, content []byte) (*http.Response, []byte) {
	t.Helper()
	body, contentType := multipartImage(t, field, content)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestUploadImage_StoresAndServes(t *testing.T) {
	_, app, _ := newTestServer(t, testConfig(t), nil)

	resp, raw := upload(t, app, "image", smallPNG(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	uploaded := decode[struct {
		URL   string `json:"url"`
		Width int    `json:"width"`
	}](t, raw)
	assert.Equal(t, 8, uploaded.Width)

	served, err := app.Test(httptest.NewRequest(http.MethodGet, uploaded.URL, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, "image/webp", served.Header.Get("Content-Type"))
}

func TestUploadImage_Rejections(t *testing.T) {
	_, app, _ := newTestServer(t, testConfig(t), nil)

	resp, _ := upload(t, app, "wrong_field", smallPNG(t))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, raw := upload(t, app, "image", []byte("plain text pretending to be a picture"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, decode[models.ErrorResponse](t, raw).Code)
}

func TestUploadImage_Disabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.FeatureFlags = "image_uploads=0%"
	_, app, _ := newTestServer(t, cfg, nil)

	resp, raw := upload(t, app, "image", smallPNG(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeDisabled, decode[models.ErrorResponse](t, raw).Code)
}
