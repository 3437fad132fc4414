package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcatalog/internal/domain"
)

type staticEquipment []domain.Equipment

func (s staticEquipment) ListEquipment(context.Context) ([]domain.Equipment, error) {
	return s, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T, opts Options, equipment EquipmentSource) (*gin.Engine, *Service, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	static := t.TempDir()
	svc := NewService(static, opts, equipment, zerolog.Nop())

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc))
	return r, svc, static
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if content != nil {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestUpload_ResizesAndFlattens(t *testing.T) {
	r, _, static := setupTestRouter(t, Options{MaxWidth: 20}, nil)

	req := multipartRequest(t,
		map[string]string{"equipmentSlug": "generator", "type": "main"},
		"photo.png",
		pngBytes(t, 40, 10, color.NRGBA{}),
	)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var result Result
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &result))
	assert.Equal(t, "image/jpeg", result.MimeType)
	assert.Regexp(t, `^/images/equipment/generator/[0-9a-f-]{36}\.jpg$`, result.FileURL)

	stored, err := os.ReadFile(filepath.Join(static, "images", "equipment", "generator", result.Filename))
	require.NoError(t, err)
	assert.Equal(t, int64(len(stored)), result.Size)

	img, err := jpeg.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())

	r8, g8, b8, _ := img.At(10, 2).RGBA()
	assert.Greater(t, r8>>8, uint32(240))
	assert.Greater(t, g8>>8, uint32(240))
	assert.Greater(t, b8>>8, uint32(240))
}

func TestUpload_DoesNotUpscale(t *testing.T) {
	r, _, static := setupTestRouter(t, Options{MaxWidth: 1920}, nil)

	req := multipartRequest(t,
		map[string]string{"equipmentSlug": "lamp", "type": "gallery"},
		"small.png",
		pngBytes(t, 8, 6, color.NRGBA{R: 255, A: 255}),
	)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var result Result
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &result))

	f, err := os.Open(filepath.Join(static, "images", "equipment", "lamp", result.Filename))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
}

func TestUpload_Rejections(t *testing.T) {
	r, _, _ := setupTestRouter(t, Options{MaxBytes: 1024}, nil)
	small := pngBytes(t, 2, 2, color.White)

	cases := []struct {
		name    string
		fields  map[string]string
		content []byte
		status  int
		code    string
	}{
		{"no file", map[string]string{"equipmentSlug": "x", "type": "main"}, nil, http.StatusBadRequest, "NO_FILE"},
		{"no slug", map[string]string{"type": "main"}, small, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad type", map[string]string{"equipmentSlug": "x", "type": "banner"}, small, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"slug sanitized away", map[string]string{"equipmentSlug": "///", "type": "main"}, small, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"parent slug", map[string]string{"equipmentSlug": "..", "type": "main"}, small, http.StatusForbidden, "FORBIDDEN_PATH"},
		{"current dir slug", map[string]string{"equipmentSlug": ".", "type": "main"}, small, http.StatusForbidden, "FORBIDDEN_PATH"},
		{"too large", map[string]string{"equipmentSlug": "x", "type": "main"}, bytes.Repeat([]byte{0xff}, 2048), http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"not an image", map[string]string{"equipmentSlug": "x", "type": "main"}, []byte("%PDF-1.4 hello"), http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, multipartRequest(t, tc.fields, "f.png", tc.content))
			require.Equal(t, tc.status, rr.Code, rr.Body.String())
			assert.Equal(t, tc.code, decode(t, rr).Error.Code)
		})
	}
}

func TestUpload_StaysInsideEquipmentTree(t *testing.T) {
	r, _, static := setupTestRouter(t, Options{}, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, multipartRequest(t, map[string]string{"equipmentSlug": "..", "type": "main"}, "f.png", pngBytes(t, 2, 2, color.White)))
	require.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())

	_, err := os.Stat(filepath.Join(static, "images"))
	assert.True(t, os.IsNotExist(err), "nothing may be written next to the equipment tree")
}

func writeFile(t *testing.T, p string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte("x"), size), 0o644))
}

func TestListFiles_TagsAndSorts(t *testing.T) {
	equipment := staticEquipment{{
		ID:   "gen-1",
		Slug: "generator",
		Images: []string{
			"/images/equipment/generator/main.jpg",
			"/images/equipment/generator/b.jpg",
		},
	}}
	r, svc, _ := setupTestRouter(t, Options{}, equipment)

	dir := filepath.Join(svc.BaseDir(), "generator")
	writeFile(t, filepath.Join(dir, "a.jpg"), 1)
	writeFile(t, filepath.Join(dir, "b.jpg"), 2)
	writeFile(t, filepath.Join(dir, "main.jpg"), 3)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/files/generator", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var list FileList
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &list))
	assert.Equal(t, "generator", list.EquipmentSlug)
	require.Equal(t, 3, list.Total)

	assert.Equal(t, []string{"main.jpg", "b.jpg", "a.jpg"}, []string{list.Files[0].Name, list.Files[1].Name, list.Files[2].Name})
	assert.Equal(t, []string{TagMain, TagGallery, TagOther}, []string{list.Files[0].Tag, list.Files[1].Tag, list.Files[2].Tag})
	assert.True(t, list.Files[0].IsMain)
	assert.True(t, list.Files[1].IsGallery)
	assert.Equal(t, int64(3), list.Files[0].Size)
}

func TestListFiles_MissingDirectory(t *testing.T) {
	r, _, _ := setupTestRouter(t, Options{}, staticEquipment{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/files/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteFile(t *testing.T) {
	r, svc, _ := setupTestRouter(t, Options{}, nil)
	target := filepath.Join(svc.BaseDir(), "generator", "a.jpg")
	writeFile(t, target, 4)
	require.NoError(t, os.MkdirAll(filepath.Join(svc.BaseDir(), "generator", "dir"), 0o755))

	cases := []struct {
		name   string
		path   string
		status int
	}{
		{"traversal", "/api/files/generator/../../secret.txt", http.StatusForbidden},
		{"missing", "/api/files/generator/none.jpg", http.StatusNotFound},
		{"directory", "/api/files/generator/dir", http.StatusBadRequest},
		{"sanitized away", "/api/files/generator/%24%24", http.StatusBadRequest},
		{"ok", "/api/files/generator/a.jpg", http.StatusOK},
		{"already gone", "/api/files/generator/a.jpg", http.StatusNotFound},
	}

	for _, tc := range cases {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, tc.path, nil))
		assert.Equal(t, tc.status, rr.Code, "%s: %s", tc.name, rr.Body.String())
	}

	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}
