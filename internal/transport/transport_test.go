package transport

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ds124wfegd/insight-analyzer/internal/database"
	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/processor"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/render"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/storage"
	"github.com/ds124wfegd/insight-analyzer/internal/service"
	"github.com/ds124wfegd/insight-analyzer/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passengersCSV = `PassengerId,Survived,Pclass,Sex,Age,Fare,Embarked
1,0,3,male,22,7.25,S
2,1,1,female,38,71.2833,C
3,1,3,female,26,7.925,S
4,1,1,female,35,53.1,S
5,0,3,male,35,8.05,S
6,0,1,male,54,51.8625,S
`

func init() {
	gin.SetMode(gin.TestMode)
}

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newRouter wires the real services over files in a temp dir. Empty
// contents leave the corresponding file missing.
func newRouter(t *testing.T, csv string, defaultImage []byte) *gin.Engine {
	t.Helper()
	dir := t.TempDir()
	if csv != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "titanic.csv"), []byte(csv), 0644))
	}
	if defaultImage != nil {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "default.png"), defaultImage, 0644))
	}
	templates := filepath.Join(dir, "templates")
	require.NoError(t, os.Mkdir(templates, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "index.html"), []byte("<html>insight</html>"), 0644))

	fs := storage.NewFileStorage(dir)
	passengers := database.NewPassengerRepository(fs)
	_ = passengers.Load("titanic.csv")
	assets := database.NewAssetRepository(fs)
	_ = assets.Load("default.png")

	datasetService := service.NewDatasetService(passengers, render.NewRenderer(320, 240), nil, service.DatasetSettings{DefaultAgeMin: 10, DefaultAgeMax: 60})
	galleryService := service.NewGalleryService(assets, processor.NewImageProcessor(), nil)

	return InitRoutes(NewDatasetHandler(datasetService), NewGalleryHandler(galleryService, 1), RouterConfig{TemplatesDir: templates})
}

func do(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func uploadRequest(t *testing.T, target string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if data != nil {
		part, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthAndIndex(t *testing.T) {
	router := newRouter(t, passengersCSV, samplePNG(t, 30, 20))

	w := do(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = do(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "insight")
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := do(router, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestDatasetEndpoints(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		contentType string
	}{
		{name: "options", target: "/api/dataset/options", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "rows", target: "/api/dataset/rows?sex=female&age_min=20&age_max=40", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "rows bad number", target: "/api/dataset/rows?age_min=abc&age_max=40", wantStatus: http.StatusBadRequest},
		{name: "rows bad preview", target: "/api/dataset/rows?preview=maybe", wantStatus: http.StatusBadRequest},
		{name: "charts", target: "/api/dataset/charts?sex=All&age_min=0&age_max=100", wantStatus: http.StatusOK, contentType: "application/json"},
		{name: "chart image", target: "/api/dataset/charts/age_distribution.png?sex=male", wantStatus: http.StatusOK, contentType: "image/png"},
		{name: "empty chart image", target: "/api/dataset/charts/correlation.png?sex=nobody", wantStatus: http.StatusOK, contentType: "image/png"},
		{name: "unknown chart", target: "/api/dataset/charts/pie.png", wantStatus: http.StatusNotFound},
		{name: "chart without suffix", target: "/api/dataset/charts/correlation", wantStatus: http.StatusNotFound},
		{name: "summary", target: "/api/dataset/summary?age_min=0&age_max=100", wantStatus: http.StatusOK, contentType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.contentType != "" {
				assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			}
		})
	}
}

func TestRowsResponse(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/dataset/rows?sex=female&age_min=20&age_max=40&preview=false", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.RowsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Rows, 3)
	for _, row := range resp.Rows {
		assert.Equal(t, "female", row["Sex"])
	}
}

func TestRowsUseDefaultAgeRange(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/dataset/rows", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.RowsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.SexAll, resp.Filter.Sex)
	assert.Equal(t, 10.0, resp.Filter.AgeMin)
	assert.Equal(t, 54.0, resp.Filter.AgeMax)
	assert.True(t, resp.Preview)
	assert.Len(t, resp.Rows, 5)
}

func TestExport(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/dataset/export?sex=male&age_min=0&age_max=100", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "filtered_data.csv")
	assert.Equal(t, "PassengerId,Survived,Pclass,Sex,Age,Fare,Embarked\n1,0,3,male,22,7.25,S\n5,0,3,male,35,8.05,S\n6,0,1,male,54,51.8625,S\n", w.Body.String())
}

func TestDatasetUnavailable(t *testing.T) {
	router := newRouter(t, "", samplePNG(t, 10, 10))

	for _, target := range []string{"/api/dataset/options", "/api/dataset/rows", "/api/dataset/charts?age_min=1&age_max=2"} {
		w := do(router, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
	}

	// The gallery keeps working.
	w := do(router, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGalleryDefault(t *testing.T) {
	router := newRouter(t, passengersCSV, samplePNG(t, 30, 20))

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.GalleryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "default", resp.Source)
	assert.Equal(t, "Format: PNG, Mode: RGB, Size: (30, 20)", resp.Metadata.Line)
	assert.Len(t, resp.Variants, 9)
}

func TestGalleryDefaultMissing(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/gallery", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = do(router, uploadRequest(t, "/api/gallery", samplePNG(t, 16, 16)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGalleryUpload(t *testing.T) {
	router := newRouter(t, passengersCSV, nil)

	tests := []struct {
		name       string
		target     string
		data       []byte
		wantStatus int
	}{
		{name: "png gallery", target: "/api/gallery", data: samplePNG(t, 24, 12), wantStatus: http.StatusOK},
		{name: "not an image", target: "/api/gallery", data: []byte("hello"), wantStatus: http.StatusUnprocessableEntity},
		{name: "missing file", target: "/api/gallery", wantStatus: http.StatusBadRequest},
		{name: "single variant", target: "/api/gallery/variants/emboss.png", data: samplePNG(t, 24, 12), wantStatus: http.StatusOK},
		{name: "unknown variant", target: "/api/gallery/variants/sepia.png", data: samplePNG(t, 24, 12), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, uploadRequest(t, tt.target, tt.data))
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestGalleryDefaultVariant(t *testing.T) {
	router := newRouter(t, passengersCSV, samplePNG(t, 30, 20))

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/gallery/variants/rotated.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	cfg, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 30, cfg.Height)

	w = do(router, httptest.NewRequest(http.MethodGet, "/api/gallery/variants/original.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, httptest.NewRequest(http.MethodGet, "/api/gallery/variants/unknown.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entity.ErrInvalidInput, http.StatusBadRequest},
		{entity.ErrUnknownChart, http.StatusNotFound},
		{entity.ErrUnknownVariant, http.StatusNotFound},
		{entity.ErrDecode, http.StatusUnprocessableEntity},
		{entity.ErrUnsupportedFormat, http.StatusUnprocessableEntity},
		{entity.ErrDatasetUnavailable, http.StatusServiceUnavailable},
		{entity.ErrDefaultImageUnavailable, http.StatusServiceUnavailable},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}

func TestChartsWithNonFiniteCells(t *testing.T) {
	csv := passengersCSV + "7,1,2,female,NaN,13,S\n8,0,3,male,30,nan,Q\n9,1,1,female,40,inf,C\n"
	router := newRouter(t, csv, nil)

	w := do(router, httptest.NewRequest(http.MethodGet, "/api/dataset/charts?age_min=0&age_max=100", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.Bytes())

	var resp entity.ChartsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Rows)
	assert.Len(t, resp.Charts, len(entity.ChartNames))

	w = do(router, httptest.NewRequest(http.MethodGet, "/api/dataset/options", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var opts entity.FilterOptions
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, entity.AgeBounds{Min: 22, Max: 54}, opts.AgeBounds)
}
