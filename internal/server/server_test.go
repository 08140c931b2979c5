package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

const circlesConfig = `{
	"width": 5, "height": 5,
	"colors": ["#ff0000", "#ffffff"],
	"shape": "circles",
	"layerCount": 3
}`

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/generate", `{"config": `+circlesConfig+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if w.Header().Get("X-Config-Hash") == "" {
		t.Error("missing X-Config-Hash header")
	}

	var resp struct {
		Width     int                `json:"width"`
		Height    int                `json:"height"`
		Grid      [][]map[string]any `json:"grid"`
		Histogram map[string]int     `json:"histogram"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Width != 5 || resp.Height != 5 {
		t.Errorf("dimensions = %dx%d, want 5x5", resp.Width, resp.Height)
	}
	if len(resp.Grid) != 5 {
		t.Errorf("grid rows = %d, want 5", len(resp.Grid))
	}
	total := 0
	for _, n := range resp.Histogram {
		total += n
	}
	if total != 25 {
		t.Errorf("histogram total = %d, want 25", total)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing config", `{}`, "INVALID_INPUT"},
		{"malformed body", `{`, "INVALID_INPUT"},
		{"unknown shape", `{"config": {"width":3,"height":3,"colors":["#fff"],"shape":"spirals"}}`, "INVALID_SHAPE"},
		{"zero width", `{"config": {"width":0,"height":3,"colors":["#fff"],"shape":"circles","layerCount":2}}`, "INVALID_DIMENSIONS"},
		{"empty palette", `{"config": {"width":3,"height":3,"colors":[],"shape":"circles","layerCount":2}}`, "INVALID_PALETTE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/api/generate", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body)
			}
			var resp struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("error code = %q, want %q", resp.Error.Code, tt.code)
			}
		})
	}
}

func TestGenerateTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCells = 16
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s, err := New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	w := doJSON(t, s, http.MethodPost, "/api/generate", `{"config": `+circlesConfig+`}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRenderSVG(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/render/svg",
		`{"config": `+circlesConfig+`, "cellSize": 8, "gridLines": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("<svg")) {
		t.Error("response is not SVG")
	}
}

func TestRenderPNG(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/render/png", `{"config": `+circlesConfig+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("response is not PNG")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	s := testServer(t)

	for _, format := range []string{"gif", "json"} {
		w := doJSON(t, s, http.MethodPost, "/api/render/"+format, `{"config": `+circlesConfig+`}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("format %q: status = %d, want 400", format, w.Code)
		}
	}
}

func TestThreadsEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/threads",
		`{"config": `+circlesConfig+`, "fabricCount": 14, "strands": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	var resp struct {
		TotalStitches int `json:"totalStitches"`
		Colors        []struct {
			Color    string `json:"color"`
			Stitches int    `json:"stitches"`
		} `json:"colors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalStitches != 25 {
		t.Errorf("totalStitches = %d, want 25", resp.TotalStitches)
	}
	if len(resp.Colors) == 0 {
		t.Error("no color usage entries")
	}
}

func TestPalettesEndpoint(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/palettes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var palettes []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &palettes); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	found := false
	for _, p := range palettes {
		if p.Name == "classic" {
			found = true
		}
	}
	if !found {
		t.Error("classic palette missing from listing")
	}
}

func TestPatternLibraryLifecycle(t *testing.T) {
	s := testServer(t)

	// Save.
	w := doJSON(t, s, http.MethodPost, "/api/patterns",
		`{"name": "target practice", "config": `+circlesConfig+`}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body)
	}
	var saved struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("save response has no ID")
	}

	// List.
	w = doJSON(t, s, http.MethodGet, "/api/patterns", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Errorf("list = %+v, want one entry with ID %s", list, saved.ID)
	}

	// Get.
	w = doJSON(t, s, http.MethodGet, "/api/patterns/"+saved.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// Preview.
	w = doJSON(t, s, http.MethodGet, "/api/patterns/"+saved.ID+"/preview.svg", "")
	if w.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body = %s", w.Code, w.Body)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("<svg")) {
		t.Error("preview is not SVG")
	}

	// Delete.
	w = doJSON(t, s, http.MethodDelete, "/api/patterns/"+saved.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/patterns/"+saved.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
}

func TestSavePatternRejectsInvalidConfig(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/patterns",
		`{"name": "broken", "config": {"width": 3, "height": 3, "colors": ["#fff"], "shape": "spirals"}}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestPatternNotFound(t *testing.T) {
	s := testServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/patterns/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != "PATTERN_NOT_FOUND" {
		t.Errorf("error code = %q, want PATTERN_NOT_FOUND", resp.Error.Code)
	}
}
