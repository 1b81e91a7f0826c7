package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docfmt/internal/config"
	"github.com/dgallion1/docfmt/internal/export"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/fumiama/go-docx"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, apiKey string, maxBytes int64) *Server {
	t.Helper()
	cfg := config.Config{
		DocfmtAPIKey:    apiKey,
		MaxUploadBytes:  maxBytes,
		ResultTTL:       time.Hour,
		CleanupInterval: time.Hour,
		StatsWindow:     time.Hour,
	}
	proc := pipeline.NewProcessor(&parser.DocxConverter{}, nil, nil, cfg.MaxUploadBytes, discard)
	svc := pipeline.NewService(cfg, proc, discard)
	return NewServer(svc, nil, rewrite.DefaultOptions(), discard, cfg)
}

func guideDocx(t *testing.T) []byte {
	t.Helper()
	f := docx.New().WithDefaultTheme()
	f.AddParagraph().Style("Heading1").AddText("GETTING STARTED")
	f.AddParagraph().AddText("Install the tool first.")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return buf.Bytes()
}

func upload(t *testing.T, srv http.Handler, name string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if name != "" {
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write(data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/format", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func do(srv http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func formatGuide(t *testing.T, srv http.Handler) pipeline.Result {
	t.Helper()
	rec := upload(t, srv, "guide.docx", guideDocx(t), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var res pipeline.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t, "", config.DefaultMaxUploadBytes), http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, "secret", config.DefaultMaxUploadBytes)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if rec := do(srv, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Errorf("expected health to skip auth, got %d", rec.Code)
	}
}

func TestFormat_FullRoundTrip(t *testing.T) {
	srv := newTestServer(t, "", config.DefaultMaxUploadBytes)
	res := formatGuide(t, srv)

	if !strings.Contains(res.Content.Formatted.HTML, `<h2 class="converted-h1">Getting started</h2>`) {
		t.Errorf("unexpected formatted html %q", res.Content.Formatted.HTML)
	}
	if res.Analysis.HeadingCounts.H1 != 1 {
		t.Errorf("expected 1 H1 counted, got %d", res.Analysis.HeadingCounts.H1)
	}
	if res.Content.FileName != "guide.docx" {
		t.Errorf("unexpected file name %q", res.Content.FileName)
	}

	base := "/api/documents/" + res.ID

	if rec := do(srv, http.MethodGet, base); rec.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", rec.Code)
	}

	rec := do(srv, http.MethodGet, base+"/download")
	if rec.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=guide_formatted.html" {
		t.Errorf("unexpected disposition %q", got)
	}
	if !strings.Contains(rec.Body.String(), export.FooterText) {
		t.Error("expected footer in download")
	}

	rec = do(srv, http.MethodGet, base+"/compare")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "GETTING STARTED") {
		t.Errorf("compare: expected original pane, got %d", rec.Code)
	}

	rec = do(srv, http.MethodGet, base+"/export/md")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "## Getting started") {
		t.Errorf("export md: got %d %q", rec.Code, rec.Body.String())
	}

	rec = do(srv, http.MethodGet, base+"/export/pdf")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Errorf("export pdf: got %d", rec.Code)
	}

	if rec := do(srv, http.MethodGet, base+"/export/rtf"); rec.Code != http.StatusBadRequest {
		t.Errorf("export rtf: expected 400, got %d", rec.Code)
	}
	if rec := do(srv, http.MethodPost, base+"/publish"); rec.Code != http.StatusNotImplemented {
		t.Errorf("publish: expected 501, got %d", rec.Code)
	}

	if rec := do(srv, http.MethodDelete, base); rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	if rec := do(srv, http.MethodGet, base); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rec.Code)
	}
	if rec := do(srv, http.MethodDelete, base); rec.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", rec.Code)
	}
}

func TestFormat_OptionOverrides(t *testing.T) {
	srv := newTestServer(t, "", config.DefaultMaxUploadBytes)

	rec := upload(t, srv, "guide.docx", guideDocx(t), map[string]string{"standardizeHeadings": "false"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var res pipeline.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !strings.Contains(res.Content.Formatted.HTML, "GETTING STARTED") {
		t.Errorf("expected heading untouched, got %q", res.Content.Formatted.HTML)
	}

	rec = upload(t, srv, "guide.docx", guideDocx(t), map[string]string{"fixSpacing": "maybe"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad option value, got %d", rec.Code)
	}
}

func TestFormat_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		file     string
		data     []byte
		wantCode int
		wantMsg  string
	}{
		{"wrong type", config.DefaultMaxUploadBytes, "notes.pdf", []byte("%PDF-1.4"), http.StatusUnsupportedMediaType, "Only Word documents (.docx) are currently supported"},
		{"too large", 1024, "big.docx", make([]byte, 2048), http.StatusRequestEntityTooLarge, "File size must be less than 1024 bytes"},
		{"corrupt", config.DefaultMaxUploadBytes, "broken.docx", []byte("not a zip"), http.StatusUnprocessableEntity, "Failed to process document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, newTestServer(t, "", tt.maxBytes), tt.file, tt.data, nil)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := errorMessage(t, rec); got != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestFormat_MissingFile(t *testing.T) {
	rec := upload(t, newTestServer(t, "", config.DefaultMaxUploadBytes), "", nil, map[string]string{"fixSpacing": "true"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	srv := newTestServer(t, "", config.DefaultMaxUploadBytes)
	formatGuide(t, srv)
	upload(t, srv, "broken.docx", []byte("junk"), nil)

	rec := do(srv, http.MethodGet, "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		StoredResults int                    `json:"stored_results"`
		Stats         pipeline.StatsSnapshot `json:"stats"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.StoredResults != 1 {
		t.Errorf("expected 1 stored result, got %d", body.StoredResults)
	}
	if body.Stats.Formatted != 1 || body.Stats.Failed != 1 {
		t.Errorf("unexpected stats %+v", body.Stats)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.docx", "report.docx"},
		{"../../etc/passwd.docx", "passwd.docx"},
		{`C:\Users\me\notes.docx`, "notes.docx"},
		{"a..b.docx", "a_b.docx"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
