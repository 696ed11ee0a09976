package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/celebration/internal/config"
	"github.com/joshua-takyi/celebration/internal/container"
	"github.com/joshua-takyi/celebration/internal/models"
	"github.com/joshua-takyi/celebration/internal/services"
	"github.com/joshua-takyi/celebration/internal/storage"
)

const adminPassword = "Celebrate#2025"

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 32)...)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router    *gin.Engine
	token     string
	uploadDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	staticDir := t.TempDir()
	uploadDir := filepath.Join(staticDir, "uploads")
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>celebration</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('hi')"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Environment:     "test",
		JWTSecret:       "route-secret",
		TokenExpiry:     time.Hour,
		AllowedOrigins:  []string{"https://party.example"},
		StaticDir:       staticDir,
		StorageBackend:  config.StorageLocal,
		UploadDir:       uploadDir,
		UploadURLPrefix: "/uploads",
		MaxUploadBytes:  1024,
	}
	st, err := storage.NewLocalStorage(uploadDir, cfg.UploadURLPrefix)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := container.NewContainer(cfg, logger, container.MemoryStores(), st)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, err := app.AuthService.CreateUser(context.Background(), services.RegisterInput{
		Username: "admin",
		Email:    "admin@party.example",
		Password: adminPassword,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	ta := &testApp{router: SetupRoutes(app), uploadDir: uploadDir}
	w := ta.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"`+adminPassword+`"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	decode(t, w, &res)
	ta.token = res.Token
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string, auth bool) *httptest.ResponseRecorder {
	t.Helper()
	token := ""
	if auth {
		token = ta.token
	}
	return ta.doAs(t, method, path, body, token)
}

func (ta *testApp) doAs(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func (ta *testApp) upload(t *testing.T, field, filename, contentType string, data []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/gallery", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ta.token)
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func listLen(t *testing.T, ta *testApp, path string) int {
	t.Helper()
	w := ta.do(t, http.MethodGet, path, "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d", path, w.Code)
	}
	var items []json.RawMessage
	decode(t, w, &items)
	return len(items)
}

const welcomeDinner = `{"title":"Welcome Dinner","date":"2025-04-24","startTime":"19:00","endTime":"22:00","location":"Szara Gęś","day":"Thursday"}`

func TestCreateEventScenario(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodPost, "/api/events", welcomeDinner, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var created models.Event
	decode(t, w, &created)
	if created.ID.IsZero() || created.Title != "Welcome Dinner" || created.Location != "Szara Gęś" ||
		created.Date != "2025-04-24" || created.StartTime != "19:00" || created.EndTime != "22:00" || created.Day != "Thursday" {
		t.Errorf("created = %+v", created)
	}

	w = ta.do(t, http.MethodGet, "/api/events", "", false)
	var events []models.Event
	decode(t, w, &events)
	if len(events) != 1 || events[0].ID != created.ID {
		t.Errorf("events = %+v", events)
	}

	w = ta.do(t, http.MethodGet, "/api/events/"+created.ID.Hex(), "", false)
	if w.Code != http.StatusOK {
		t.Errorf("GET by id = %d", w.Code)
	}
}

func TestCrudLifecycle(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodPost, "/api/contacts", `{"name":"Ama Mensah","phone":"+233 20 000 0000","type":"family"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var contact models.Contact
	decode(t, w, &contact)
	id := contact.ID.Hex()

	w = ta.do(t, http.MethodPut, "/api/contacts/"+id, `{"title":"Aunt"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodGet, "/api/contacts/"+id, "", false)
	decode(t, w, &contact)
	if contact.Title != "Aunt" || contact.Name != "Ama Mensah" {
		t.Errorf("after update = %+v", contact)
	}

	w = ta.do(t, http.MethodDelete, "/api/contacts/"+id, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d", w.Code)
	}
	w = ta.do(t, http.MethodGet, "/api/contacts/"+id, "", false)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}

	w = ta.do(t, http.MethodPost, "/api/reminders", `{"title":"Collect rings","date":"2025-04-23T10:00:00Z","icon":"gift"}`, true)
	if w.Code != http.StatusCreated {
		t.Errorf("reminder create = %d: %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodPost, "/api/notes", `{"title":"Parking","content":"Use the north lot"}`, true)
	if w.Code != http.StatusCreated {
		t.Errorf("note create = %d: %s", w.Code, w.Body.String())
	}
}

func TestValidationErrors(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodPost, "/api/events", `{"title":"No date"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var body models.ErrorBody
	decode(t, w, &body)
	fields := map[string]bool{}
	for _, f := range body.Errors {
		fields[f.Field] = true
	}
	for _, want := range []string{"date", "startTime", "endTime", "location", "day"} {
		if !fields[want] {
			t.Errorf("missing field error for %q in %+v", want, body.Errors)
		}
	}

	w = ta.do(t, http.MethodPost, "/api/events", `{not json`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed json = %d", w.Code)
	}
	w = ta.do(t, http.MethodPut, "/api/events/not-an-id", `{"title":"x"}`, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("bad id update = %d", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/notes/65f000000000000000000000", "", true)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing delete = %d", w.Code)
	}
}

func TestMutationsRequireToken(t *testing.T) {
	ta := newTestApp(t)
	w := ta.do(t, http.MethodPost, "/api/events", welcomeDinner, true)
	var ev models.Event
	decode(t, w, &ev)
	id := ev.ID.Hex()

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/events", welcomeDinner},
		{http.MethodPut, "/api/events/" + id, `{"title":"Hijacked"}`},
		{http.MethodDelete, "/api/events/" + id, ""},
		{http.MethodPut, "/api/settings/siteTitle", `{"value":"x"}`},
		{http.MethodPost, "/api/import/events", `{"replace":true,"items":[]}`},
		{http.MethodPost, "/api/auth/register", `{"username":"intruder","password":"Intrude#2025"}`},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := ta.do(t, tt.method, tt.path, tt.body, false)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/events/"+id, nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	ta.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("forged token = %d", rec.Code)
	}

	if n := listLen(t, ta, "/api/events"); n != 1 {
		t.Errorf("events after rejected mutations = %d, want 1", n)
	}
	w = ta.do(t, http.MethodGet, "/api/events/"+id, "", false)
	decode(t, w, &ev)
	if ev.Title != "Welcome Dinner" {
		t.Errorf("title changed to %q", ev.Title)
	}
}

func TestLogin(t *testing.T) {
	ta := newTestApp(t)

	for _, body := range []string{
		`{"identifier":"admin","password":"` + adminPassword + `"}`,
		`{"email":"ADMIN@party.example","password":"` + adminPassword + `"}`,
	} {
		w := ta.do(t, http.MethodPost, "/api/login", body, false)
		if w.Code != http.StatusOK {
			t.Errorf("login %s = %d", body, w.Code)
			continue
		}
		var res struct {
			Token string          `json:"token"`
			User  json.RawMessage `json:"user"`
		}
		decode(t, w, &res)
		if res.Token == "" || strings.Contains(string(res.User), "password") {
			t.Errorf("login response = %s", w.Body.String())
		}
	}

	w := ta.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong password = %d, want 400", w.Code)
	}
	if strings.Contains(w.Body.String(), "token") {
		t.Errorf("failed login leaked a token: %s", w.Body.String())
	}

	w = ta.do(t, http.MethodGet, "/api/auth/me", "", true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"role":"admin"`) {
		t.Errorf("me = %d %s", w.Code, w.Body.String())
	}

	w = ta.do(t, http.MethodPost, "/api/auth/register", `{"username":"cohost","password":"Cohost#2025"}`, true)
	if w.Code != http.StatusCreated {
		t.Errorf("register = %d: %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodPost, "/api/auth/register", `{"username":"cohost","password":"Cohost#2025"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register = %d", w.Code)
	}
}

func TestGalleryUploadAndDelete(t *testing.T) {
	ta := newTestApp(t)

	w := ta.upload(t, "image", "cake.png", "image/png", pngBytes, map[string]string{"title": "Cake", "caption": "Three tiers"})
	if w.Code != http.StatusCreated {
		t.Fatalf("upload = %d: %s", w.Code, w.Body.String())
	}
	var img models.GalleryImage
	decode(t, w, &img)
	if img.Title != "Cake" || img.Description != "Three tiers" || !strings.HasPrefix(img.URL, "/uploads/") {
		t.Errorf("img = %+v", img)
	}
	stored := filepath.Join(ta.uploadDir, filepath.Base(img.URL))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("stored file: %v", err)
	}

	w = ta.do(t, http.MethodGet, img.URL, "", false)
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), pngBytes) {
		t.Errorf("serving upload = %d", w.Code)
	}

	w = ta.do(t, http.MethodPut, "/api/gallery/"+img.ID.Hex(), `{"description":"Four tiers"}`, true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Four tiers") {
		t.Errorf("update = %d %s", w.Code, w.Body.String())
	}

	w = ta.do(t, http.MethodDelete, "/api/gallery/"+img.ID.Hex(), "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("file still on disk: %v", err)
	}
	if n := listLen(t, ta, "/api/gallery"); n != 0 {
		t.Errorf("gallery len = %d", n)
	}
}

func TestGalleryUploadRejections(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		contentType string
		data        []byte
		wantStatus  int
	}{
		{"missing file", "image", "image/png", nil, http.StatusBadRequest},
		{"wrong field", "photo", "image/png", pngBytes, http.StatusBadRequest},
		{"not an image", "image", "image/png", []byte("just some text here"), http.StatusUnsupportedMediaType},
		{"declared pdf", "image", "application/pdf", pngBytes, http.StatusUnsupportedMediaType},
		{"too large", "image", "image/png", append(pngBytes, bytes.Repeat([]byte{0}, 2048)...), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)
			w := ta.upload(t, tt.field, "file.png", tt.contentType, tt.data, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			entries, _ := os.ReadDir(ta.uploadDir)
			if len(entries) != 0 {
				t.Errorf("%d files written", len(entries))
			}
			if n := listLen(t, ta, "/api/gallery"); n != 0 {
				t.Errorf("gallery len = %d", n)
			}
		})
	}
}

func TestSettings(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodPut, "/api/settings/siteTitle", `{"value":"Ama & Kofi"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("put key = %d: %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodPut, "/api/settings", `{"eventLocation":"Accra","theme.font":"serif"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("bulk put = %d: %s", w.Code, w.Body.String())
	}

	w = ta.do(t, http.MethodGet, "/api/settings", "", false)
	var s models.SiteSettings
	decode(t, w, &s)
	if s.SiteTitle != "Ama & Kofi" || s.EventLocation != "Accra" || s.Extra["theme.font"] != "serif" {
		t.Errorf("settings = %+v", s)
	}

	w = ta.do(t, http.MethodPut, "/api/settings/bad%20key", `{"value":"x"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad key = %d", w.Code)
	}
	w = ta.do(t, http.MethodPut, "/api/settings/siteTitle", `{"title":"x"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing value = %d", w.Code)
	}
}

func TestImport(t *testing.T) {
	ta := newTestApp(t)
	ta.do(t, http.MethodPost, "/api/contacts", `{"name":"Existing"}`, true)

	w := ta.do(t, http.MethodPost, "/api/import/contacts", `{"replace":true,"items":[{"name":"Kofi"},{"phone":"123"}]}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid import = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "items[1].name") {
		t.Errorf("body = %s", w.Body.String())
	}
	if n := listLen(t, ta, "/api/contacts"); n != 1 {
		t.Errorf("contacts after failed import = %d", n)
	}

	w = ta.do(t, http.MethodPost, "/api/import/contacts", `{"replace":true,"items":[{"name":"Kofi"},{"name":"Efua"}]}`, true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"imported":2`) {
		t.Fatalf("import = %d: %s", w.Code, w.Body.String())
	}
	if n := listLen(t, ta, "/api/contacts"); n != 2 {
		t.Errorf("contacts after replace = %d", n)
	}

	w = ta.do(t, http.MethodPost, "/api/import/reminders", `{"items":[{"title":"RSVP","date":"2025-03-01T00:00:00Z"}]}`, true)
	if w.Code != http.StatusOK {
		t.Errorf("append import = %d: %s", w.Code, w.Body.String())
	}
}

func TestFallbacks(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodGet, "/api/does-not-exist", "", false)
	if w.Code != http.StatusNotFound || !strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		t.Errorf("api 404 = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	var body models.ErrorBody
	decode(t, w, &body)
	if body.Message == "" {
		t.Error("api 404 without message")
	}

	for _, p := range []string{"/", "/schedule", "/gallery/42"} {
		w = ta.do(t, http.MethodGet, p, "", false)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "celebration") {
			t.Errorf("GET %s = %d %q", p, w.Code, w.Body.String())
		}
	}

	w = ta.do(t, http.MethodGet, "/app.js", "", false)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "console.log") {
		t.Errorf("static asset = %d %q", w.Code, w.Body.String())
	}

	w = ta.do(t, http.MethodGet, "/api/health", "", false)
	if w.Code != http.StatusOK {
		t.Errorf("health = %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	ta := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "https://party.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://party.example" {
		t.Errorf("preflight = %d %q", w.Code, w.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("foreign origin allowed: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestGuestCannotMutate(t *testing.T) {
	ta := newTestApp(t)

	w := ta.do(t, http.MethodPost, "/api/auth/register", `{"username":"guest","password":"Guest#2025","role":"guest"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("register guest = %d: %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodPost, "/api/auth/login", `{"username":"guest","password":"Guest#2025"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("guest login = %d", w.Code)
	}
	var res struct {
		Token string `json:"token"`
	}
	decode(t, w, &res)
	guest := res.Token

	w = ta.do(t, http.MethodPost, "/api/events", welcomeDinner, true)
	var ev models.Event
	decode(t, w, &ev)
	id := ev.ID.Hex()

	tests := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/events", welcomeDinner},
		{http.MethodPut, "/api/events/" + id, `{"title":"Hijacked"}`},
		{http.MethodDelete, "/api/events/" + id, ""},
		{http.MethodPost, "/api/notes", `{"title":"Spam"}`},
		{http.MethodPut, "/api/settings/siteTitle", `{"value":"x"}`},
		{http.MethodPut, "/api/settings", `{"siteTitle":"x"}`},
		{http.MethodPost, "/api/import/events", `{"replace":true,"items":[]}`},
		{http.MethodDelete, "/api/gallery/" + id, ""},
		{http.MethodPost, "/api/auth/register", `{"username":"evil","password":"Evil#20255"}`},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := ta.doAs(t, tt.method, tt.path, tt.body, guest)
			if w.Code != http.StatusForbidden {
				t.Fatalf("status = %d, want 403: %s", w.Code, w.Body.String())
			}
			var body models.ErrorBody
			decode(t, w, &body)
			if body.Message == "" {
				t.Error("403 without message")
			}
		})
	}

	if n := listLen(t, ta, "/api/events"); n != 1 {
		t.Errorf("events = %d, want 1", n)
	}
	w = ta.do(t, http.MethodGet, "/api/events/"+id, "", false)
	decode(t, w, &ev)
	if ev.Title != "Welcome Dinner" {
		t.Errorf("title changed to %q", ev.Title)
	}
	w = ta.do(t, http.MethodGet, "/api/settings", "", false)
	if strings.Contains(w.Body.String(), `"siteTitle":"x"`) {
		t.Errorf("guest changed settings: %s", w.Body.String())
	}
	w = ta.do(t, http.MethodPost, "/api/auth/login", `{"username":"evil","password":"Evil#20255"}`, false)
	if w.Code != http.StatusBadRequest {
		t.Errorf("guest-registered account exists: login = %d", w.Code)
	}

	w = ta.doAs(t, http.MethodGet, "/api/auth/me", "", guest)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"isAdmin":false`) {
		t.Errorf("guest me = %d %s", w.Code, w.Body.String())
	}
}

func TestUpdateBodyTooLarge(t *testing.T) {
	ta := newTestApp(t)
	w := ta.do(t, http.MethodPost, "/api/notes", `{"title":"Parking"}`, true)
	var note models.Note
	decode(t, w, &note)

	big := `{"content":"` + strings.Repeat("a", 2<<20) + `"}`
	w = ta.do(t, http.MethodPut, "/api/notes/"+note.ID.Hex(), big, true)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	var body models.ErrorBody
	decode(t, w, &body)
	if body.Message == "" {
		t.Error("413 without message")
	}
}
