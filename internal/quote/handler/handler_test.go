package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/events"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/service"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/ratelimit"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sink"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSink struct {
	name   string
	id     string
	err    error
	writes atomic.Int64

	mu   sync.Mutex
	last quote.Record
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Write(ctx context.Context, record quote.Record) (sink.WriteResult, error) {
	s.writes.Add(1)
	s.mu.Lock()
	s.last = record
	s.mu.Unlock()
	if s.err != nil {
		return sink.WriteResult{}, s.err
	}
	return sink.WriteResult{RecordID: s.id}, nil
}

func (s *stubSink) lastRecord() quote.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

type fixture struct {
	engine  *gin.Engine
	primary *stubSink
	bus     *recordingBus
}

func newFixture(t *testing.T, primary *stubSink, limiterMax int) *fixture {
	t.Helper()

	log := logger.New("test")
	bus := &recordingBus{}
	coordinator := sink.NewCoordinator([]sink.Sink{primary}, time.Second, log)
	builder := quote.NewBuilder("Asia/Kolkata", nil)
	svc := service.New(builder, coordinator, sink.PolicyPrimary, bus, nil, log)
	limiter := ratelimit.New(limiterMax, time.Minute, nil)
	h := New(svc, limiter, HealthInfo{}, validator.New(), log)

	engine := gin.New()
	api := engine.Group("/api")
	h.RegisterPublicRoutes(api)
	h.RegisterAdminRoutes(api)

	return &fixture{engine: engine, primary: primary, bus: bus}
}

func postQuote(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"name": "Raj Patel",
	"email": "raj@example.com",
	"phone": "9876543210",
	"product": "MS Angle",
	"quantity": "500",
	"unit": "kg"
}`

func TestSubmitQuoteSuccess(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "abc-123"}, 10)

	w := postQuote(f.engine, validBody)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID      string `json:"id"`
			Product string `json:"product"`
			Phone   string `json:"phone"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !resp.Success {
		t.Fatal("success = false")
	}
	if resp.Data.Product != "MS Angle" {
		t.Fatalf("product = %q", resp.Data.Product)
	}
	if resp.Data.ID != "abc-123" {
		t.Fatalf("id = %q", resp.Data.ID)
	}

	if f.primary.writes.Load() != 1 {
		t.Fatalf("sink writes = %d, want 1", f.primary.writes.Load())
	}
	persisted := f.primary.lastRecord()
	if persisted.Phone != "9876543210" {
		t.Fatalf("persisted phone = %q", persisted.Phone)
	}
	if persisted.Status != quote.StatusPending {
		t.Fatalf("persisted status = %q", persisted.Status)
	}
	published := f.bus.published()
	if len(published) != 1 {
		t.Fatalf("events = %d, want 1", len(published))
	}
	if published[0].EventName() != "quotes.quote.submitted" {
		t.Fatalf("event = %q", published[0].EventName())
	}
}

func TestSubmitQuoteLegacyFieldNames(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "abc-123"}, 10)

	body := `{"name":"Raj Patel","email":"raj@example.com","phone":"9876543210","category":"TMT Bar","specifications":"Fe500D"}`
	w := postQuote(f.engine, body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Product string `json:"product"`
		} `json:"data"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Product != "TMT Bar" {
		t.Fatalf("product = %q, want TMT Bar", resp.Data.Product)
	}
}

func TestSubmitQuoteMissingFields(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "abc-123"}, 10)

	w := postQuote(f.engine, `{"name":"Raj Patel"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Success {
		t.Fatal("success = true on validation failure")
	}
	if !strings.Contains(resp.Error, "Missing required fields") {
		t.Fatalf("error = %q", resp.Error)
	}

	if f.primary.writes.Load() != 0 {
		t.Fatal("invalid submission must not reach any sink")
	}
	if len(f.bus.published()) != 0 {
		t.Fatal("invalid submission must not fire notification")
	}
}

func TestSubmitQuoteInvalidEmail(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres"}, 10)

	body := strings.Replace(validBody, "raj@example.com", "raj@example", 1)
	w := postQuote(f.engine, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email format") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSubmitQuoteInvalidPhone(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres"}, 10)

	body := strings.Replace(validBody, "9876543210", "5876543210", 1)
	w := postQuote(f.engine, body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid phone number") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSubmitQuoteRateLimited(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "x"}, 10)

	for i := 0; i < 10; i++ {
		if w := postQuote(f.engine, validBody); w.Code != http.StatusCreated {
			t.Fatalf("request %d status = %d", i+1, w.Code)
		}
	}

	w := postQuote(f.engine, validBody)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Too many requests") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if f.primary.writes.Load() != 10 {
		t.Fatalf("sink writes = %d, want 10", f.primary.writes.Load())
	}
}

func TestSubmitQuotePrimarySinkFailure(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", err: errors.New("connection refused")}, 10)

	w := postQuote(f.engine, validBody)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to submit quote request") {
		t.Fatalf("body = %s", w.Body.String())
	}
	if len(f.bus.published()) != 0 {
		t.Fatal("failed persistence must not fire notification")
	}
}

func TestAdminEndpointsWithoutDatabase(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "x"}, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Database not configured") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "x"}, 10)

	req := httptest.NewRequest(http.MethodPatch, "/api/quotes/6f1f8c1e-8f3a-4f6e-9f7b-0a1b2c3d4e5f/status", strings.NewReader(`{"status":"sold"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid status") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGetQuoteInvalidID(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "x"}, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/not-a-uuid", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid quote ID") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHealthReportsServices(t *testing.T) {
	f := newFixture(t, &stubSink{name: "postgres", id: "x"}, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Services["database"] != "not configured" {
		t.Fatalf("database = %q", resp.Services["database"])
	}
	if resp.Services["email"] != "disabled" {
		t.Fatalf("email = %q", resp.Services["email"])
	}
}
