package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sessiond/internal/engine"
	"sessiond/internal/session"
	"sessiond/pkg/types"
)

type mockService struct {
	status    types.StatusResponse
	engines   []types.EngineInfo
	ready     bool
	switchErr error
	switchFn  func(ctx context.Context, target engine.Selection) error
	resetErr  error
	placeErr  error
	placed    engine.Placement
	gotTarget engine.Selection
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Engines() []types.EngineInfo {
	return append([]types.EngineInfo(nil), m.engines...)
}
func (m *mockService) Ready() bool { return m.ready }
func (m *mockService) RequestSwitch(ctx context.Context, target engine.Selection) error {
	m.gotTarget = target
	if m.switchFn != nil {
		return m.switchFn(ctx, target)
	}
	return m.switchErr
}
func (m *mockService) Reset() error                     { return m.resetErr }
func (m *mockService) Place() (engine.Placement, error) { return m.placed, m.placeErr }

type mockEvents struct{ ch chan session.Event }

func (m *mockEvents) Subscribe() (<-chan session.Event, func()) {
	if m.ch == nil {
		m.ch = make(chan session.Event, 8)
	}
	return m.ch, func() {}
}

func newTestMux(svc Service) http.Handler { return NewMux(svc, &mockEvents{}) }

func TestStatusEndpoint(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "active", Mode: "pose", Engine: "movenet"}}
	w := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != "pose" || got.Engine != "movenet" {
		t.Fatalf("unexpected status body: %+v", got)
	}
}

func TestEnginesEndpoint(t *testing.T) {
	svc := &mockService{engines: []types.EngineInfo{
		{Mode: types.ModePose, Engine: "movenet"},
		{Mode: types.ModeAR, Engine: "surface-v1"},
	}}
	w := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/engines", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got types.EnginesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Engines) != 2 {
		t.Fatalf("expected 2 engines, got %d", len(got.Engines))
	}
}

func TestSwitchRequiresJSONContentType(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/switch", bytes.NewBufferString(`{"mode":"pose"}`))
	newTestMux(svc).ServeHTTP(w, req)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", w.Code)
	}
}

func TestSwitchRejectsInvalidJSON(t *testing.T) {
	svc := &mockService{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/switch", bytes.NewBufferString(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	newTestMux(svc).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSwitchPassesSelectionAndReturnsStatus(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "active", Mode: "ar", Engine: "surface-v2"}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/switch", bytes.NewBufferString(`{"mode":"ar","engine":"surface-v2"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestMux(svc).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotTarget.Mode != types.ModeAR || svc.gotTarget.Engine != "surface-v2" {
		t.Fatalf("selection not forwarded: %+v", svc.gotTarget)
	}
	var got types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Mode != "ar" {
		t.Fatalf("unexpected status body: %+v", got)
	}
}

// A switch interrupted by the client going away must still produce an
// explicit error response, never an empty 200.
func TestSwitchCanceledRequestGetsServiceUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &mockService{switchFn: func(c context.Context, _ engine.Selection) error {
		cancel()
		return context.Canceled
	}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/switch", bytes.NewBufferString(`{"mode":"pose"}`))
	req.Header.Set("Content-Type", "application/json")
	newTestMux(svc).ServeHTTP(w, req.WithContext(ctx))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	var body types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected an error message in the body")
	}
}

func TestPlaceReturnsPoseAndCount(t *testing.T) {
	svc := &mockService{placed: engine.Placement{Seq: 3, Pose: types.Pose{X: 0.1, Y: 0.2, Z: -1}}}
	w := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/place", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got types.PlaceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Placements != 3 {
		t.Fatalf("expected 3 placements, got %d", got.Placements)
	}
}

func TestHealthzAlwaysOK(t *testing.T) {
	w := httptest.NewRecorder()
	newTestMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReadyzReflectsCoordinator(t *testing.T) {
	w := httptest.NewRecorder()
	newTestMux(&mockService{ready: false}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 while switching, got %d", w.Code)
	}
	w = httptest.NewRecorder()
	newTestMux(&mockService{ready: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when ready, got %d", w.Code)
	}
}
