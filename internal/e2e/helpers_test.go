package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sessiond/internal/ar"
	"sessiond/internal/capture"
	"sessiond/internal/engine"
	"sessiond/internal/httpapi"
	"sessiond/internal/pose"
	"sessiond/internal/session"
	"sessiond/pkg/types"
)

// newServer wires a real coordinator with the demo pose engines and the
// simulated AR runtime over synthetic capture, exactly as `sessiond -demo`
// does, and serves it via httptest.
func newServer(t *testing.T) (*httptest.Server, *session.Coordinator) {
	t.Helper()
	reg := engine.NewRegistry()
	pose.Register(reg, pose.Options{Demo: true})
	ar.Register(reg, ar.Options{})

	pub := session.NewFanout(64)
	coord := session.NewWithConfig(session.Config{
		Registry: reg,
		Deps: engine.Deps{
			Capture:       &capture.Synthetic{},
			CaptureConfig: capture.Config{FPS: 100},
		},
		Publisher:   pub,
		SettleDelay: -1, // keep e2e switches fast
	})

	srv := httptest.NewServer(httpapi.NewMux(coord, pub))
	t.Cleanup(srv.Close)
	return srv, coord
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func getStatus(t *testing.T, baseURL string) types.StatusResponse {
	t.Helper()
	resp, err := http.Get(baseURL + "/status")
	if err != nil {
		t.Fatalf("get status: %v", err)
	}
	defer resp.Body.Close()
	var st types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return st
}

func switchMode(t *testing.T, baseURL string, mode types.Mode, eng string) *http.Response {
	t.Helper()
	return postJSON(t, baseURL+"/switch", types.SwitchRequest{Mode: mode, Engine: eng})
}
