package httpapi

import (
	"encoding/json"
	"net/http"
)

// serveEvents streams coordinator lifecycle events and engine results as
// server-sent events. This replaces the callback push the browser shell
// would otherwise receive in-process: one `event:` per coordinator event
// name with a JSON payload.
func serveEvents(w http.ResponseWriter, r *http.Request, events EventSource) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, cancel := events.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx, cancelCtx := joinContexts(serverBaseCtx, r.Context())
	defer cancelCtx()

	for {
		select {
		case <-ctx.Done():
			return
		case e, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(e)
			if err != nil {
				continue
			}
			if _, err := w.Write([]byte("event: " + e.Name + "\ndata: ")); err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
