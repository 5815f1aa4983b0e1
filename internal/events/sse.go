package events

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEHandler streams broker events to the client as server-sent events.
// The stream ends when the client disconnects.
func SSEHandler(broker Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch, cancel := broker.Subscribe()
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case evt, open := <-ch:
				if !open {
					return
				}
				data, err := json.Marshal(evt)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
				flusher.Flush()
			}
		}
	}
}
