package api

import "net/http"

func Router(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/messages", h.SubmitMessage)
	mux.HandleFunc("GET /api/messages", h.ListMessages)

	mux.HandleFunc("GET /healthz", h.Health)

	// Root responds 200 so cold-start wake probes against the bare origin
	// succeed (some hosts only start the instance on a root hit).
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("chatapi"))
	})

	return cors(mux)
}

// cors mirrors the permissive policy the web and mobile clients rely on:
// any origin, any header, any method.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
