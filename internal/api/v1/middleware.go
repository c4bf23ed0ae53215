package v1

import "net/http"

// require wraps a handler and returns 503 when a dependency is not configured.
func require(configured bool, name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !configured {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", name+" not configured")
			return
		}
		next(w, r)
	}
}

func (s *Server) requireAnalyzer(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Analyzer != nil, "Audio analysis", next)
}

func (s *Server) requireJobs(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Jobs != nil, "Analysis job store", next)
}

func (s *Server) requireDigests(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Digests != nil, "Digest store", next)
}

func (s *Server) requireProber(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Prober != nil, "Prober", next)
}

func (s *Server) requireEvents(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Events != nil, "Event log", next)
}

func (s *Server) requireHub(next http.HandlerFunc) http.HandlerFunc {
	return require(s.deps.Hub != nil, "WebSocket hub", next)
}
