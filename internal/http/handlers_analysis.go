package http

import (
	"net/http"

	"viaggio/internal/core"
	applog "viaggio/internal/log"
)

// handleAnalyze runs the advisor over a snapshot of the full expense list.
// The snapshot is taken at call time; edits made while the analysis is in
// flight do not invalidate it. Requests arriving during an in-flight call
// share its result instead of producing a second model invocation, which is
// the server-side version of disabling the analyze button while busy.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	result, _, shared := s.analyses.Do("analyze", func() (any, error) {
		return s.advisor.Analyze(r.Context(), s.store.Snapshot(), s.baseCurrency), nil
	})

	if shared {
		applog.FromContext(r.Context()).DebugContext(r.Context(),
			"Joined in-flight analysis", applog.FieldOperation, applog.OpAnalyze)
	}

	writeJSON(w, http.StatusOK, result.(core.AnalysisResult))
}
