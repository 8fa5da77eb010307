package httpadapter

import (
	"net/http"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

// statusForEnvelope maps the terminal pipeline state to an HTTP status.
// Clarification and placeholder envelopes are successful terminal states,
// not errors; only the error envelope surfaces as a server fault.
func statusForEnvelope(env domain.Envelope) int {
	if env.QueryType != "error" {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
