package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kailas-cloud/catalogo/internal/domain"
)

// Error codes of the JSON API.
const (
	codeNotFound      = "not_found"
	codeEmptyQuery    = "empty_query"
	codeNoCriteria    = "no_criteria"
	codeQueryFailed   = "query_failed"
	codeInternalError = "internal_error"
)

// Client-facing messages of the HTML views.
const (
	msgNotFound       = "Espécimen no encontrado"
	msgSearchFailed   = "Error al realizar la búsqueda"
	msgAdvancedFailed = "Error al realizar la búsqueda avanzada"
	msgDetailFailed   = "Error al obtener la información del espécimen"
)

// errorResponse is the body of every JSON API error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// queryFailedHandler reports the cause of a database fault.
func queryFailedHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrQueryExecutionFailed) {
		return false
	}
	writeError(w, http.StatusInternalServerError, codeQueryFailed,
		domain.ErrQueryExecutionFailed.Error()+": "+domain.Cause(err))
	return true
}

func apiErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeEmptyQuery),
		sentinelHandler(domain.ErrNoCriteriaProvided, http.StatusBadRequest, codeNoCriteria),
		queryFailedHandler,
	}
}

// failureText renders the plain-text body of an HTML view failure.
func failureText(prefix string, err error) string {
	return prefix + ": " + domain.Cause(err)
}
