package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nhalm/canonlog"
)

func renderJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func renderError(w http.ResponseWriter, r *http.Request, statusCode int, err error, message, param string) {
	canonlog.AddRequestError(r.Context(), err)
	renderJSON(w, statusCode, NewErrorResponse(statusCode, err, sanitizeErrorMessage(message, statusCode), param))
}

// sanitizeErrorMessage hides internal failures. Upstream messages are the
// catalog server's own text for the operator and pass through.
func sanitizeErrorMessage(message string, statusCode int) string {
	if statusCode == http.StatusBadGateway || statusCode == http.StatusGatewayTimeout {
		return message
	}
	if statusCode >= 500 {
		return "An internal error occurred"
	}
	return message
}

func Success(w http.ResponseWriter, data any) {
	renderJSON(w, http.StatusOK, data)
}

func PDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func BadRequest(w http.ResponseWriter, r *http.Request, err error, message, param string) {
	renderError(w, r, http.StatusBadRequest, err, message, param)
}

func NotFound(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusNotFound, err, message, "")
}

func BadGateway(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusBadGateway, err, message, "")
}

func GatewayTimeout(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusGatewayTimeout, err, message, "")
}

func InternalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	renderError(w, r, http.StatusInternalServerError, err, message, "")
}
