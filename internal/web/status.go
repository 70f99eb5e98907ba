package web

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/playtally/internal/errors"
	"golang.org/x/text/language"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
})

// resolveLocale picks the best supported locale for the request.
func resolveLocale(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if header == "" {
		return apperrors.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return apperrors.DefaultLocale
	}
	tag, _, _ := localeMatcher.Match(tags...)
	if tag == language.AmericanEnglish {
		return "en-US"
	}
	return apperrors.DefaultLocale
}

// grpcErrorHTTPStatus maps common gRPC status codes to HTTP status codes.
// It returns fallback when err is not a gRPC status or is unmapped.
func grpcErrorHTTPStatus(err error, fallback int) int {
	st, ok := status.FromError(err)
	if !ok {
		return fallback
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return fallback
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError localizes err and writes it as a JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	handled := apperrors.HandleError(err, resolveLocale(r))
	httpStatus := grpcErrorHTTPStatus(handled, http.StatusInternalServerError)
	body := errorResponse{Error: "an unexpected error occurred"}
	if st, ok := status.FromError(handled); ok {
		body.Error = st.Message()
	}
	if code := apperrors.GetCode(err); code != apperrors.CodeUnknown {
		body.Code = string(code)
	}
	writeJSON(w, httpStatus, body)
}

func writeJSON(w http.ResponseWriter, httpStatus int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}
