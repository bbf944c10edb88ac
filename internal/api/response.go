package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/hanvion/healthcost/internal/calculation"
	"github.com/hanvion/healthcost/internal/reference"
	"go.uber.org/zap"
)

// ResponseDTO is the envelope of every response
type ResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, code int, body ResponseDTO) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, ResponseDTO{Success: true, Message: message, Data: data})
}

// writeError maps validation failures to 400, lookup misses to 404 and
// everything else to 500.
func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		details := make([]string, len(validationErrs))
		for i, fe := range validationErrs {
			details[i] = fieldMessage(fe)
		}
		writeJSON(w, http.StatusBadRequest, ResponseDTO{Message: "invalid request", Errors: details})
	case errors.Is(err, errBadRequest), errors.Is(err, calculation.ErrInvalidHeight):
		writeJSON(w, http.StatusBadRequest, ResponseDTO{Message: err.Error()})
	case errors.Is(err, reference.ErrUnknownState),
		errors.Is(err, reference.ErrUnknownSymptom),
		errors.Is(err, reference.ErrUnknownService),
		errors.Is(err, reference.ErrUnknownMedication):
		writeJSON(w, http.StatusNotFound, ResponseDTO{Message: err.Error()})
	default:
		log.Error("request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ResponseDTO{Message: "something went wrong"})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte", "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "lte", "max":
		return fe.Field() + " must be at most " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
