package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so details match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// decodeAndValidate reads a JSON body into dst, runs prepare on it and then
// the struct's validate tags. On failure it writes the error response and
// returns false.
func decodeAndValidate[T any](w http.ResponseWriter, r *http.Request, dst *T, prepare func(*T)) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	if prepare != nil {
		prepare(dst)
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": validationDetail(err),
			"fields": validationFields(err),
		})
		return false
	}
	return true
}

func validationDetail(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, fieldPath(e)+" "+fieldMessage(e))
	}
	return strings.Join(msgs, "; ")
}

func validationFields(err error) map[string]string {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fields
	}
	for _, e := range ve {
		fields[fieldPath(e)] = fieldMessage(e)
	}
	return fields
}

// fieldPath drops the root struct name: "CreateGroceryListInput.items[0].name"
// becomes "items[0].name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("failed '%s' check", e.Tag())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
