// Package decode reads request input from JSON bodies, HTML form posts, query
// strings and chi path parameters.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strconv"

	"github.com/corray333/backend-labs/store/internal/service/errs"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

// ErrBadRequest wraps every decoding failure.
var ErrBadRequest = errors.New("bad request")

const maxBodyBytes = 1 << 20

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// Query decodes the URL query into dst using its schema tags.
func Query(r *http.Request, dst any) error {
	if err := newDecoder().Decode(dst, r.URL.Query()); err != nil {
		return schemaError("query", err)
	}

	return nil
}

// Body decodes a JSON body, or a urlencoded or multipart form, into dst.
// JSON uses json tags, forms use schema tags.
func Body(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return fmt.Errorf("%w: form: %v", ErrBadRequest, err)
			}
		} else if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: form: %v", ErrBadRequest, err)
		}

		if err := newDecoder().Decode(dst, r.PostForm); err != nil {
			return schemaError("form", err)
		}

		return nil
	default:
		body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(dst); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				ve := &errs.ValidationError{}
				ve.Add(typeErr.Field, "type", invalidValue(typeErr.Field))

				return ve
			}

			return fmt.Errorf("%w: json: %v", ErrBadRequest, err)
		}

		return nil
	}
}

// schemaError turns per-key conversion failures into field violations, in key
// order. Anything else is a bad request.
func schemaError(source string, err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) || len(multi) == 0 {
		return fmt.Errorf("%w: %s: %v", ErrBadRequest, source, err)
	}

	keys := make([]string, 0, len(multi))
	for key := range multi {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	ve := &errs.ValidationError{}
	for _, key := range keys {
		var empty schema.EmptyFieldError
		if errors.As(multi[key], &empty) {
			ve.Add(key, "required", key+" is required.")

			continue
		}
		ve.Add(key, "type", invalidValue(key))
	}

	return ve
}

func invalidValue(field string) string {
	return field + " has an invalid value."
}

// ID parses the named chi path parameter as a positive identifier.
func ID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrBadRequest, name, raw)
	}

	return id, nil
}
