package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

// decodeJSON reads a JSON object into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(errInvalidJSON, err.Error())
	}
	return nil
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondError answers an API call with {success:false,message}.
func (rd *Renderer) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.Status(err)
	msg := apperror.Message(err)

	switch {
	case errors.Is(err, errInvalidJSON):
		status, msg = http.StatusBadRequest, "Invalid JSON body"
	case status >= http.StatusInternalServerError:
		rd.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	httputil.RespondWithError(w, status, msg)
}
