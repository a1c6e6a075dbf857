package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"healthcare-records/internal/domain/entity"
	"healthcare-records/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseInt64Param(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeDomainValidation reports a domain invariant failure in the same shape as
// request validation failures and returns false for any other error.
func writeDomainValidation(w http.ResponseWriter, err error) bool {
	var vErr *entity.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}
	response.ValidationError(w, map[string]string{vErr.Field: vErr.Message})
	return true
}
