package api

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// maxBodyBytes caps request bodies. Audio and image payloads arrive
// base64-encoded, so the cap has to leave room for the ~33% overhead.
const maxBodyBytes = 32 << 20

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON serializes v and writes it with the given status code. A
// serialization failure downgrades to a bare 500 since the body is
// already unrecoverable at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, msg)
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// readJSON decodes the request body into v, enforcing a sane size cap.
func readJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}
