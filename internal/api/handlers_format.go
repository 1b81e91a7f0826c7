package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/dgallion1/docfmt/internal/rewrite"
)

// formLimit is the multipart overhead allowed on top of the upload limit.
const formLimit = 1 << 20

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+formLimit)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			ve := &pipeline.ValidationError{Reason: pipeline.ErrFileTooLarge, Limit: s.cfg.MaxUploadBytes}
			jsonError(w, ve.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if err := s.svc.Validate(filename, header.Size); err != nil {
		s.processError(w, err)
		return
	}

	opts, err := parseOptions(r, s.defaults)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}

	res, err := s.svc.Format(r.Context(), data, filename, opts)
	if err != nil {
		s.processError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/api/documents/"+res.ID)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

// processError maps pipeline failures onto status codes. The body carries
// only the user-facing message.
func (s *Server) processError(w http.ResponseWriter, err error) {
	var ve *pipeline.ValidationError
	var ce *pipeline.ConversionError
	switch {
	case errors.As(err, &ve) && errors.Is(err, pipeline.ErrFileTooLarge):
		jsonError(w, pipeline.UserMessage(err), http.StatusRequestEntityTooLarge)
	case errors.As(err, &ve):
		jsonError(w, pipeline.UserMessage(err), http.StatusUnsupportedMediaType)
	case errors.As(err, &ce):
		jsonError(w, pipeline.UserMessage(err), http.StatusUnprocessableEntity)
	default:
		s.log.Error("format failed", "error", err)
		jsonError(w, pipeline.UserMessage(err), http.StatusInternalServerError)
	}
}

// parseOptions overrides defaults with any option named in the form.
func parseOptions(r *http.Request, defaults rewrite.Options) (rewrite.Options, error) {
	opts := defaults
	for _, name := range rewrite.OptionNames {
		v := r.FormValue(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("invalid value for " + name + ": " + v)
		}
		opts.Set(name, b)
	}
	return opts, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
