package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/dgallion1/docfmt/internal/cms"
	"github.com/dgallion1/docfmt/internal/export"
	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// result loads the document named in the URL, writing a 404 if it is gone.
func (s *Server) result(w http.ResponseWriter, r *http.Request) *pipeline.Result {
	res := s.svc.Get(chi.URLParam(r, "docID"))
	if res == nil {
		jsonError(w, "document not found", http.StatusNotFound)
	}
	return res
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	res := s.result(w, r)
	if res == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.svc.Delete(chi.URLParam(r, "docID")) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	res := s.result(w, r)
	if res == nil {
		return
	}
	page := export.StandalonePage(res.Content.Formatted.HTML, res.Content.FileName)
	attachment(w, "text/html; charset=utf-8", export.FormattedFileName(res.Content.FileName), []byte(page))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	res := s.result(w, r)
	if res == nil {
		return
	}
	page, err := export.ComparisonPage(res)
	if err != nil {
		s.exportError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res := s.result(w, r)
	if res == nil {
		return
	}
	base := parser.StripExtension(res.Content.FileName) + "_formatted"

	switch format := chi.URLParam(r, "format"); format {
	case "md":
		md, err := export.ToMarkdown(res.Content.Formatted.HTML)
		if err != nil {
			s.exportError(w, err)
			return
		}
		attachment(w, "text/markdown; charset=utf-8", base+".md", []byte(md))
	case "pdf":
		var buf bytes.Buffer
		if err := export.ToPDF(&buf, res.Content.Formatted.HTML, res.Content.FileName); err != nil {
			s.exportError(w, err)
			return
		}
		attachment(w, "application/pdf", base+".pdf", buf.Bytes())
	default:
		jsonError(w, "unsupported export format: "+format, http.StatusBadRequest)
	}
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	res := s.result(w, r)
	if res == nil {
		return
	}
	id, err := s.publisher.CreateArticle(r.Context(), cms.Article{
		Title: parser.StripExtension(res.Content.FileName),
		HTML:  res.Content.Formatted.HTML,
	})
	if errors.Is(err, cms.ErrNotImplemented) {
		jsonError(w, err.Error(), http.StatusNotImplemented)
		return
	}
	if err != nil {
		s.log.Error("publish failed", "doc_id", res.ID, "error", err)
		jsonError(w, "failed to publish document", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"entry_id": id})
}

func (s *Server) exportError(w http.ResponseWriter, err error) {
	s.log.Error("export failed", "error", err)
	msg := "Failed to download the formatted document"
	var ee *export.ExportError
	if errors.As(err, &ee) {
		msg = ee.UserMessage()
	}
	jsonError(w, msg, http.StatusInternalServerError)
}

func attachment(w http.ResponseWriter, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Write(body)
}
