package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
	"github.com/nguyentantai21042004/transcript-genie/internal/summarizer"
	"github.com/nguyentantai21042004/transcript-genie/internal/transcript"
)

const maxUploadBytes = 10 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

// parseSource builds a transcript Source from the submitted form. The form
// is multipart when a file rides along, url-encoded otherwise.
func parseSource(r *http.Request) (transcript.Source, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return transcript.Source{}, fmt.Errorf("parse form: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return transcript.Source{}, fmt.Errorf("parse form: %w", err)
		}
	}

	method := transcript.Method(r.FormValue("method"))
	src := transcript.Source{Method: method}

	switch method {
	case transcript.MethodURL:
		src.URL = r.FormValue("url")
	case transcript.MethodUpload:
		file, _, err := r.FormFile("file")
		if err != nil {
			return transcript.Source{}, fmt.Errorf("read upload: %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return transcript.Source{}, fmt.Errorf("read upload: %w", err)
		}
		src.Upload = data
	case transcript.MethodPaste:
		src.Text = r.FormValue("text")
	}

	return src, nil
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	src, err := parseSource(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	style, ok := summarizer.ParseStyle(r.FormValue("style"))
	if !ok {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("unknown summary style %q", r.FormValue("style")))
		return
	}

	text, err := s.resolver.Resolve(r.Context(), src)
	if err != nil {
		s.writeError(w, r, errorStatus(err), err)
		return
	}

	sum := summarizer.New(s.newGen(r.FormValue("api_key")), style, s.logger)
	summary, err := sum.Summarize(r.Context(), text, style)
	if err != nil {
		s.writeError(w, r, errorStatus(err), err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// handleSummaryDocx renders an already-generated summary as a docx download.
// No generative call happens here.
func (s *Server) handleSummaryDocx(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	markdown := r.FormValue("summary")
	if strings.TrimSpace(markdown) == "" {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("summary is empty"))
		return
	}
	title := r.FormValue("title")
	if title == "" {
		title = "Summary"
	}

	path := filepath.Join(s.cfg.Paths.Temp, "summary-"+uuid.NewString()+".docx")
	if err := summarizer.ExportDocx(title, markdown, path); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn(r.Context(), "Failed to remove %s: %v", path, err)
		}
	}()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.docx"`)
	http.ServeFile(w, r, path)
}

func (s *Server) handleDialogue(w http.ResponseWriter, r *http.Request) {
	src, err := parseSource(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	text, err := s.resolver.Resolve(r.Context(), src)
	if err != nil {
		s.writeError(w, r, errorStatus(err), err)
		return
	}

	gen := dialogue.NewGenerator(s.newGen(r.FormValue("api_key")), s.logger)
	script, err := gen.Generate(r.Context(), text)
	if err != nil {
		s.writeError(w, r, errorStatus(err), err)
		return
	}

	j := s.startAssembly(script)

	s.writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":      j.ID,
		"script":      script,
		"script_text": script.Render(),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	j, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown job"))
		return
	}
	s.writeJSON(w, http.StatusOK, j)
}

func (s *Server) handleJobAudio(w http.ResponseWriter, r *http.Request) {
	j, ok := s.jobs.get(r.PathValue("id"))
	if !ok {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown job"))
		return
	}

	switch j.Status {
	case statusRunning:
		s.writeError(w, r, http.StatusConflict, fmt.Errorf("audio not ready yet"))
	case statusFailed:
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("%s", j.Error))
	case statusDone:
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Disposition", `attachment; filename="conversation.mp3"`)
		http.ServeFile(w, r, j.AudioPath)
	}
}

func (s *Server) handleJobProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.jobs.get(id); !ok {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown job"))
		return
	}
	s.hub.subscribe(w, r, id)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn(r.Context(), "%s %s -> %d: %v", r.Method, r.URL.Path, status, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
