package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/at-ishikawa/phrasebook/internal/inference"
)

const maxTextRequestBytes = 64 << 10

// HandleTranslate handles POST /api/translate requests.
func (s *Server) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	var req inference.TranslateRequest
	if !s.decodeJSON(w, r, maxTextRequestBytes, &req) {
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("text is a required field"))
		return
	}

	translation, err := s.client.Translate(r.Context(), req)
	if err != nil {
		slog.Error("failed to translate", "direction", req.Direction, "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("Translation failed"))
		return
	}
	writeJSON(w, http.StatusOK, translation)
}

// HandleTranslateImage handles POST /api/translate-image multipart requests with an image file
// and a direction field.
func (s *Server) HandleTranslateImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxImageBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxImageBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("Image is too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	direction := inference.Direction(r.FormValue("direction"))
	if direction == "" {
		direction = inference.DirectionEnToAr
	}
	if direction != inference.DirectionEnToAr && direction != inference.DirectionArToEn {
		writeJSON(w, http.StatusBadRequest, errorResponse("direction must be one of [en_to_ar ar_to_en]"))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("image is a required field"))
		return
	}
	defer func() {
		_ = file.Close()
	}()
	contents, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("failed to read the image"))
		return
	}

	mime := mimetype.Detect(contents)
	if !strings.HasPrefix(mime.String(), "image/") {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse("Only image files are supported"))
		return
	}

	translation, err := s.client.TranslateImage(r.Context(), inference.ImageTranslateRequest{
		Contents:    contents,
		ContentType: mime.String(),
		Direction:   direction,
	})
	if err != nil {
		slog.Error("failed to translate an image", "direction", direction, "mime", mime.String(), "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("Image translation failed"))
		return
	}
	writeJSON(w, http.StatusOK, translation)
}
