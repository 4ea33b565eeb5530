package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"snaphistory/middleware"
	"snaphistory/services"
	"snaphistory/utils/errors"
)

const maxUploadBytes = 10 << 20

// IdentifyHandler serves POST /v1/identify.
type IdentifyHandler struct {
	identifyService *services.IdentifyService
}

func NewIdentifyHandler(identifyService *services.IdentifyService) *IdentifyHandler {
	return &IdentifyHandler{identifyService: identifyService}
}

func (h *IdentifyHandler) IdentifyPlace(w http.ResponseWriter, r *http.Request) {
	image, err := h.resolveImage(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	record, err := h.identifyService.Identify(r.Context(), image)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// resolveImage extracts raw image bytes from the multipart upload, or
// fetches them when only a URL form field is supplied. The upload wins when
// both are present; neither is a 400.
func (h *IdentifyHandler) resolveImage(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		return nil, errors.ErrMissingImage
	}

	file, _, err := r.FormFile("image_file")
	if err == nil {
		defer file.Close()
		image, err := io.ReadAll(file)
		if err != nil {
			return nil, errors.Wrap(err, "INVALID_INPUT", "Failed to read uploaded image", errors.ErrInvalidInput.Status)
		}
		return image, nil
	}

	if imageURL := r.FormValue("image_url"); imageURL != "" {
		return h.identifyService.FetchImage(r.Context(), imageURL)
	}

	return nil, errors.ErrMissingImage
}
