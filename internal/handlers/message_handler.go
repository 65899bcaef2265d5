package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"shoutbox-backend/internal/common"
	"shoutbox-backend/internal/models"
	"shoutbox-backend/internal/netid"
	"shoutbox-backend/internal/services"
)

// multipartMemoryLimit bounds in-memory multipart parsing; anything
// past the image ceiling spills to disk and is rejected by validation.
const multipartMemoryLimit = services.MaxImageBytes + (1 << 20)

// MessageHandler exposes the shoutbox operations over HTTP. The
// network fingerprint is resolved per request; clients never send it.
type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type messageResponse struct {
	Success       bool      `json:"success"`
	Message       string    `json:"message,omitempty"`
	NetworkID     string    `json:"network_id"`
	Text          *string   `json:"text"`
	ImageURL      *string   `json:"image_url"`
	PublicID      *string   `json:"public_id"`
	OwnerDeviceID *string   `json:"owner_device_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toResponse(msg *models.Message, note string) messageResponse {
	return messageResponse{
		Success:       true,
		Message:       note,
		NetworkID:     msg.NetworkID,
		Text:          msg.Text,
		ImageURL:      msg.ImageURL,
		PublicID:      msg.PublicID,
		OwnerDeviceID: msg.OwnerDeviceID,
		UpdatedAt:     msg.UpdatedAt,
	}
}

// Send handles POST /send: multipart form with an optional "text"
// field and an optional "image" file.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	networkID := netid.FromRequest(r)
	deviceID := optionalHeader(r, "X-Device-ID")

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var text *string
	if t := strings.TrimSpace(r.FormValue("text")); t != "" {
		text = &t
	}

	var image *services.ImageUpload
	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		image = &services.ImageUpload{
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// Text-only write.
	default:
		writeError(w, http.StatusBadRequest, "Error retrieving file: "+err.Error())
		return
	}

	msg, err := h.service.Send(r.Context(), networkID, text, image, deviceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(msg, "Saved"))
}

// Get handles GET /get.
func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	networkID := netid.FromRequest(r)

	msg, err := h.service.Get(r.Context(), networkID)
	if errors.Is(err, common.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success":    false,
			"error":      "No message found",
			"network_id": networkID,
		})
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(msg, ""))
}

// Delete handles DELETE /delete: removes the whole record.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	networkID := netid.FromRequest(r)
	deviceID := optionalHeader(r, "X-Device-ID")

	if err := h.service.Delete(r.Context(), networkID, deviceID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No message to delete")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Deleted",
	})
}

// DeleteImage handles DELETE /delete-image: clears the media fields
// but keeps the record. Nothing to clear is a success with
// cleared=false, so repeated calls are safe.
func (h *MessageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	networkID := netid.FromRequest(r)
	deviceID := optionalHeader(r, "X-Device-ID")

	cleared, err := h.service.DeleteImage(r.Context(), networkID, deviceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cleared": cleared,
	})
}

func optionalHeader(r *http.Request, name string) *string {
	if v := r.Header.Get(name); v != "" {
		return &v
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

// writeServiceError maps the service error kinds onto HTTP statuses.
// Validation and ownership errors carry their message to the caller;
// store failures are logged in full and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "Text or image required")
	case errors.Is(err, common.ErrInvalidImage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "No message found")
	case errors.Is(err, common.ErrImageUploadFailed):
		writeError(w, http.StatusInternalServerError, "Image upload failed")
	default:
		log.Printf("DB error in %s: %v", r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Database error")
	}
}
