package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"shoutbox-backend/internal/common"
	"shoutbox-backend/internal/config"
	"shoutbox-backend/internal/models"
	"shoutbox-backend/internal/monitoring"
	"shoutbox-backend/internal/repositories"
)

// MaxImageBytes is the upload ceiling for a shoutbox image.
const MaxImageBytes = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// ImageUpload is a pending image payload with its declared type and
// size, as extracted from the multipart request.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// MessageService owns the single record per network: upsert with
// partial-field replace, image replacement against the external media
// store, soft-ownership checks on the delete operations.
type MessageService struct {
	repo          repositories.MessageRepository
	media         MediaStore
	keyPrefix     string
	queryTimeout  time.Duration
	uploadTimeout time.Duration
}

func NewMessageService(repo repositories.MessageRepository, media MediaStore, cfg *config.Config) *MessageService {
	return &MessageService{
		repo:          repo,
		media:         media,
		keyPrefix:     cfg.Media.KeyPrefix,
		queryTimeout:  cfg.Database.QueryTimeout,
		uploadTimeout: cfg.Media.UploadTimeout,
	}
}

// Get returns the current record for a network, or common.ErrNotFound.
func (s *MessageService) Get(ctx context.Context, networkID string) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.repo.Get(ctx, networkID)
}

// Send writes text and/or an image for a network. At least one of the
// two must be present. The image, if any, is uploaded to the media
// store first; only after the new object is safely in place is the
// previous one reclaimed (best effort), and only then is the record
// upserted. A failed upload aborts the whole write with nothing
// persisted. Ownership moves to deviceID unconditionally.
//
// Writes replace only the supplied fields: sending just an image keeps
// the existing text, and sending just text keeps the existing image.
func (s *MessageService) Send(ctx context.Context, networkID string, text *string, image *ImageUpload, deviceID *string) (*models.Message, error) {
	if text == nil && image == nil {
		return nil, common.ErrInvalidRequest
	}

	if image != nil {
		if err := validateImage(image); err != nil {
			return nil, err
		}
	}

	var oldPublicID *string
	current, err := s.Get(ctx, networkID)
	switch {
	case err == nil:
		oldPublicID = current.PublicID
	case errors.Is(err, common.ErrNotFound):
		// First write for this network.
	default:
		return nil, err
	}

	params := repositories.UpsertParams{
		NetworkID:     networkID,
		Text:          text,
		OwnerDeviceID: deviceID,
	}

	if image != nil {
		key := NewStorageKey(s.keyPrefix)

		uctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
		url, err := s.media.Upload(uctx, key, image.ContentType, image.Body, image.Size)
		cancel()
		if err != nil {
			log.Printf("[Media] upload failed: %v", err)
			monitoring.ImageUploads.WithLabelValues("failure").Inc()
			return nil, common.ErrImageUploadFailed
		}
		monitoring.ImageUploads.WithLabelValues("success").Inc()

		// Old object goes away only after the new one exists, so a
		// network never transits through a state with no valid image.
		if oldPublicID != nil {
			s.reclaim(ctx, *oldPublicID)
		}

		params.ImageURL = &url
		params.PublicID = &key
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.repo.Upsert(ctx, params)
}

// DeleteImage clears the media fields of a record, reclaiming the
// stored object. Missing record or missing image is a no-op reported as
// cleared=false; an owner-tag mismatch is common.ErrForbidden.
func (s *MessageService) DeleteImage(ctx context.Context, networkID string, deviceID *string) (bool, error) {
	msg, err := s.Get(ctx, networkID)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !msg.HasImage() {
		return false, nil
	}

	if err := checkOwnership(msg, deviceID); err != nil {
		return false, err
	}

	s.reclaim(ctx, *msg.PublicID)

	cctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.repo.ClearImage(cctx, networkID); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the whole record, then reclaims its image if one was
// attached. Absent record is common.ErrNotFound; owner-tag mismatch is
// common.ErrForbidden.
func (s *MessageService) Delete(ctx context.Context, networkID string, deviceID *string) error {
	msg, err := s.Get(ctx, networkID)
	if err != nil {
		return err
	}

	if err := checkOwnership(msg, deviceID); err != nil {
		return err
	}

	dctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.repo.Delete(dctx, networkID); err != nil {
		return err
	}

	if msg.HasImage() {
		s.reclaim(ctx, *msg.PublicID)
	}
	return nil
}

// reclaim deletes an object from the media store without ever failing
// the caller: by the time it runs the record's new state is already
// safe, so a leftover object only costs storage. The outcome is logged
// and counted instead of returned.
func (s *MessageService) reclaim(ctx context.Context, publicID string) {
	rctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	if err := s.media.Remove(rctx, publicID); err != nil {
		log.Printf("[Media] failed to reclaim %s: %v", publicID, err)
		monitoring.ImageReclaims.WithLabelValues("failure").Inc()
		return
	}
	monitoring.ImageReclaims.WithLabelValues("success").Inc()
}

func validateImage(image *ImageUpload) error {
	if image.Size > MaxImageBytes {
		return fmt.Errorf("%w: file too large (max %d bytes)", common.ErrInvalidImage, MaxImageBytes)
	}
	if !allowedImageTypes[image.ContentType] {
		return fmt.Errorf("%w: unsupported image type %q", common.ErrInvalidImage, image.ContentType)
	}
	return nil
}

// checkOwnership enforces the soft ownership rule: the stored owner tag
// and the requester's tag must match when both are present. This is a
// plain equality check on an untrusted caller-supplied string, not
// authentication.
func checkOwnership(msg *models.Message, deviceID *string) error {
	if msg.OwnerDeviceID == nil || deviceID == nil {
		return nil
	}
	if *msg.OwnerDeviceID != *deviceID {
		return common.ErrForbidden
	}
	return nil
}
