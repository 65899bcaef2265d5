package repositories

import (
	"context"
	"errors"
	"fmt"

	"shoutbox-backend/internal/common"
	"shoutbox-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UpsertParams carries the fields of a single write. Nil pointers mean
// "not supplied" and leave the existing column value in place, except
// OwnerDeviceID which always overwrites: ownership follows the most
// recent writer.
type UpsertParams struct {
	NetworkID     string
	Text          *string
	ImageURL      *string
	PublicID      *string
	OwnerDeviceID *string
}

// MessageRepository is the persistence boundary for the one-record-per
// network table.
type MessageRepository interface {
	Get(ctx context.Context, networkID string) (*models.Message, error)
	Upsert(ctx context.Context, p UpsertParams) (*models.Message, error)
	ClearImage(ctx context.Context, networkID string) error
	Delete(ctx context.Context, networkID string) error
}

// PostgresMessageRepository implements MessageRepository over a pgx
// pool. Atomicity per network comes from the primary-key upsert, not
// from any in-process locking.
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

func (r *PostgresMessageRepository) Get(ctx context.Context, networkID string) (*models.Message, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT network_id, text, image_url, public_id, owner_device_id, updated_at
		FROM messages
		WHERE network_id = $1`, networkID)

	msg := &models.Message{}
	err := row.Scan(&msg.NetworkID, &msg.Text, &msg.ImageURL, &msg.PublicID, &msg.OwnerDeviceID, &msg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get message: %v", common.ErrStore, err)
	}
	return msg, nil
}

// Upsert inserts or updates the record for a network in one atomic
// statement. Unsupplied columns keep their previous values via
// COALESCE ("replace only supplied fields" — a write carrying only an
// image preserves the text, and vice versa). The owner column is
// replaced unconditionally.
func (r *PostgresMessageRepository) Upsert(ctx context.Context, p UpsertParams) (*models.Message, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (network_id, text, image_url, public_id, owner_device_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (network_id)
		DO UPDATE SET
			text            = COALESCE(EXCLUDED.text, messages.text),
			image_url       = COALESCE(EXCLUDED.image_url, messages.image_url),
			public_id       = COALESCE(EXCLUDED.public_id, messages.public_id),
			owner_device_id = EXCLUDED.owner_device_id,
			updated_at      = NOW()
		RETURNING network_id, text, image_url, public_id, owner_device_id, updated_at`,
		p.NetworkID, p.Text, p.ImageURL, p.PublicID, p.OwnerDeviceID)

	msg := &models.Message{}
	err := row.Scan(&msg.NetworkID, &msg.Text, &msg.ImageURL, &msg.PublicID, &msg.OwnerDeviceID, &msg.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert message: %v", common.ErrStore, err)
	}
	return msg, nil
}

// ClearImage nulls the media columns only; the record itself persists.
func (r *PostgresMessageRepository) ClearImage(ctx context.Context, networkID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET image_url = NULL, public_id = NULL, updated_at = NOW()
		WHERE network_id = $1`, networkID)
	if err != nil {
		return fmt.Errorf("%w: clear image: %v", common.ErrStore, err)
	}
	return nil
}

func (r *PostgresMessageRepository) Delete(ctx context.Context, networkID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE network_id = $1`, networkID)
	if err != nil {
		return fmt.Errorf("%w: delete message: %v", common.ErrStore, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
