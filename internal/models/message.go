package models

import "time"

// Message is the single shoutbox record shared by every client on a
// network. NetworkID is the one-way fingerprint digest; the raw IP and
// subnet hint are never stored. ImageURL and PublicID are always both
// set or both empty — PublicID is the deletion reference at the media
// store for the currently attached image.
type Message struct {
	NetworkID     string    `json:"network_id"`
	Text          *string   `json:"text"`
	ImageURL      *string   `json:"image_url"`
	PublicID      *string   `json:"public_id"`
	OwnerDeviceID *string   `json:"owner_device_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasImage reports whether an external image is currently attached.
func (m *Message) HasImage() bool {
	return m.PublicID != nil && *m.PublicID != ""
}
