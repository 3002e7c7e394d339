package domain

import "time"

// ArtifactRecord describes a published artifact file.
type ArtifactRecord struct {
	Job         string    `json:"job,omitzero"`
	Source      string    `json:"source,omitzero"`
	Destination string    `json:"destination,omitzero"`
	Digest      string    `json:"digest,omitzero"`
	Size        int64     `json:"size,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
