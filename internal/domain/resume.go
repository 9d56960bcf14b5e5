package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Resume is the system-of-record candidate resume. The screening core only
// reads resumes; ownership of the records stays with the upload pipeline.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Title     *string   `json:"title,omitempty"`
	Summary   *string   `json:"summary,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	RawText   string    `json:"raw_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IndexContent flattens the resume into the text blob the vector index
// embeds. Field order is stable so re-upserting an unchanged resume
// produces identical content.
func (r *Resume) IndexContent() string {
	var b strings.Builder
	b.WriteString(r.FullName)
	if r.Title != nil && *r.Title != "" {
		b.WriteString("\n")
		b.WriteString(*r.Title)
	}
	if r.Summary != nil && *r.Summary != "" {
		b.WriteString("\n")
		b.WriteString(*r.Summary)
	}
	if len(r.Skills) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(r.Skills, ", "))
	}
	if r.RawText != "" {
		b.WriteString("\n")
		b.WriteString(r.RawText)
	}
	return b.String()
}

// ResumeRepository defines read access to the resume system of record
type ResumeRepository interface {
	// ListIdentities returns the full authoritative identity set
	ListIdentities(ctx context.Context) ([]uuid.UUID, error)
	// GetByID returns ErrNotFound when the resume does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Resume, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
