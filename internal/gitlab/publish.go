package gitlab

import (
	"context"
	"log/slog"
	"strings"
)

// Action says what Publish did.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// PublishResult describes the published note.
type PublishResult struct {
	Action Action `json:"action"`
	NoteID int64  `json:"note_id"`
}

// Notes is the subset of Client used by Publisher.
type Notes interface {
	ListNotes(ctx context.Context) ([]Note, error)
	CreateNote(ctx context.Context, body string) (Note, error)
	UpdateNote(ctx context.Context, id int64, body string) (Note, error)
}

// Publisher keeps a single report note per merge request, found by marker.
type Publisher struct {
	notes  Notes
	marker string
	log    *slog.Logger
}

// NewPublisher returns a Publisher. A nil logger discards.
func NewPublisher(notes Notes, marker string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Publisher{notes: notes, marker: marker, log: log}
}

// Publish updates the oldest note containing the marker, or creates a new
// note when none exists.
func (p *Publisher) Publish(ctx context.Context, body string) (PublishResult, error) {
	if !strings.Contains(body, p.marker) {
		p.log.Warn("report body does not contain the marker; later runs will post a new note", "marker", p.marker)
	}

	notes, err := p.notes.ListNotes(ctx)
	if err != nil {
		return PublishResult{}, err
	}

	for _, n := range notes {
		if n.System || !strings.Contains(n.Body, p.marker) {
			continue
		}
		p.log.Debug("updating existing report note", "note_id", n.ID)
		updated, err := p.notes.UpdateNote(ctx, n.ID, body)
		if err != nil {
			return PublishResult{}, err
		}
		return PublishResult{Action: ActionUpdated, NoteID: updated.ID}, nil
	}

	p.log.Debug("no report note found, creating one", "notes_scanned", len(notes))
	created, err := p.notes.CreateNote(ctx, body)
	if err != nil {
		return PublishResult{}, err
	}
	return PublishResult{Action: ActionCreated, NoteID: created.ID}, nil
}
