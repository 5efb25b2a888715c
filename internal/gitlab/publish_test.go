package gitlab

import (
	"context"
	"errors"
	"testing"

	"github.com/lookerci/contentcheck/internal/config"
)

type fakeNotes struct {
	notes   []Note
	listErr error
	created []string
	updated map[int64]string
}

func (f *fakeNotes) ListNotes(context.Context) ([]Note, error) {
	return f.notes, f.listErr
}

func (f *fakeNotes) CreateNote(_ context.Context, body string) (Note, error) {
	f.created = append(f.created, body)
	return Note{ID: 99, Body: body}, nil
}

func (f *fakeNotes) UpdateNote(_ context.Context, id int64, body string) (Note, error) {
	if f.updated == nil {
		f.updated = map[int64]string{}
	}
	f.updated[id] = body
	return Note{ID: id, Body: body}, nil
}

const marker = config.DefaultMarker

func TestPublish_CreatesWhenNoMarker(t *testing.T) {
	f := &fakeNotes{notes: []Note{{ID: 1, Body: "LGTM"}}}
	res, err := NewPublisher(f, marker, nil).Publish(context.Background(), marker+"\nreport")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if res.Action != ActionCreated || res.NoteID != 99 {
		t.Errorf("result = %+v", res)
	}
	if len(f.created) != 1 || len(f.updated) != 0 {
		t.Errorf("created=%d updated=%d", len(f.created), len(f.updated))
	}
}

func TestPublish_UpdatesFirstMarkedNote(t *testing.T) {
	f := &fakeNotes{notes: []Note{
		{ID: 1, Body: "LGTM"},
		{ID: 2, Body: marker + "\nold", System: true},
		{ID: 3, Body: "prefix " + marker + "\nold"},
		{ID: 4, Body: marker + "\nolder duplicate"},
	}}
	res, err := NewPublisher(f, marker, nil).Publish(context.Background(), marker+"\nnew")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if res.Action != ActionUpdated || res.NoteID != 3 {
		t.Errorf("result = %+v", res)
	}
	if f.updated[3] != marker+"\nnew" || len(f.updated) != 1 || len(f.created) != 0 {
		t.Errorf("updated = %v created = %v", f.updated, f.created)
	}
}

func TestPublish_ListError(t *testing.T) {
	f := &fakeNotes{listErr: errors.New("boom")}
	if _, err := NewPublisher(f, marker, nil).Publish(context.Background(), marker); err == nil {
		t.Fatal("expected error")
	}
	if len(f.created) != 0 {
		t.Error("must not create a note when listing fails")
	}
}

func TestPublish_BodyWithoutMarkerStillPublished(t *testing.T) {
	f := &fakeNotes{}
	res, err := NewPublisher(f, marker, nil).Publish(context.Background(), "no marker here")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if res.Action != ActionCreated {
		t.Errorf("result = %+v", res)
	}
}
