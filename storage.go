package plume

import (
	"context"
)

// EntryWriter is the narrow write surface a form session needs to persist
// an entry. The API client satisfies it; tests use stubs.
type EntryWriter interface {
	CreateEntry(ctx context.Context, req *CreateEntryRequest) (*Entry, error)
	UpdateEntry(ctx context.Context, entryID string, req *UpdateEntryRequest) (*Entry, error)
}

// FieldWriter is the write surface of the field definition editor.
type FieldWriter interface {
	AddField(ctx context.Context, req *CreateFieldRequest) (*FieldDefinition, error)
	UpdateField(ctx context.Context, fieldID string, req *UpdateFieldRequest) (*FieldDefinition, error)
}

// EntryReader provides listing and lookup of entries within one collection
// scope.
type EntryReader interface {
	ListEntries(ctx context.Context, q *EntryQuery) ([]Entry, *ListMeta, error)
	GetEntry(ctx context.Context, entryID string) (*Entry, error)
}
