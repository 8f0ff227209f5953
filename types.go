package plume

import (
	"strings"
	"time"
)

// FieldType identifies the kind of value a field holds and which widget,
// validator, and codec behavior apply to it.
type FieldType string

const (
	FieldTypeText         FieldType = "TEXT"
	FieldTypeTextArea     FieldType = "TEXTAREA"
	FieldTypeRichText     FieldType = "RICHTEXT"
	FieldTypeNumber       FieldType = "NUMBER"
	FieldTypeBoolean      FieldType = "BOOLEAN"
	FieldTypeDate         FieldType = "DATE"
	FieldTypeDateTime     FieldType = "DATETIME"
	FieldTypeSelect       FieldType = "SELECT"
	FieldTypeMultiSelect  FieldType = "MULTISELECT"
	FieldTypeMedia        FieldType = "MEDIA"
	FieldTypeRelationship FieldType = "RELATIONSHIP"
	FieldTypeArray        FieldType = "ARRAY"
	FieldTypeObject       FieldType = "OBJECT"
	FieldTypeJSON         FieldType = "JSON"
	FieldTypeSlug         FieldType = "SLUG"
	FieldTypeEmail        FieldType = "EMAIL"
	FieldTypeURL          FieldType = "URL"
	FieldTypeColor        FieldType = "COLOR"
	FieldTypePassword     FieldType = "PASSWORD"
)

// FieldDefinition describes one typed slot in a collection's schema.
// The server owns the canonical copy; clients hold request-scoped snapshots.
type FieldDefinition struct {
	ID           string         `json:"id,omitempty"`
	CollectionID string         `json:"collectionId,omitempty"`
	Name         string         `json:"name"`
	Label        string         `json:"label"`
	Type         FieldType      `json:"type"`
	Description  string         `json:"description,omitempty"`
	Required     bool           `json:"required"`
	Unique       bool           `json:"unique"`
	Config       map[string]any `json:"config,omitempty"`
	Validation   map[string]any `json:"validation,omitempty"`
	DefaultValue any            `json:"defaultValue,omitempty"`
	SortOrder    int            `json:"sortOrder"`
	Hidden       bool           `json:"hidden"`
	ReadOnly     bool           `json:"readOnly"`
	AdminOnly    bool           `json:"adminOnly"`
	CreatedAt    time.Time      `json:"createdAt,omitempty"`
	UpdatedAt    time.Time      `json:"updatedAt,omitempty"`
}

// Editable reports whether the field may appear in an entry-authoring form.
func (f FieldDefinition) Editable() bool {
	return !f.Hidden && !f.ReadOnly
}

// SelectOption is one choice of a SELECT or MULTISELECT field.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// EntryStatus is the server-owned lifecycle state of an entry. The client
// only displays statuses and triggers transitions; it never computes them.
type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "DRAFT"
	EntryStatusPublished EntryStatus = "PUBLISHED"
	EntryStatusChanged   EntryStatus = "CHANGED"
	EntryStatusScheduled EntryStatus = "SCHEDULED"
	EntryStatusArchived  EntryStatus = "ARCHIVED"
)

// Display returns a human-readable label for the status. Statuses the client
// does not recognize fall back to a title-cased rendering of the raw value so
// server-side additions never break the entry list.
func (s EntryStatus) Display() string {
	switch s {
	case EntryStatusDraft:
		return "Draft"
	case EntryStatusPublished:
		return "Published"
	case EntryStatusChanged:
		return "Changed"
	case EntryStatusScheduled:
		return "Scheduled"
	case EntryStatusArchived:
		return "Archived"
	default:
		raw := strings.TrimSpace(string(s))
		if raw == "" {
			return "Unknown"
		}
		lower := strings.ToLower(raw)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}

// Entry is one content record of a collection. Data maps field names to wire
// values; structured fields may arrive either pre-parsed or as JSON strings.
type Entry struct {
	ID            string         `json:"id"`
	CollectionID  string         `json:"collectionId,omitempty"`
	WorkspaceID   string         `json:"workspaceId,omitempty"`
	Data          map[string]any `json:"data"`
	PublishedData map[string]any `json:"publishedData,omitempty"`
	Status        EntryStatus    `json:"status"`
	AuthorID      string         `json:"authorId,omitempty"`
	PublishedAt   *time.Time     `json:"publishedAt,omitempty"`
	ScheduledAt   *time.Time     `json:"scheduledAt,omitempty"`
	ArchivedAt    *time.Time     `json:"archivedAt,omitempty"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
}

// Collection groups fields and entries under a workspace.
type Collection struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspaceId,omitempty"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields,omitempty"`
	CreatedAt   time.Time         `json:"createdAt,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
}

// Workspace groups collections under an organization.
type Workspace struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId,omitempty"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// Organization is the top-level tenancy unit.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateCollectionRequest is the payload for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// UpdateCollectionRequest is the payload for editing a collection.
type UpdateCollectionRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateFieldRequest is the payload for adding a field to a collection.
// Config and Validation stay nil when the operator supplied nothing, so the
// server can distinguish "no configuration" from an explicitly empty map.
type CreateFieldRequest struct {
	Name         string         `json:"name"`
	Label        string         `json:"label"`
	Type         FieldType      `json:"type"`
	Description  string         `json:"description,omitempty"`
	Required     bool           `json:"required"`
	Unique       bool           `json:"unique"`
	Config       map[string]any `json:"config,omitempty"`
	Validation   map[string]any `json:"validation,omitempty"`
	DefaultValue any            `json:"defaultValue,omitempty"`
	Hidden       bool           `json:"hidden,omitempty"`
	ReadOnly     bool           `json:"readOnly,omitempty"`
	AdminOnly    bool           `json:"adminOnly,omitempty"`
}

// UpdateFieldRequest is the payload for editing a field definition.
// Name and Type are immutable after creation and therefore absent.
type UpdateFieldRequest struct {
	Label        string         `json:"label,omitempty"`
	Description  string         `json:"description,omitempty"`
	Required     *bool          `json:"required,omitempty"`
	Unique       *bool          `json:"unique,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
	Validation   map[string]any `json:"validation,omitempty"`
	DefaultValue any            `json:"defaultValue,omitempty"`
	Hidden       *bool          `json:"hidden,omitempty"`
	ReadOnly     *bool          `json:"readOnly,omitempty"`
	AdminOnly    *bool          `json:"adminOnly,omitempty"`
}

// CreateEntryRequest carries cleaned entry data produced by the submission codec.
type CreateEntryRequest struct {
	Data   map[string]any `json:"data"`
	Status EntryStatus    `json:"status,omitempty"`
}

// UpdateEntryRequest carries cleaned entry data for an existing entry.
type UpdateEntryRequest struct {
	Data map[string]any `json:"data,omitempty"`
}

// EntryQuery restricts and pages an entry listing.
type EntryQuery struct {
	Status EntryStatus `json:"status,omitempty"`
	Limit  int         `json:"limit,omitempty"`
	Offset int         `json:"offset,omitempty"`
	Sort   string      `json:"sort,omitempty"`
}

// ListMeta is the pagination envelope returned alongside list responses.
type ListMeta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// BulkFailure reports why one entry of a bulk operation was skipped.
type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResult reports per-entry outcomes of a bulk operation.
type BulkResult struct {
	Success []string      `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// ActivityEvent is one row of a collection's activity feed.
type ActivityEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntryID    string    `json:"entryId,omitempty"`
	EntryTitle string    `json:"entryTitle,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Message renders a feed line for the event. Unrecognized actions fall back
// to a generic "<action> <title>" form so new server-side actions still render.
func (a ActivityEvent) Message() string {
	title := a.EntryTitle
	if title == "" {
		title = "Entry"
	}
	switch a.Action {
	case "created":
		return `Created "` + title + `"`
	case "updated":
		return `Updated "` + title + `"`
	case "deleted":
		return `Deleted "` + title + `"`
	case "published":
		return `Published "` + title + `"`
	case "unpublished":
		return `Unpublished "` + title + `"`
	case "archived":
		return `Archived "` + title + `"`
	default:
		return a.Action + ` "` + title + `"`
	}
}
