package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/plumeworks/plume"
)

// CollectionClient is a Client bound to one organization/workspace/
// collection scope. It satisfies plume.EntryReader, plume.EntryWriter,
// and plume.FieldWriter.
type CollectionClient struct {
	client *Client
	base   string
}

var (
	_ plume.EntryReader = (*CollectionClient)(nil)
	_ plume.EntryWriter = (*CollectionClient)(nil)
	_ plume.FieldWriter = (*CollectionClient)(nil)
)

// ============================================================================
// Fields
// ============================================================================

// AddField adds a field definition to the collection.
func (c *CollectionClient) AddField(ctx context.Context, req *plume.CreateFieldRequest) (*plume.FieldDefinition, error) {
	var out plume.FieldDefinition
	if _, err := c.client.do(ctx, http.MethodPost, c.base+"/fields", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateField edits an existing field definition.
func (c *CollectionClient) UpdateField(ctx context.Context, fieldID string, req *plume.UpdateFieldRequest) (*plume.FieldDefinition, error) {
	var out plume.FieldDefinition
	path := c.base + "/fields/" + url.PathEscape(fieldID)
	if _, err := c.client.do(ctx, http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteField removes a field definition from the collection.
func (c *CollectionClient) DeleteField(ctx context.Context, fieldID string) error {
	path := c.base + "/fields/" + url.PathEscape(fieldID)
	_, err := c.client.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// ReorderFields sets the display order of the collection's fields.
func (c *CollectionClient) ReorderFields(ctx context.Context, fieldIDs []string) ([]plume.FieldDefinition, error) {
	var out []plume.FieldDefinition
	body := map[string]any{"fieldIds": fieldIDs}
	if _, err := c.client.do(ctx, http.MethodPost, c.base+"/fields/reorder", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Entries
// ============================================================================

// ListEntries returns a page of entries matching the query.
func (c *CollectionClient) ListEntries(ctx context.Context, q *plume.EntryQuery) ([]plume.Entry, *plume.ListMeta, error) {
	path := c.base + "/entries"
	if q != nil {
		params := url.Values{}
		if q.Status != "" {
			params.Set("status", string(q.Status))
		}
		if q.Limit > 0 {
			params.Set("limit", strconv.Itoa(q.Limit))
		}
		if q.Offset > 0 {
			params.Set("offset", strconv.Itoa(q.Offset))
		}
		if q.Sort != "" {
			params.Set("sort", q.Sort)
		}
		if encoded := params.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}

	var out []plume.Entry
	meta, err := c.client.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		meta = &plume.ListMeta{Total: len(out), Limit: len(out)}
	}
	return out, meta, nil
}

// GetEntry returns one entry by ID.
func (c *CollectionClient) GetEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	var out plume.Entry
	path := c.base + "/entries/" + url.PathEscape(entryID)
	if _, err := c.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEntry creates an entry from cleaned form data.
func (c *CollectionClient) CreateEntry(ctx context.Context, req *plume.CreateEntryRequest) (*plume.Entry, error) {
	var out plume.Entry
	if _, err := c.client.do(ctx, http.MethodPost, c.base+"/entries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEntry updates an entry's data from cleaned form data.
func (c *CollectionClient) UpdateEntry(ctx context.Context, entryID string, req *plume.UpdateEntryRequest) (*plume.Entry, error) {
	var out plume.Entry
	path := c.base + "/entries/" + url.PathEscape(entryID)
	if _, err := c.client.do(ctx, http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry deletes an entry.
func (c *CollectionClient) DeleteEntry(ctx context.Context, entryID string) error {
	path := c.base + "/entries/" + url.PathEscape(entryID)
	_, err := c.client.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// transition posts to one of the entry lifecycle endpoints. The server owns
// the resulting status.
func (c *CollectionClient) transition(ctx context.Context, entryID, action string) (*plume.Entry, error) {
	var out plume.Entry
	path := c.base + "/entries/" + url.PathEscape(entryID) + "/" + action
	if _, err := c.client.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublishEntry publishes an entry.
func (c *CollectionClient) PublishEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	return c.transition(ctx, entryID, "publish")
}

// UnpublishEntry reverts an entry to draft.
func (c *CollectionClient) UnpublishEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	return c.transition(ctx, entryID, "unpublish")
}

// ArchiveEntry archives an entry.
func (c *CollectionClient) ArchiveEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	return c.transition(ctx, entryID, "archive")
}

// RestoreEntry restores an archived entry.
func (c *CollectionClient) RestoreEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	return c.transition(ctx, entryID, "restore")
}

// DuplicateEntry creates a draft copy of an entry.
func (c *CollectionClient) DuplicateEntry(ctx context.Context, entryID string) (*plume.Entry, error) {
	return c.transition(ctx, entryID, "duplicate")
}

// ============================================================================
// Bulk operations
// ============================================================================

func (c *CollectionClient) bulk(ctx context.Context, action string, ids []string) (*plume.BulkResult, error) {
	var out plume.BulkResult
	body := map[string]any{"ids": ids}
	if _, err := c.client.do(ctx, http.MethodPost, c.base+"/bulk/"+action, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkPublish publishes many entries, reporting per-ID outcomes.
func (c *CollectionClient) BulkPublish(ctx context.Context, ids []string) (*plume.BulkResult, error) {
	return c.bulk(ctx, "publish", ids)
}

// BulkUnpublish unpublishes many entries, reporting per-ID outcomes.
func (c *CollectionClient) BulkUnpublish(ctx context.Context, ids []string) (*plume.BulkResult, error) {
	return c.bulk(ctx, "unpublish", ids)
}

// BulkDelete deletes many entries, reporting per-ID outcomes.
func (c *CollectionClient) BulkDelete(ctx context.Context, ids []string) (*plume.BulkResult, error) {
	return c.bulk(ctx, "delete", ids)
}

// ============================================================================
// Activity
// ============================================================================

// Activity returns the collection's recent activity feed.
func (c *CollectionClient) Activity(ctx context.Context, limit int) ([]plume.ActivityEvent, error) {
	path := c.base + "/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []plume.ActivityEvent
	if _, err := c.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
