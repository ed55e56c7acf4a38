package repository

import "context"

// Record is a raw document as stored in the document store.
type Record map[string]interface{}

// Direction controls the sort order of ListOrdered.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Collection identifies a document collection, optionally scoped to an owner.
// Use the Users and Jobs constructors; a zero Collection is invalid.
type Collection struct {
	table string
	scope map[string]interface{}
}

// Users is the top-level user collection, keyed by the identity provider's uid.
func Users() Collection {
	return Collection{table: "user"}
}

// Jobs is the job sub-collection under a single user. Every operation through
// the returned collection is restricted to records owned by ownerUID.
func Jobs(ownerUID string) Collection {
	return Collection{
		table: "job",
		scope: map[string]interface{}{"owner_uid": ownerUID},
	}
}

// Path returns the hierarchical path of the collection, for logs and metrics.
func (c Collection) Path() string {
	if owner, ok := c.scope["owner_uid"].(string); ok {
		return "users/" + owner + "/jobs"
	}
	return "users"
}

// Store is the adapter over the document store. All operations are single
// attempt: failures surface as database.ErrQuery or database.ErrConnection,
// and a missing (or out-of-scope) record as database.ErrNotFound.
type Store interface {
	// ListOrdered returns all records in the collection sorted by orderField.
	ListOrdered(ctx context.Context, col Collection, orderField string, dir Direction) ([]Record, error)

	// Add inserts a record with a store-assigned id and returns that id.
	Add(ctx context.Context, col Collection, record Record) (string, error)

	// Put upserts a record under the given key. A second Put with the same id
	// overwrites rather than duplicates.
	Put(ctx context.Context, col Collection, id string, record Record) error

	// GetByID fetches one record by id within the collection's scope.
	GetByID(ctx context.Context, col Collection, id string) (Record, error)

	// Update merges partial into the record with the given id. Fields absent
	// from partial are left untouched.
	Update(ctx context.Context, col Collection, id string, partial Record) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, col Collection, id string) error
}
