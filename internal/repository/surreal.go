package repository

import (
	"context"
	"fmt"

	"github.com/scott-daily/time-tracker-api/internal/database"
)

// SurrealStore implements Store on top of a SurrealDB connection. Collections
// map to tables; the job sub-collection scope becomes an owner_uid condition
// on every query, so a caller can never see or touch another owner's records.
type SurrealStore struct {
	db database.Database
}

// NewSurrealStore creates a new store adapter over db.
func NewSurrealStore(db database.Database) *SurrealStore {
	return &SurrealStore{db: db}
}

// ListOrdered returns all records in the collection sorted by orderField.
func (s *SurrealStore) ListOrdered(ctx context.Context, col Collection, orderField string, dir Direction) ([]Record, error) {
	if !isFieldName(orderField) {
		return nil, fmt.Errorf("%w: invalid order field %q", database.ErrQuery, orderField)
	}

	query := "SELECT * FROM type::table($tb)"
	vars := map[string]interface{}{"tb": col.table}
	query += scopeClause(col, vars)
	query += fmt.Sprintf(" ORDER BY %s %s", orderField, dir)

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	rows, ok := extractRows(result)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result format", database.ErrQuery)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if data, ok := row.(map[string]interface{}); ok {
			records = append(records, Record(data))
		}
	}
	return records, nil
}

// Add inserts a record with a store-assigned id and returns that id. The
// collection's scope fields are written into the record so the ownership
// invariant holds at write time.
func (s *SurrealStore) Add(ctx context.Context, col Collection, record Record) (string, error) {
	content := make(map[string]interface{}, len(record)+len(col.scope))
	for k, v := range record {
		content[k] = v
	}
	for k, v := range col.scope {
		content[k] = v
	}

	query := "CREATE type::table($tb) CONTENT $data"
	vars := map[string]interface{}{"tb": col.table, "data": content}

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return "", err
	}

	rows, ok := extractRows(result)
	if !ok {
		return "", fmt.Errorf("%w: unexpected create result format", database.ErrQuery)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("%w: create returned no record", database.ErrQuery)
	}
	data, ok := rows[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("%w: unexpected create result format", database.ErrQuery)
	}
	return recordKey(data["id"]), nil
}

// Put upserts a record under the given key.
func (s *SurrealStore) Put(ctx context.Context, col Collection, id string, record Record) error {
	content := make(map[string]interface{}, len(record)+len(col.scope))
	for k, v := range record {
		content[k] = v
	}
	for k, v := range col.scope {
		content[k] = v
	}

	query := "UPSERT type::thing($tb, $id) CONTENT $data"
	vars := map[string]interface{}{"tb": col.table, "id": id, "data": content}

	return s.db.Execute(ctx, query, vars)
}

// GetByID fetches one record by id within the collection's scope.
func (s *SurrealStore) GetByID(ctx context.Context, col Collection, id string) (Record, error) {
	query := "SELECT * FROM type::thing($tb, $id)"
	vars := map[string]interface{}{"tb": col.table, "id": id}
	query += scopeClause(col, vars)

	result, err := s.db.QueryOne(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result format", database.ErrQuery)
	}
	return Record(data), nil
}

// Update merges partial into the record with the given id. Returns
// database.ErrNotFound when no record in scope matched.
func (s *SurrealStore) Update(ctx context.Context, col Collection, id string, partial Record) error {
	query := "UPDATE type::thing($tb, $id) MERGE $data"
	vars := map[string]interface{}{"tb": col.table, "id": id, "data": map[string]interface{}(partial)}
	query += scopeClause(col, vars)
	query += " RETURN AFTER"

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	rows, ok := extractRows(result)
	if !ok {
		return fmt.Errorf("%w: unexpected result format", database.ErrQuery)
	}
	if len(rows) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes the record with the given id. Returns database.ErrNotFound
// when no record in scope matched, so a second delete of the same id fails.
func (s *SurrealStore) Delete(ctx context.Context, col Collection, id string) error {
	query := "DELETE type::thing($tb, $id)"
	vars := map[string]interface{}{"tb": col.table, "id": id}
	query += scopeClause(col, vars)
	query += " RETURN BEFORE"

	result, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	rows, ok := extractRows(result)
	if !ok {
		return fmt.Errorf("%w: unexpected result format", database.ErrQuery)
	}
	if len(rows) == 0 {
		return database.ErrNotFound
	}
	return nil
}

// scopeClause appends the collection's scope as a WHERE clause and merges the
// scope values into vars. Scope keys are adapter-defined constants, never
// request input.
func scopeClause(col Collection, vars map[string]interface{}) string {
	clause := ""
	for k, v := range col.scope {
		if clause == "" {
			clause = fmt.Sprintf(" WHERE %s = $%s", k, k)
		} else {
			clause += fmt.Sprintf(" AND %s = $%s", k, k)
		}
		vars[k] = v
	}
	return clause
}

// isFieldName reports whether s is a plain identifier safe to interpolate
// into an ORDER BY clause.
func isFieldName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c != '_' && (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
