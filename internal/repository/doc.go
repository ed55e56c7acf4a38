// Package repository implements the resource store adapter for the time
// tracker API.
//
// The adapter exposes a small set of document operations (ListOrdered, Add,
// Put, GetByID, Update, Delete) scoped by Collection values. Two collections
// exist: the top-level users collection, and the per-user job sub-collection
// addressed as users/{ownerUid}/jobs. Scoping is enforced inside the adapter:
// a record outside the collection's scope is indistinguishable from a missing
// record.
//
// On top of the adapter, UserRepository and JobRepository map store records to
// model structs.
//
// # Query Patterns
//
// Common query patterns used:
//
//   - Parameterized queries with $variable syntax for security
//   - type::thing() / type::table() for safe ID and table handling
//   - RETURN BEFORE/AFTER to detect whether a mutation touched a record
//
// # Example Usage
//
//	store := repository.NewSurrealStore(db)
//	jobs := repository.NewJobRepository(store)
//	list, err := jobs.List(ctx, callerUID)
//	if err != nil {
//	    return err
//	}
package repository
