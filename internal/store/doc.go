// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Every task operation is parameterized by the owning user's ID; the
// ownership predicate is part of the storage contract, not something
// callers bolt on afterwards.
package store
