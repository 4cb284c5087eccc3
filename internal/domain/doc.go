// Package domain defines the core business entities of the tasklist
// application (users and their tasks) along with entity-level validation
// rules. It has no dependencies on storage, transport, or framework code.
package domain
