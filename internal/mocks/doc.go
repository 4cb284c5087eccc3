// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes function fields for per-test
// overrides and falls back to a simple in-memory implementation.
package mocks
