// Package entity is a small read/write resource built on the httpkit
// helpers: every route answers in HTML, JSON or CSV depending on the path
// suffix or Accept header, validates conditional GETs with ETags and can be
// served cross-origin.
//
// Entities live either in memory (NewMemoryStore) or in PostgreSQL
// (NewPostgresStore, schema in Migrations).
package entity
