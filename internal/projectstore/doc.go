// Package projectstore persists editor projects in SQLite.
//
// The Store manages the database connection, schema migrations, and a file
// lock that keeps concurrent montage processes from writing the same
// database. Tracks, effects, and recordings are stored as JSON documents
// alongside queryable project metadata, so listing projects never parses
// timeline payloads.
package projectstore
