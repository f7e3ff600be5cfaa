// Package catalogue lists and loads articulation-set files from the
// configured library directory.
//
// Search is a case-insensitive substring match over file names with a result
// cap; I/O failures (a missing or unreadable library) degrade to an empty
// result set so callers treat "no catalogue" the same as "no match". Load is
// scoped to the library root and rejects any path resolving outside it.
package catalogue
