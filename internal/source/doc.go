// Package source provides the byte origins a parser instance reads from,
// either an in-memory buffer or a file path, together with the scoped stream
// lifecycle around a resolution run and the file-metadata collaborator for
// file-backed sources.
package source
