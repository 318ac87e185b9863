// Package models defines domain entities and persistence interfaces for slidex.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs mirroring the slide API
//   - [Slide] : A titled, ordered collection of media files
//   - [File] : A storage path and its declared MIME type
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [CachedSlide] : A slide fetched from the API and cached locally
//   - [CachedFile] : A record of one file body held in the blob cache
//
// Persistent entities implement the [Model] interface providing ID generation, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
