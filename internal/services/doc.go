// Package services implements the clients for the two remote collaborators of the viewer: the
// slide REST API ([SlideService]) and the static file store ([FileStore]).
//
// # Slide API
//
// [SlideService] implements [SlideProvider]:
//   - GET /slide returns every slide
//   - GET /slide/{id} returns one slide, 404 maps to [shared.ErrSlideNotFound]
//   - POST /slide uploads a multipart form with file-0..N parts and a title field
//
// Slide ids are opaque; numeric and string ids decode to the same [models.ID].
//
// # File Store
//
// Files are addressed as storage base URL + path, with no authentication or range requests.
// [FileStore] consults an optional [BlobCache] before the network and fills it after a download.
// Cache failures are logged and never fail a fetch.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrSlideNotFound] : slide ID not found
//   - [shared.ErrFileNotFound] : storage path not found
//   - [shared.ErrMissingArgument] : empty title, id or file list
//   - [shared.ErrInvalidInput] : upload that is neither image nor video
package services
