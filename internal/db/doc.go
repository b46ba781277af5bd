// Package db provides the simple in-memory image store backing the
// Glance API.
// It holds images, their tags, and their membership records, and
// implements the access policy used to decide whether an image is
// visible, mutable, or sharable for a given request context.
//
// Key components:
//   - Store: Concurrent-safe maps of images, members, and tags.
//   - ListImages: Sorted, marker-paginated image listing.
//   - IsImageVisible / IsImageMutable / IsImageSharable: Access policy.
//   - RegisterFlags: Late registration hook for database flags.
//
// The package registers its own configuration flags through the
// flagset module mechanism, so the sql-connection flag honors the
// original command line even when the store is initialized after
// startup parsing.
package db
