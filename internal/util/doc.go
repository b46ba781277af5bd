// Package util provides utility functions for Glance operations.
// It currently covers random identifier generation for stored images.
//
// Key components:
//   - RandID: Generates random 32-character hexadecimal image IDs.
//
// Usage example:
//
//	imageID := util.RandID()
//
// The package uses crypto/rand for secure random generation.
package util
