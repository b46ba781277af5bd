package db

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// Tags returns all tags on an image.
func (s *Store) Tags(ctx Context, imageID string) ([]string, error) {
	if _, err := s.GetImage(ctx, imageID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tags[imageID]), nil
}

// GetTag returns the tag value if it is present on the image.
func (s *Store) GetTag(ctx Context, imageID, value string) (string, error) {
	tags, err := s.Tags(ctx, imageID)
	if err != nil {
		return "", err
	}

	if !slices.Contains(tags, value) {
		return "", fmt.Errorf("%w: tag %q on image %q", ErrNotFound, value, imageID)
	}

	return value, nil
}

// CreateTag appends a tag to an image.
func (s *Store) CreateTag(ctx Context, imageID, value string) error {
	if _, err := s.GetImage(ctx, imageID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tags[imageID] = append(s.tags[imageID], value)

	logrus.WithFields(logrus.Fields{
		"image_id": imageID,
		"tag":      value,
	}).Debug("Created image tag")

	return nil
}

// DeleteTag removes a tag from an image, failing with ErrNotFound when
// the tag is not present.
func (s *Store) DeleteTag(ctx Context, imageID, value string) error {
	if _, err := s.GetImage(ctx, imageID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.Index(s.tags[imageID], value)
	if index < 0 {
		return fmt.Errorf("%w: tag %q on image %q", ErrNotFound, value, imageID)
	}

	s.tags[imageID] = slices.Delete(s.tags[imageID], index, index+1)

	logrus.WithFields(logrus.Fields{
		"image_id": imageID,
		"tag":      value,
	}).Debug("Deleted image tag")

	return nil
}

// SetTags replaces all tags on an image.
func (s *Store) SetTags(ctx Context, imageID string, values []string) error {
	if _, err := s.GetImage(ctx, imageID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tags[imageID] = slices.Clone(values)

	return nil
}
