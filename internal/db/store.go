package db

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trjordan/glance/internal/util"
)

// ErrNotFound indicates the requested image, tag, or member does not
// exist in the store.
var ErrNotFound = errors.New("not found")

// ErrInvalidSortKey indicates a ListImages call used an unsupported
// sort key.
var ErrInvalidSortKey = errors.New("invalid sort key")

// StatusQueued is the initial status assigned to new images.
const StatusQueued = "queued"

// defaultImageName is assigned to images created without a name.
const defaultImageName = "image-name"

// Context carries the identity an operation runs under.
// An empty Owner means the request has no tenant.
type Context struct {
	Owner   string
	IsAdmin bool
}

// Image is a stored image record. Tags are kept separately and only
// populated on reads.
type Image struct {
	ID         string
	Name       string
	Owner      string
	Location   string
	Status     string
	IsPublic   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tags       []string
	Properties map[string]string
}

// Member records an image being shared with a tenant.
type Member struct {
	ImageID  string
	Member   string
	CanShare bool
	Deleted  bool
}

// ListOptions controls sorting and pagination of ListImages.
// Zero values mean: sort by created_at descending, no marker, no limit.
type ListOptions struct {
	SortKey string
	SortDir string
	Marker  string
	Limit   int
}

// Store is the in-memory image database.
type Store struct {
	mu      sync.RWMutex
	images  map[string]*Image
	members map[string][]Member
	tags    map[string][]string
}

// NewStore creates an empty image store.
func NewStore() *Store {
	return &Store{
		images:  map[string]*Image{},
		members: map[string][]Member{},
		tags:    map[string][]string{},
	}
}

// CreateImage stores a new image, filling in an ID, timestamps, and
// defaults for unset fields. Tags supplied on the input are stored
// alongside the image. It returns the stored record.
func (s *Store) CreateImage(values Image) Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	image := values
	if image.ID == "" {
		image.ID = util.RandID()
	}

	if image.Name == "" {
		image.Name = defaultImageName
	}

	if image.Status == "" {
		image.Status = StatusQueued
	}

	image.CreatedAt = now
	image.UpdatedAt = now

	s.tags[image.ID] = slices.Clone(image.Tags)
	image.Tags = nil
	s.images[image.ID] = &image

	logrus.WithFields(logrus.Fields{
		"image_id": image.ID,
		"name":     image.Name,
	}).Debug("Created image")

	return s.snapshot(&image)
}

// GetImage returns the image with the given ID, tags included.
func (s *Store) GetImage(_ Context, imageID string) (Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	image, exists := s.images[imageID]
	if !exists {
		logrus.WithField("image_id", imageID).Debug("Could not find image")

		return Image{}, fmt.Errorf("%w: image %q", ErrNotFound, imageID)
	}

	return s.snapshot(image), nil
}

// ListImages returns images sorted and paginated per opts.
// It fails with ErrInvalidSortKey for an unsupported sort key and with
// ErrNotFound when the marker image is not present.
func (s *Store) ListImages(_ Context, opts ListOptions) ([]Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sortKey := opts.SortKey
	if sortKey == "" {
		sortKey = "created_at"
	}

	compare, err := comparatorFor(sortKey)
	if err != nil {
		return nil, err
	}

	images := make([]*Image, 0, len(s.images))
	for _, image := range s.images {
		images = append(images, image)
	}

	descending := opts.SortDir == "" || strings.EqualFold(opts.SortDir, "desc")

	slices.SortStableFunc(images, func(a, b *Image) int {
		if descending {
			return compare(b, a)
		}

		return compare(a, b)
	})

	start := 0

	if opts.Marker != "" {
		index := slices.IndexFunc(images, func(image *Image) bool {
			return image.ID == opts.Marker
		})
		if index < 0 {
			return nil, fmt.Errorf("%w: marker %q", ErrNotFound, opts.Marker)
		}

		start = index + 1
	}

	end := len(images)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}

	result := make([]Image, 0, end-start)
	for _, image := range images[start:end] {
		result = append(result, s.snapshot(image))
	}

	logrus.WithField("count", len(result)).Debug("Listing images")

	return result, nil
}

// UpdateImage applies the non-zero fields of values to an existing
// image and bumps its update timestamp. Visibility is fixed at
// creation time.
func (s *Store) UpdateImage(_ Context, imageID string, values Image) (Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image, exists := s.images[imageID]
	if !exists {
		return Image{}, fmt.Errorf("%w: image %q", ErrNotFound, imageID)
	}

	if values.Name != "" {
		image.Name = values.Name
	}

	if values.Owner != "" {
		image.Owner = values.Owner
	}

	if values.Location != "" {
		image.Location = values.Location
	}

	if values.Status != "" {
		image.Status = values.Status
	}

	if values.Properties != nil {
		image.Properties = values.Properties
	}

	image.UpdatedAt = time.Now().UTC()

	logrus.WithField("image_id", imageID).Debug("Updated image")

	return s.snapshot(image), nil
}

// CreateMember records an image share for a tenant.
func (s *Store) CreateMember(values Member) Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := Member{
		ImageID:  values.ImageID,
		Member:   values.Member,
		CanShare: values.CanShare,
	}
	s.members[values.ImageID] = append(s.members[values.ImageID], member)

	return member
}

// FindMember returns the membership of a tenant on an image.
func (s *Store) FindMember(ctx Context, imageID, tenantID string) (Member, error) {
	if _, err := s.GetImage(ctx, imageID); err != nil {
		return Member{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members[imageID] {
		if member.Member == tenantID {
			return member, nil
		}
	}

	return Member{}, fmt.Errorf("%w: member %q on image %q", ErrNotFound, tenantID, imageID)
}

// comparatorFor maps a sort key to an image comparator.
func comparatorFor(sortKey string) (func(a, b *Image) int, error) {
	switch sortKey {
	case "created_at":
		return func(a, b *Image) int { return a.CreatedAt.Compare(b.CreatedAt) }, nil
	case "updated_at":
		return func(a, b *Image) int { return a.UpdatedAt.Compare(b.UpdatedAt) }, nil
	case "id":
		return func(a, b *Image) int { return strings.Compare(a.ID, b.ID) }, nil
	case "name":
		return func(a, b *Image) int { return strings.Compare(a.Name, b.Name) }, nil
	case "status":
		return func(a, b *Image) int { return strings.Compare(a.Status, b.Status) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sortKey)
	}
}

// snapshot copies an image record with its tags filled in.
// Callers must hold at least a read lock.
func (s *Store) snapshot(image *Image) Image {
	copied := *image
	copied.Tags = slices.Clone(s.tags[image.ID])

	if image.Properties != nil {
		copied.Properties = make(map[string]string, len(image.Properties))
		for key, value := range image.Properties {
			copied.Properties[key] = value
		}
	}

	return copied
}
