package db

import "errors"

// IsImageMutable reports whether the image may be modified in this
// context. Admins may modify anything; otherwise only the owner may,
// and ownerless images are immutable.
func IsImageMutable(ctx Context, image Image) bool {
	if ctx.IsAdmin {
		return true
	}

	if image.Owner == "" || ctx.Owner == "" {
		return false
	}

	return image.Owner == ctx.Owner
}

// IsImageSharable reports whether the image may be shared onward in
// this context. When a membership is supplied it is consulted instead
// of looking one up; a nil supplied membership means not shared.
func (s *Store) IsImageSharable(ctx Context, image Image, membership ...*Member) bool {
	if ctx.Owner == "" {
		return false
	}

	if ctx.IsAdmin {
		return true
	}

	if ctx.Owner == image.Owner {
		return true
	}

	var member Member

	if len(membership) > 0 {
		if membership[0] == nil {
			return false
		}

		member = *membership[0]
	} else {
		found, err := s.FindMember(ctx, image.ID, ctx.Owner)
		if err != nil {
			return false
		}

		member = found
	}

	return member.CanShare
}

// IsImageVisible reports whether the image is visible in this context:
// to admins, for public or ownerless images, to the owner, and to
// tenants the image was shared with.
func (s *Store) IsImageVisible(ctx Context, image Image) bool {
	if ctx.IsAdmin {
		return true
	}

	if image.Owner == "" {
		return true
	}

	if image.IsPublic {
		return true
	}

	if ctx.Owner != "" {
		if ctx.Owner == image.Owner {
			return true
		}

		member, err := s.FindMember(ctx, image.ID, ctx.Owner)
		if err == nil {
			return !member.Deleted
		}

		if !errors.Is(err, ErrNotFound) {
			return false
		}
	}

	return false
}
