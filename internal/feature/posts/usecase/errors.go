package usecase

import "blog_backend/internal/shared/apperr"

var (
	// ErrPostNotFound covers absent, soft-deleted and hidden drafts alike.
	ErrPostNotFound = apperr.NotFound("Post not found")

	// ErrSlugTaken is returned when a title derives a slug another post already uses.
	ErrSlugTaken = apperr.Conflict("Slug already exists")

	// ErrStatusFilterRequiresAuth is returned when an anonymous caller filters by status.
	ErrStatusFilterRequiresAuth = apperr.Unauthenticated("Authentication required to filter by status")

	// ErrInvalidStatus is returned for a status filter outside draft|published.
	ErrInvalidStatus = apperr.Validation("Status must be either draft or published",
		apperr.FieldError{Field: "status", Message: "Status must be either draft or published"})

	// ErrUnauthenticated is returned when a mutation reaches the usecase without an identity.
	ErrUnauthenticated = apperr.Unauthenticated("Not authorized to access this route")
)
