package models

import "errors"

// ErrNotFound covers both "row does not exist" and "row belongs to another
// user": every lookup is filtered by owning user id, and the two cases must
// stay indistinguishable to callers.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateName is returned when a category name already exists for the
// same user.
var ErrDuplicateName = errors.New("name already exists")

// ErrDuplicateEmail is returned when registering an email that is already
// taken.
var ErrDuplicateEmail = errors.New("email already registered")
