package errors

import "errors"

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not signed in")
	ErrNotAdmin         = errors.New("administrator role required")
	ErrEmptyToken       = errors.New("login response carried no token")
)

// Meeting errors
var (
	ErrNotOrganizer      = errors.New("only the organizer can do this")
	ErrNotAssignee       = errors.New("only the assignee can submit this action item")
	ErrInviteeNotFound   = errors.New("invitee not found")
	ErrActionItemMissing = errors.New("action item not found")
	ErrNoAttachments     = errors.New("no files to upload")
	ErrEmptyNote         = errors.New("note content is required")
)

// List view errors
var (
	ErrUnknownSection = errors.New("unknown meeting section")
	ErrNoNextPage     = errors.New("no next page")
	ErrNoPreviousPage = errors.New("already on the first page")
)
