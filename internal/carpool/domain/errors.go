package domain

import "errors"

var (
	// ErrNotRegistered: the user has no record yet (set-home comes first)
	ErrNotRegistered = errors.New("user is not registered")

	// ErrNoSchedule: the user has no work schedule rows
	ErrNoSchedule = errors.New("user has no work schedule")

	// ErrAddressNotFound: geocoding returned no usable coordinates
	ErrAddressNotFound = errors.New("address could not be resolved")

	// ErrLookupUnavailable: the geocoding collaborator itself failed
	ErrLookupUnavailable = errors.New("geocoding lookup unavailable")

	// ErrOfficeNotFound: no office with that name
	ErrOfficeNotFound = errors.New("office not found")

	// ErrDuplicateOffice: an office with that name already exists
	ErrDuplicateOffice = errors.New("office with this name already exists")

	// ErrGroupNotFound: no carpool group with that name
	ErrGroupNotFound = errors.New("carpool group not found")

	// ErrGroupFull: the group is at max_size
	ErrGroupFull = errors.New("carpool group is full")

	// ErrAlreadyMember: a (user, group) membership row already exists
	ErrAlreadyMember = errors.New("already a member of this group")

	// ErrNotAMember: organizer flag requires an existing membership
	ErrNotAMember = errors.New("not a member of this group")

	// ErrNotInAnyGroup: absence/message commands require at least one membership
	ErrNotInAnyGroup = errors.New("not a member of any carpool group")

	// ErrInvalidTimeFormat: start/end must parse as 24-hour HH:mm
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:mm")

	// ErrInvalidDays: days must be a non-empty comma-separated list of 1..7
	ErrInvalidDays = errors.New("invalid days of week")

	// ErrInvalidCapacity: group max size must be a positive integer
	ErrInvalidCapacity = errors.New("invalid group capacity")

	// ErrScheduleNotFound: no schedule with that id owned by that user
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidCoordinates: latitude/longitude out of range
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
