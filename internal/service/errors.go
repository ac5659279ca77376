package service

import "errors"

var (
	// ErrOutsideServiceArea is returned when a pickup location is beyond the
	// serviceable radius. Not an internal failure: the caller decides how to
	// present it.
	ErrOutsideServiceArea = errors.New("location is outside the service area")

	// ErrInvalidPickupID is returned when a pickup ID is empty.
	ErrInvalidPickupID = errors.New("invalid pickup id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidLocation is returned when coordinates are out of range.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrMissingWasteImage is returned when a pickup request has no photo.
	ErrMissingWasteImage = errors.New("waste image is required")

	// ErrImageTooLarge is returned when the waste photo exceeds the limit.
	ErrImageTooLarge = errors.New("image too large, maximum size is 2MB")

	// ErrInvalidPaymentMethod is returned when the payment method is not one
	// of COD, UPI, or Invoice.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidStatusTransition is returned when a status update does not
	// follow the Pending -> Approved -> Assigned -> Completed chain.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrPickupNotApproved is returned when assigning a driver to a pickup
	// that is not in the Approved state.
	ErrPickupNotApproved = errors.New("driver can only be assigned to approved pickups")

	// ErrDriverNotAvailable is returned when the driver is busy, offline, or
	// currently locked by another assignment.
	ErrDriverNotAvailable = errors.New("driver is not available")

	// ErrPickupNotCompleted is returned when rating a pickup that has not
	// been completed.
	ErrPickupNotCompleted = errors.New("only completed pickups can be rated")

	// ErrAlreadyRated is returned when a pickup already has a rating.
	ErrAlreadyRated = errors.New("pickup has already been rated")

	// ErrInvalidRatingStars is returned when stars are outside 1 to 5.
	ErrInvalidRatingStars = errors.New("rating must be between 1 and 5 stars")

	// ErrMissingRequiredField is returned when a required field is empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
