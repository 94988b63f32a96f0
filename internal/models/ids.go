package models

// Typed identifiers keep join indexes from mixing up key spaces at compile
// time. The backing store uses a mix of surrogate integer ids and the
// alphanumeric member number.
type (
	// ParticipantID is the participant's unique member number.
	ParticipantID string
	// CourseID identifies a course catalogue entry.
	CourseID int64
	// OfferingID identifies a scheduled instance of a course.
	OfferingID int64
	// EnrollmentID identifies a participant-offering link row.
	EnrollmentID int64
	// PaymentID identifies a payment row.
	PaymentID int64
	// LicenseID identifies a professional license row.
	LicenseID int64
)
