package models

// Enrollment links a participant to a course offering. Status is free text
// with observed casing and typo variants; RegisteredAt is the raw timestamp
// string as transmitted by the store.
type Enrollment struct {
	ID           EnrollmentID  `db:"id" json:"id"`
	MemberNumber ParticipantID `db:"member_number" json:"member_number"`
	OfferingID   OfferingID    `db:"offering_id" json:"offering_id"`
	Status       string        `db:"status" json:"status"`
	TotalDue     string        `db:"total_due" json:"total_due,omitempty"`
	RegisteredAt string        `db:"registered_at" json:"registered_at,omitempty"`
}
