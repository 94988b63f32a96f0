package models

// Payment is a payment row as stored remotely. Amount is a formatted
// currency string ("$86.25"); Date is the raw date string.
type Payment struct {
	ID           PaymentID    `db:"id" json:"id"`
	EnrollmentID EnrollmentID `db:"enrollment_id" json:"enrollment_id"`
	Date         string       `db:"date" json:"date,omitempty"`
	Description  string       `db:"description" json:"description,omitempty"`
	Method       string       `db:"method" json:"method,omitempty"`
	CardNumber   string       `db:"card_number" json:"-"`
	Amount       string       `db:"amount" json:"amount"`
	ApprovalCode string       `db:"approval_code" json:"approval_code,omitempty"`
}

// Approved reports whether the payment carries an approval code.
func (p Payment) Approved() bool {
	return p.ApprovalCode != ""
}

// EnrichedPayment is a payment with its reference chain resolved.
type EnrichedPayment struct {
	Payment
	ParticipantName  string        `json:"participant_name"`
	MemberNumber     ParticipantID `json:"member_number"`
	CourseName       string        `json:"course_name"`
	ProgramTypeID    int           `json:"program_type_id"`
	EnrollmentStatus string        `json:"enrollment_status"`
	MaskedCard       string        `json:"masked_card,omitempty"`
}
