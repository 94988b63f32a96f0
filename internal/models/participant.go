package models

// ParticipantStatusActive is the status id the store uses for active members.
const ParticipantStatusActive = 1

// Participant is a member record as stored remotely. Name and address parts
// may be empty; ClassesTaken is the lifetime enrollment count maintained by
// the store.
type Participant struct {
	MemberNumber  ParticipantID `db:"member_number" json:"member_number"`
	Prefix        string        `db:"prefix" json:"prefix,omitempty"`
	FirstName     string        `db:"first_name" json:"first_name"`
	MiddleName    string        `db:"middle_name" json:"middle_name,omitempty"`
	LastName      string        `db:"last_name" json:"last_name"`
	Suffix        string        `db:"suffix" json:"suffix,omitempty"`
	StatusID      int           `db:"status_id" json:"status_id"`
	Company       string        `db:"company" json:"company,omitempty"`
	Email         string        `db:"email" json:"email,omitempty"`
	City          string        `db:"city" json:"city,omitempty"`
	StateProvince string        `db:"state_province" json:"state_province,omitempty"`
	Country       string        `db:"country" json:"country,omitempty"`
	PostalCode    string        `db:"postal_code" json:"postal_code,omitempty"`
	ClassesTaken  int           `db:"classes_taken" json:"classes_taken"`
}

// Active reports whether the participant carries the active status flag.
func (p Participant) Active() bool {
	return p.StatusID == ParticipantStatusActive
}
