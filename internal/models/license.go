package models

// License is a professional license row. DateUpdated is the raw date string
// from the store; currency against the 2-year rule is derived, never stored.
type License struct {
	ID            LicenseID     `db:"id" json:"id"`
	MemberNumber  ParticipantID `db:"member_number" json:"member_number"`
	LicenseNumber string        `db:"license_number" json:"license_number"`
	Profession    string        `db:"profession" json:"profession,omitempty"`
	StateProvince string        `db:"state_province" json:"state_province,omitempty"`
	Country       string        `db:"country" json:"country,omitempty"`
	DateUpdated   string        `db:"date_updated" json:"date_updated,omitempty"`
}

// EnrichedLicense is a license with participant context attached.
type EnrichedLicense struct {
	License
	ParticipantName string `json:"participant_name"`
	ClassesTaken    int    `json:"classes_taken"`
	IsCurrent       bool   `json:"is_current"`
}
