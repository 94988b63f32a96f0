package models

// CourseStatusActive marks a course as currently offered.
const CourseStatusActive = 1

// Course is a catalogue entry. Abroad uses the store's legacy convention of
// -1 for yes and 0 for no.
type Course struct {
	ID            CourseID `db:"id" json:"id"`
	Name          string   `db:"name" json:"name"`
	ProgramTypeID int      `db:"program_type_id" json:"program_type_id"`
	Status        int      `db:"status" json:"status"`
	Abroad        int      `db:"abroad" json:"abroad"`
}

// IsAbroad resolves the legacy abroad flag.
func (c Course) IsAbroad() bool {
	return c.Abroad == -1
}

// CourseOffering is a scheduled instance of a course. Dates arrive from the
// store as formatted strings and are parsed only where needed.
type CourseOffering struct {
	ID         OfferingID `db:"id" json:"id"`
	CourseID   CourseID   `db:"course_id" json:"course_id"`
	Location   string     `db:"location" json:"location,omitempty"`
	BeginDate  string     `db:"begin_date" json:"begin_date,omitempty"`
	EndDate    string     `db:"end_date" json:"end_date,omitempty"`
	Instructor string     `db:"instructor" json:"instructor,omitempty"`
	HomeStudy  int        `db:"home_study" json:"home_study"`
}
