package dto

// GeographicReach counts distinct states and countries among participants.
type GeographicReach struct {
	States    int `json:"states"`
	Countries int `json:"countries"`
}

// PaymentStatusSplit partitions payments by presence of an approval code.
type PaymentStatusSplit struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// DashboardSummaryResponse is the cross-dataset overview for the landing
// dashboard.
type DashboardSummaryResponse struct {
	TotalParticipants     int                `json:"total_participants"`
	ActiveCourses         int                `json:"active_courses"`
	TotalRevenue          float64            `json:"total_revenue"`
	EnrollmentsThisMonth  int                `json:"enrollments_this_month"`
	GeographicReach       GeographicReach    `json:"geographic_reach"`
	LicensedProfessionals int                `json:"licensed_professionals"`
	PaymentStatus         PaymentStatusSplit `json:"payment_status"`
}
