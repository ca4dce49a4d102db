package analyticsapimodels

type ProjectHours struct {
	ProjectID   *string `json:"project_id"`
	ProjectName string  `json:"project_name"`
	TotalHours  float64 `json:"total_hours"`
}

type TimesheetSummary struct {
	TotalLogs    int            `json:"total_logs"`
	TotalHours   float64        `json:"total_hours"`
	StatusCounts map[string]int `json:"status_counts"`
	ByProject    []ProjectHours `json:"by_project"`
}
