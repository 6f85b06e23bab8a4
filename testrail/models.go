package testrail

// StatusID is a TestRail result status.
type StatusID int

// Built-in TestRail statuses ...
const (
	StatusPassed   StatusID = 1
	StatusBlocked  StatusID = 2
	StatusUntested StatusID = 3
	StatusRetest   StatusID = 4
	StatusFailed   StatusID = 5
)

func (s StatusID) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusBlocked:
		return "blocked"
	case StatusUntested:
		return "untested"
	case StatusRetest:
		return "retest"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Run ...
type Run struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	ProjectID int    `json:"project_id"`
	SuiteID   int    `json:"suite_id"`
}

// AddRunRequest ...
type AddRunRequest struct {
	SuiteID    int    `json:"suite_id"`
	Name       string `json:"name"`
	IncludeAll bool   `json:"include_all"`
	CaseIDs    []int  `json:"case_ids"`
}

// UpdateRunRequest ...
type UpdateRunRequest struct {
	IncludeAll bool  `json:"include_all"`
	CaseIDs    []int `json:"case_ids"`
}

// Result is one case outcome queued for submission.
type Result struct {
	CaseID   int      `json:"case_id"`
	StatusID StatusID `json:"status_id"`
	Comment  string   `json:"comment,omitempty"`
}

// AddResultsRequest ...
type AddResultsRequest struct {
	Results []Result `json:"results"`
}

// AddResultRequest ...
type AddResultRequest struct {
	StatusID StatusID `json:"status_id"`
	Comment  string   `json:"comment,omitempty"`
}
