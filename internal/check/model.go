package check

// Timeout bounds for a single probe, in seconds.
const (
	MinTimeoutSeconds = 1
	MaxTimeoutSeconds = 5
)

// Check represents a registered uptime probe owned by a user.
type Check struct {
	ID             string `json:"id"`
	UserPhone      string `json:"userPhone"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}
