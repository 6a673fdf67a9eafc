package httpapi

type ScrapeStatus struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastCompany string `json:"last_company"`
	LastJobs    int    `json:"last_jobs"`
	Running     bool   `json:"running"`
}
