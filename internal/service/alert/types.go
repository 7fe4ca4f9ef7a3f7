package alert

import "time"

type ResultItem struct {
	ItemID       string    `json:"itemId"`
	UserID       string    `json:"userId"`
	TaskID       string    `json:"taskId"`
	Threshold    int       `json:"threshold"`
	DaysLeft     int       `json:"daysLeft"`
	Status       string    `json:"status"`
	Urgency      string    `json:"urgency"`
	RelevantDate time.Time `json:"relevantDate"`
	Sent         bool      `json:"sent"`
	Skipped      bool      `json:"skipped"`
	SkipReason   string    `json:"skipReason,omitempty"`
	Error        string    `json:"error,omitempty"`
}

type Response struct {
	RunID          string       `json:"runId"`
	WindowStart    time.Time    `json:"windowStart"`
	WindowEnd      time.Time    `json:"windowEnd"`
	EvaluatedCount int          `json:"evaluatedCount"`
	SentCount      int          `json:"sentCount"`
	SkippedCount   int          `json:"skippedCount"`
	FailedCount    int          `json:"failedCount"`
	InvalidDates   int          `json:"invalidDates"`
	Results        []ResultItem `json:"results"`
}
