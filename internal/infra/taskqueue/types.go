package taskqueue

import "time"

// AlertTask is the payload delivered to the notification sender.
type AlertTask struct {
	ScheduleAt time.Time `json:"-"`

	TaskID       string    `json:"task_id"`
	UserID       string    `json:"user_id"`
	ItemID       string    `json:"item_id"`
	ItemName     string    `json:"item_name"`
	Status       string    `json:"status"`
	Urgency      string    `json:"urgency"`
	DaysLeft     int       `json:"days_left"`
	Threshold    int       `json:"threshold"`
	RelevantDate time.Time `json:"relevant_date"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
