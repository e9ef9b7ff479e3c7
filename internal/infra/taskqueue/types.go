package taskqueue

import (
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
)

type TriggerTask struct {
	ScheduleAt time.Time `json:"-"`

	Trigger domain.Trigger `json:"trigger"`
}

// TaskID names the queued task after the trigger so replanning can delete it.
func (t *TriggerTask) TaskID() string {
	return t.Trigger.ID
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
