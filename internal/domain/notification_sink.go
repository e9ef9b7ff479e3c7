package domain

import "context"

//go:generate mockgen -source=notification_sink.go -destination=notification_sink_mock.go -package=domain

type NotificationSink interface {
	Post(ctx context.Context, notificationID string, payload Payload) error
	Cancel(ctx context.Context, notificationID string) error
	SetInterruptionFilter(ctx context.Context, mode InterruptionFilter) error
	HasPermission(ctx context.Context, permission Permission) (bool, error)
}
