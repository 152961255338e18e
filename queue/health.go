package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
)

// Health is a read-only snapshot of the turn queue, for dashboards. It plays
// no part in correctness.
type Health struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Scheduled int `json:"scheduled"`
	Retry     int `json:"retry"`
	Archived  int `json:"archived"`
	Completed int `json:"completed"`
}

// GetHealth reads queue counters through the asynq inspector.
func GetHealth() (*Health, error) {
	inspector := asynq.NewInspector(QueueRedisOpt())
	defer inspector.Close()

	info, err := inspector.GetQueueInfo(TurnQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect turn queue: %w", err)
	}
	return &Health{
		Pending:   info.Pending,
		Active:    info.Active,
		Scheduled: info.Scheduled,
		Retry:     info.Retry,
		Archived:  info.Archived,
		Completed: info.Completed,
	}, nil
}
