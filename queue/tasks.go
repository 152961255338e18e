package queue

import (
	"encoding/json"
	"time"

	"riverwood/config"
	"riverwood/models"

	"github.com/hibiken/asynq"
)

const (
	// TypeProcessTurn is the task type for one inbound conversation turn.
	TypeProcessTurn = "turn:process"

	// TurnQueue is the asynq queue all turn tasks go through.
	TurnQueue = "turns"

	// completedTurnRetention keeps finished turn tasks around for dashboards
	// before asynq prunes them.
	completedTurnRetention = 24 * time.Hour
)

// QueueRedisOpt returns the Redis connection options for the turn queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewTurnTask wraps a turn in an asynq task. Retry and retention policy ride
// along as task options.
func NewTurnTask(p models.TurnPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeProcessTurn, b)
	opts := []asynq.Option{
		asynq.Queue(TurnQueue),
		asynq.MaxRetry(config.AppConfig.QueueMaxRetry),
		asynq.Retention(completedTurnRetention),
	}
	return task, opts, nil
}
