package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"riverwood/config"
	"riverwood/models"
	"riverwood/services/conversation"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitTurnWorker runs the asynq worker consuming the turn queue in the
// background. Concurrency comes from config; the reference deployment runs
// with 1 so turn processing is fully serial, which keeps same-subject
// ordering trivially correct.
func InitTurnWorker(dispatcher *conversation.Dispatcher, logger *zap.Logger) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: config.AppConfig.QueueConcurrency,
			Queues: map[string]int{
				TurnQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProcessTurn, handleTurnTask(dispatcher, logger))

	// Start async worker with retry logic.
	go func() {
		log.Println("[TurnWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TurnWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TurnWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleTurnTask dispatches one queued turn. Errors bubble up to asynq, which
// retries with backoff up to the task's MaxRetry; on the final failure the
// subject gets a generic apology and a fresh main menu before the task is
// archived.
func handleTurnTask(dispatcher *conversation.Dispatcher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var turn models.TurnPayload
		if err := json.Unmarshal(task.Payload(), &turn); err != nil {
			logger.Error("invalid turn payload, dropping task", zap.Error(err))
			return asynq.SkipRetry
		}

		err := dispatcher.Dispatch(ctx, turn)
		if err == nil {
			return nil
		}

		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		logger.Warn("turn processing failed",
			zap.String("subject", turn.SubjectID),
			zap.Int("retried", retried),
			zap.Int("max_retry", maxRetry),
			zap.Error(err))

		if retried >= maxRetry {
			// Last attempt: the task is about to be archived. Leave the
			// subject in a usable state instead of silence.
			dispatcher.ResetWithApology(ctx, turn.SubjectID)
		}
		return err
	}
}
