package queue

import (
	"context"
	"time"

	"riverwood/models"
	"riverwood/services/conversation"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TurnProcessor accepts one wrapped turn for processing. The queued
// implementation defers the work; the direct one runs it in the caller's
// context.
type TurnProcessor interface {
	Process(ctx context.Context, turn models.TurnPayload) error
}

// QueuedProcessor enqueues turns on the durable asynq queue.
type QueuedProcessor struct {
	Client *asynq.Client
}

func (p *QueuedProcessor) Process(ctx context.Context, turn models.TurnPayload) error {
	task, opts, err := NewTurnTask(turn)
	if err != nil {
		return err
	}
	_, err = p.Client.EnqueueContext(ctx, task, opts...)
	return err
}

// DirectProcessor dispatches the turn synchronously, bypassing the queue.
type DirectProcessor struct {
	Dispatcher *conversation.Dispatcher
}

func (p *DirectProcessor) Process(ctx context.Context, turn models.TurnPayload) error {
	return p.Dispatcher.Dispatch(ctx, turn)
}

// Gate is the inbound boundary from the chat transport adapter. It prefers
// the durable queue and degrades to direct synchronous dispatch when the
// queue backend is unavailable, so the assistant keeps answering without the
// asynchronous infrastructure.
type Gate struct {
	Queued TurnProcessor
	Direct TurnProcessor
	Logger *zap.Logger
}

// NewGate builds a gate. Pass a nil client to run in direct-only mode (no
// queue backend configured).
func NewGate(client *asynq.Client, dispatcher *conversation.Dispatcher, logger *zap.Logger) *Gate {
	g := &Gate{
		Direct: &DirectProcessor{Dispatcher: dispatcher},
		Logger: logger,
	}
	if client != nil {
		g.Queued = &QueuedProcessor{Client: client}
	}
	return g
}

// OnInboundMessage accepts a raw inbound message. Enqueue failures degrade to
// direct dispatch; if both paths fail the error is logged and the subject
// receives no response.
func (g *Gate) OnInboundMessage(ctx context.Context, subjectID, text, messageID string, kind models.MessageKind) {
	turn := models.TurnPayload{
		SubjectID:  subjectID,
		Text:       text,
		MessageID:  messageID,
		Kind:       kind,
		EnqueuedAt: time.Now().UTC(),
	}

	if g.Queued != nil {
		err := g.Queued.Process(ctx, turn)
		if err == nil {
			return
		}
		g.Logger.Warn("turn enqueue failed, falling back to direct dispatch",
			zap.String("subject", subjectID), zap.Error(err))
	}

	if err := g.Direct.Process(ctx, turn); err != nil {
		g.Logger.Error("turn could not be processed on either path",
			zap.String("subject", subjectID), zap.Error(err))
	}
}
