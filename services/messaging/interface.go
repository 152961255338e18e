package messaging

import "context"

// Messenger is the outbound boundary to the chat transport adapter. Calls are
// made sequentially within a turn so replies reach the guest in conversation
// order. Implementations must never panic; a failed send is returned as an
// error for the caller to log and absorb.
type Messenger interface {
	SendText(ctx context.Context, subjectID, text string) error
	SendImage(ctx context.Context, subjectID, url, caption string) error
	SendVideo(ctx context.Context, subjectID, url string) error
}
