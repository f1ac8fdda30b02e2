package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a notification to its recipient. Delivery is
// fire-and-forget: implementations must swallow transport failures and
// never panic, so a failed notification cannot fail the operation that
// produced it.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// ZapNotifier logs notifications instead of delivering them. Default
// backend for the in-memory server mode.
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a logging notifier.
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

// Notify logs the notification.
func (z *ZapNotifier) Notify(_ context.Context, n Notification) {
	z.logger.Info("notification",
		zap.String("recipient_id", n.RecipientID.String()),
		zap.String("type", string(n.Type)),
		zap.String("title", n.Title),
		zap.String("message", n.Message),
	)
}

// Recorder collects notifications in memory. Used as a test fixture.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records the notification.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Sent returns a copy of all recorded notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// SentTo returns all notifications recorded for a recipient.
func (r *Recorder) SentTo(recipientID uuid.UUID) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, 0)
	for _, n := range r.sent {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

// Reset clears recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
