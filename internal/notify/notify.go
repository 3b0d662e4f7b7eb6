package notify

import (
	"context"
	"sync"

	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/logger"

	"go.uber.org/zap"
)

// Notifier delivers user-visible status messages. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier backed by logger
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) {
	logger.WithRequest(ctx, n.logger).Info("Notification",
		zap.String("title", note.Title),
		zap.String("description", note.Description),
		zap.String("variant", note.Variant),
	)
}

// Recorder keeps every notification it receives, for tests
type Recorder struct {
	mu    sync.Mutex
	notes []domain.Notification
}

func (r *Recorder) Notify(_ context.Context, note domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
}

// Notifications returns what has been recorded so far
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification{}, r.notes...)
}
