package service

import (
	"context"
	"errors"
	"fmt"

	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/draft"
	"elegance-storefront/internal/logger"
	"elegance-storefront/internal/notify"

	"go.uber.org/zap"
)

// SnapshotSink receives submitted drafts
type SnapshotSink interface {
	Publish(ctx context.Context, snap draft.Snapshot) error
}

// LogSink records submitted drafts in the log. No catalog service exists to
// hand them to.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a SnapshotSink that only logs
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, snap draft.Snapshot) error {
	p := snap.Product()
	logger.WithRequest(ctx, s.logger).Info("Product draft submitted",
		zap.String("name", p.Name),
		zap.String("brand", p.Brand),
		zap.String("price", p.Price),
		zap.Int("images", len(p.Images)),
	)
	return nil
}

// DraftService defines the interface for the add-product flow
type DraftService interface {
	Start(ctx context.Context) (string, domain.DraftProduct, error)
	Get(ctx context.Context, id string) (domain.DraftProduct, error)
	SetField(ctx context.Context, id string, field domain.Field, value string) (domain.DraftProduct, error)
	AddNote(ctx context.Context, id string, list domain.NoteList) (domain.DraftProduct, error)
	SetNote(ctx context.Context, id string, list domain.NoteList, index int, value string) (domain.DraftProduct, error)
	RemoveNote(ctx context.Context, id string, list domain.NoteList, index int) (domain.DraftProduct, error)
	AddImages(ctx context.Context, id string, images []domain.Image) (domain.DraftProduct, error)
	RemoveImage(ctx context.Context, id string, index int) (domain.DraftProduct, error)
	Submit(ctx context.Context, id string) (draft.Snapshot, domain.Notification, error)
	Abandon(ctx context.Context, id string) error
}

type draftService struct {
	store    draft.Store
	sink     SnapshotSink
	notifier notify.Notifier
}

// NewDraftService creates a new instance of DraftService
func NewDraftService(store draft.Store, sink SnapshotSink, notifier notify.Notifier) DraftService {
	return &draftService{
		store:    store,
		sink:     sink,
		notifier: notifier,
	}
}

// Start opens a new editing session with an empty draft
func (s *draftService) Start(ctx context.Context) (string, domain.DraftProduct, error) {
	id, m, err := s.store.Create(ctx)
	if err != nil {
		return "", domain.DraftProduct{}, fmt.Errorf("failed to start draft: %w", err)
	}
	return id, m.Draft(), nil
}

// Get returns the current draft of a session
func (s *draftService) Get(ctx context.Context, id string) (domain.DraftProduct, error) {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.DraftProduct{}, err
	}
	return m.Draft(), nil
}

// update applies one manager operation to a session and saves the result
func (s *draftService) update(ctx context.Context, id string, op func(m *draft.Manager) error) (domain.DraftProduct, error) {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.DraftProduct{}, err
	}
	if err := op(m); err != nil {
		return domain.DraftProduct{}, err
	}
	if err := s.store.Save(ctx, id, m); err != nil {
		return domain.DraftProduct{}, fmt.Errorf("failed to save draft: %w", err)
	}
	return m.Draft(), nil
}

func (s *draftService) SetField(ctx context.Context, id string, field domain.Field, value string) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		return m.SetField(field, value)
	})
}

func (s *draftService) AddNote(ctx context.Context, id string, list domain.NoteList) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		return m.AddNote(list)
	})
}

func (s *draftService) SetNote(ctx context.Context, id string, list domain.NoteList, index int, value string) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		return m.SetNote(list, index, value)
	})
}

func (s *draftService) RemoveNote(ctx context.Context, id string, list domain.NoteList, index int) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		return m.RemoveNote(list, index)
	})
}

func (s *draftService) AddImages(ctx context.Context, id string, images []domain.Image) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		m.AddImages(images...)
		return nil
	})
}

func (s *draftService) RemoveImage(ctx context.Context, id string, index int) (domain.DraftProduct, error) {
	return s.update(ctx, id, func(m *draft.Manager) error {
		m.RemoveImage(index)
		return nil
	})
}

// Submit validates the draft, hands the snapshot to the sink and resets the
// session. A validation failure is returned together with the notification
// describing it.
func (s *draftService) Submit(ctx context.Context, id string) (draft.Snapshot, domain.Notification, error) {
	m, err := s.store.Load(ctx, id)
	if err != nil {
		return draft.Snapshot{}, domain.Notification{}, err
	}

	snap, err := m.Submit()
	if err != nil {
		note := validationNotification(err)
		s.notifier.Notify(ctx, note)
		return draft.Snapshot{}, note, err
	}

	if err := s.sink.Publish(ctx, snap); err != nil {
		return draft.Snapshot{}, domain.Notification{}, fmt.Errorf("failed to publish draft: %w", err)
	}

	// The sink has the snapshot; only now is the session reset.
	if err := s.store.Save(ctx, id, m); err != nil {
		return draft.Snapshot{}, domain.Notification{}, fmt.Errorf("failed to reset draft: %w", err)
	}

	note := domain.ProductAdded(snap.Product().Name)
	s.notifier.Notify(ctx, note)
	return snap, note, nil
}

// Abandon discards a session without side effects
func (s *draftService) Abandon(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func validationNotification(err error) domain.Notification {
	if errors.Is(err, draft.ErrNoImagesAttached) {
		return domain.ImagesRequired()
	}
	return domain.MissingInformation()
}
