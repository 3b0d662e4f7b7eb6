package notify

import (
	"context"
	"testing"

	"elegance-storefront/internal/domain"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogNotifier_WritesStructuredEntry(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	n.Notify(ctx, domain.AddedToCart("Rose Mystique"))

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "Added to Cart", fields["title"])
	assert.Equal(t, "Rose Mystique has been added to your cart.", fields["description"])
	assert.Equal(t, domain.VariantDefault, fields["variant"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Notify(context.Background(), domain.MissingInformation())
	r.Notify(context.Background(), domain.ImagesRequired())

	notes := r.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, "Missing Information", notes[0].Title)
	assert.Equal(t, domain.VariantDestructive, notes[1].Variant)
}
