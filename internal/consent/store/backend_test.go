package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookieconsent/internal/consent/models"
	"cookieconsent/pkg/platform/sentinel"
)

// exerciseBackend checks the behaviour every backend shares.
func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()
	ns := Namespace(uuid.NewString())
	other := Namespace(uuid.NewString())

	// Missing key
	_, err := backend.Get(ctx, ns, models.KeyConsent)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	// Set and get
	require.NoError(t, backend.Set(ctx, ns, models.KeyConsent, `{"analytics":true,"marketing":false}`))
	value, err := backend.Get(ctx, ns, models.KeyConsent)
	require.NoError(t, err)
	assert.Equal(t, `{"analytics":true,"marketing":false}`, value)

	// Overwrite replaces wholesale
	require.NoError(t, backend.Set(ctx, ns, models.KeyConsent, `{"analytics":false,"marketing":true}`))
	value, err = backend.Get(ctx, ns, models.KeyConsent)
	require.NoError(t, err)
	assert.Equal(t, `{"analytics":false,"marketing":true}`, value)

	// Namespaces are isolated
	_, err = backend.Get(ctx, other, models.KeyConsent)
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	// Keys are independent
	require.NoError(t, backend.Set(ctx, ns, models.KeyConsentDate, "2026-10-19T08:30:05.123Z"))
	require.NoError(t, backend.Delete(ctx, ns, models.KeyConsent))
	_, err = backend.Get(ctx, ns, models.KeyConsent)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	value, err = backend.Get(ctx, ns, models.KeyConsentDate)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19T08:30:05.123Z", value)

	// Deleting a missing key is not an error
	require.NoError(t, backend.Delete(ctx, other, models.KeyConsent))
}
