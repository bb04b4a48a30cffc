package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got []ContactMessage
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, msg ContactMessage) error {
	n.got = append(n.got, msg)
	return n.err
}

func newContactService(t *testing.T, n Notifier) *ContactService {
	t.Helper()
	v, err := model.NewValidator()
	require.NoError(t, err)
	s := NewContactService(v, n)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestContactSubmit(t *testing.T) {
	n := &recordingNotifier{}
	s := newContactService(t, n)

	msg, err := s.Submit(context.Background(), []byte(`{"name":"Jane","email":"jane@example.com","subject":"Hello there","message":"I would like to talk."}`))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, "Hello there", msg.Subject)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), msg.ReceivedAt)
	require.Len(t, n.got, 1)
	assert.Equal(t, msg, n.got[0])
}

func TestContactSubmitInvalid(t *testing.T) {
	n := &recordingNotifier{}
	s := newContactService(t, n)

	_, err := s.Submit(context.Background(), []byte(`{"name":"J","email":"jane@example.com","subject":"Hello there","message":"I would like to talk."}`))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Errors[0].Field)
	assert.Empty(t, n.got)
}

func TestContactSubmitNotifierFailure(t *testing.T) {
	boom := errors.New("telegram down")
	s := newContactService(t, &recordingNotifier{err: boom})

	_, err := s.Submit(context.Background(), []byte(`{"name":"Jane","email":"jane@example.com","subject":"Hello there","message":"I would like to talk."}`))
	assert.ErrorIs(t, err, boom)
}
