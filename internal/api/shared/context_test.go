package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	id := NewTraceID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewTraceID())

	traced := WithTraceID(ctx, id)
	assert.Equal(t, id, GetTraceID(traced))
	assert.Empty(t, GetTraceID(ctx), "original context must be unchanged")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestSubject(t *testing.T) {
	_, ok := GetSubject(context.Background())
	assert.False(t, ok)

	_, ok = GetSubject(WithSubject(context.Background(), ""))
	assert.False(t, ok)

	subject, ok := GetSubject(WithSubject(context.Background(), "ops-bot"))
	assert.True(t, ok)
	assert.Equal(t, "ops-bot", subject)
}
