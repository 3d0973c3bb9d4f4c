package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionIDFromContext_Empty(t *testing.T) {
	require.Empty(t, SessionIDFromContext(context.Background()))
}

func TestSessionIDFromContext_NilContext(t *testing.T) {
	//nolint:staticcheck // testing nil context handling
	require.Empty(t, SessionIDFromContext(nil))
}

func TestContextWithSessionID_Roundtrip(t *testing.T) {
	ctx := ContextWithSessionID(context.Background(), "0b6f7a4e-1c55-4d7e-9d3c-5b2a1f0e9c11")

	require.Equal(t, "0b6f7a4e-1c55-4d7e-9d3c-5b2a1f0e9c11", SessionIDFromContext(ctx))
}

func TestContextWithSessionID_EmptyKeepsContext(t *testing.T) {
	ctx := ContextWithSessionID(context.Background(), "original")

	require.Equal(t, ctx, ContextWithSessionID(ctx, ""))
	require.Equal(t, "original", SessionIDFromContext(ctx))
}
