package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder counts calls.
type stubEmbedder struct {
	embedCalls int
	batchCalls int
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.embedCalls++
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return 2 }
func (s *stubEmbedder) ModelName() string            { return "stub" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

func TestRateLimited_Delegates(t *testing.T) {
	stub := &stubEmbedder{}
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})

	vec, err := limited.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vec)
	assert.Equal(t, 1, stub.embedCalls)

	vecs, err := limited.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
	assert.Equal(t, 1, stub.batchCalls)

	assert.Equal(t, 2, limited.Dimensions())
	assert.Equal(t, "stub", limited.ModelName())
	assert.NoError(t, limited.Ping(context.Background()))
	assert.NoError(t, limited.Close())
}

func TestRateLimited_RespectsCancelledContext(t *testing.T) {
	stub := &stubEmbedder{}
	// Burst of 1 at a very low rate: the second call must block.
	limited := NewRateLimited(stub, RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})

	_, err := limited.Embed(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = limited.Embed(ctx, "second")
	assert.Error(t, err, "blocked call should fail once the context expires")
	assert.Equal(t, 1, stub.embedCalls)
}

func TestRateLimited_DefaultsOnZeroConfig(t *testing.T) {
	limited := NewRateLimited(&stubEmbedder{}, RateLimitConfig{})
	_, err := limited.Embed(context.Background(), "text")
	assert.NoError(t, err)
}
