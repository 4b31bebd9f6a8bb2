package llm

import (
	"context"
	"sync"
)

// LazyClient defers construction of the underlying client until the
// first call. A missing credential therefore surfaces as an error on
// first use rather than at process startup.
type LazyClient struct {
	newFn func(ctx context.Context) (Client, error)

	mu     sync.Mutex
	client Client
	err    error
	done   bool
}

// NewLazyClient wraps a client constructor. The constructor runs at
// most once; its result (client or error) is cached for all callers.
func NewLazyClient(newFn func(ctx context.Context) (Client, error)) *LazyClient {
	return &LazyClient{newFn: newFn}
}

func (l *LazyClient) get(ctx context.Context) (Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.done {
		l.client, l.err = l.newFn(ctx)
		l.done = true
	}
	return l.client, l.err
}

// GenerateContent implements Generator
func (l *LazyClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	client, err := l.get(ctx)
	if err != nil {
		return "", err
	}
	return client.GenerateContent(ctx, prompt)
}

// EmbedText implements Embedder
func (l *LazyClient) EmbedText(ctx context.Context, text string, mode EmbedMode) ([]float32, error) {
	client, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return client.EmbedText(ctx, text, mode)
}

// Close releases the underlying client if it was ever constructed
func (l *LazyClient) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done && l.err == nil && l.client != nil {
		return l.client.Close()
	}
	return nil
}
