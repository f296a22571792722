// Package logger provides supercompact's structured logging: a slog.Logger
// wrapped with per-module level overrides and context-carried pass/stage
// fields.
package logger

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ContextKeyPassID identifies the compaction pass a log line belongs to.
	ContextKeyPassID contextKey = "pass_id"
	// ContextKeyStage identifies the pipeline stage (parse, tokenize,
	// extract, score, select, emit).
	ContextKeyStage contextKey = "stage"
	// ContextKeyMethod identifies the active scorer method.
	ContextKeyMethod contextKey = "method"
)

var allContextKeys = []contextKey{ContextKeyPassID, ContextKeyStage, ContextKeyMethod}

// WithPassID returns a new context with the pass ID set.
func WithPassID(ctx context.Context, passID string) context.Context {
	return context.WithValue(ctx, ContextKeyPassID, passID)
}

// WithStage returns a new context with the pipeline stage set.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, ContextKeyStage, stage)
}

// WithMethod returns a new context with the scorer method set.
func WithMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, ContextKeyMethod, method)
}
