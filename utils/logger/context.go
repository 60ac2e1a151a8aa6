package logger

import (
	"context"
	"log/slog"
)

type ContextKey string

// Request context keys, emitted on every record logged with the context.
const (
	RequestIDKey  ContextKey = "request_id"
	OperationKey  ContextKey = "operation"
	ArticleURLKey ContextKey = "article_url"
)

var contextKeys = []ContextKey{RequestIDKey, OperationKey, ArticleURLKey}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

func WithArticleURL(ctx context.Context, articleURL string) context.Context {
	return context.WithValue(ctx, ArticleURLKey, articleURL)
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range contextKeys {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}
