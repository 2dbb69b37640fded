package logging

import "context"

type contextKey string

const (
	scriptKey contextKey = "script"
	fileKey   contextKey = "file"
)

// WithScript tags the context with the replay script being run.
func WithScript(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, scriptKey, name)
}

// WithFile tags the context with the file being edited.
func WithFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, fileKey, path)
}

// GetScript returns the script name, or "" if not present.
func GetScript(ctx context.Context) string {
	if s, ok := ctx.Value(scriptKey).(string); ok {
		return s
	}
	return ""
}

// GetFile returns the edited file path, or "" if not present.
func GetFile(ctx context.Context) string {
	if s, ok := ctx.Value(fileKey).(string); ok {
		return s
	}
	return ""
}
