package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// The webhook handler seeds team/user/event type once, and every store, service and
// platform call below it logs with them without passing them around.
type LogFields struct {
	TeamID    *string // Slack workspace (team) ID
	UserID    *string // Slack user who triggered the event
	RetroID   *int64  // Retrospective being read or mutated
	EventType *string // Decoded event kind, e.g. "block_action:finish_retro"
	MessageID *string // Redis stream message ID (worker only)
	Component string  // Component name, e.g. "retro.service.dispatcher"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.TeamID != nil {
		result.TeamID = next.TeamID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.RetroID != nil {
		result.RetroID = next.RetroID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{TeamID: logger.Ptr(team)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
// Used for logging user-submitted text such as item content.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
