package activitymap

import (
	"context"
	"strings"
	"time"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

const (
	// MetadataKeyActorType stores darshan.ActorRef.Type
	MetadataKeyActorType = "actor_type"
	// MetadataKeyOutcome stores "success" or "failure" when the event has one
	MetadataKeyOutcome = "outcome"
)

const (
	defaultChannel    = "session"
	defaultObjectType = "account"
	defaultActorID    = "anonymous"
)

// Normalized is the flat activity record handed to logs and audit sinks.
type Normalized struct {
	ActorID    string         `json:"actor_id"`
	Verb       string         `json:"verb"`
	ObjectType string         `json:"object_type,omitempty"`
	ObjectID   string         `json:"object_id,omitempty"`
	Channel    string         `json:"channel,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Option customizes normalization.
type Option func(*normalizeOptions)

type normalizeOptions struct {
	channel       string
	objectType    string
	actorFallback string
	now           func() time.Time
}

// WithChannel overrides the channel, "session" by default.
func WithChannel(channel string) Option {
	return func(opts *normalizeOptions) {
		opts.channel = strings.TrimSpace(channel)
	}
}

// WithActorFallback sets the actor id used when neither the actor nor the
// user id is known.
func WithActorFallback(actorID string) Option {
	return func(opts *normalizeOptions) {
		opts.actorFallback = strings.TrimSpace(actorID)
	}
}

// WithClock sets the clock used for events without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(opts *normalizeOptions) {
		if now != nil {
			opts.now = now
		}
	}
}

// Normalize flattens a session activity event. The verb is the part of
// the event type before the outcome, e.g. "auth.login" for
// "auth.login.failure".
func Normalize(event darshan.ActivityEvent, opts ...Option) Normalized {
	options := normalizeOptions{
		channel:       defaultChannel,
		objectType:    defaultObjectType,
		actorFallback: defaultActorID,
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	verb, outcome := splitEventType(event.EventType)

	metadata := cloneMap(event.Metadata)
	if actorType := strings.TrimSpace(event.Actor.Type); actorType != "" {
		metadata = setIfMissing(metadata, MetadataKeyActorType, actorType)
	}
	if outcome != "" {
		metadata = setIfMissing(metadata, MetadataKeyOutcome, outcome)
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = options.now().UTC()
	}

	return Normalized{
		ActorID: firstNonEmpty(
			strings.TrimSpace(event.Actor.ID),
			strings.TrimSpace(event.UserID),
			options.actorFallback,
		),
		Verb:       verb,
		ObjectType: options.objectType,
		ObjectID:   strings.TrimSpace(event.UserID),
		Channel:    options.channel,
		Metadata:   metadata,
		OccurredAt: occurredAt,
	}
}

// Sink adapts a consumer of normalized records into a darshan.ActivitySink.
func Sink(next func(ctx context.Context, record Normalized) error, opts ...Option) darshan.ActivitySink {
	return darshan.ActivitySinkFunc(func(ctx context.Context, event darshan.ActivityEvent) error {
		if next == nil {
			return nil
		}
		return next(ctx, Normalize(event, opts...))
	})
}

// LogSink writes every normalized record to logger at Info.
func LogSink(logger darshan.Logger, opts ...Option) darshan.ActivitySink {
	logger = darshan.NormalizeLogger(logger)
	return Sink(func(_ context.Context, record Normalized) error {
		args := []any{"actor", record.ActorID, "channel", record.Channel}
		if record.ObjectID != "" {
			args = append(args, "user_id", record.ObjectID)
		}
		for k, v := range record.Metadata {
			args = append(args, k, v)
		}
		logger.Info(record.Verb, args...)
		return nil
	}, opts...)
}

func splitEventType(eventType darshan.ActivityEventType) (verb, outcome string) {
	value := string(eventType)
	idx := strings.LastIndex(value, ".")
	if idx < 0 {
		return value, ""
	}
	switch suffix := value[idx+1:]; suffix {
	case "success", "failure":
		return value[:idx], suffix
	}
	return value, ""
}

func setIfMissing(m map[string]any, key string, value any) map[string]any {
	if m == nil {
		m = map[string]any{}
	}
	if _, ok := m[key]; !ok {
		m[key] = value
	}
	return m
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
