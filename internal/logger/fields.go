package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by the transports, the service and the access log.
const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldEndpoint  = "endpoint"
	FieldRequestID = "request_id"
)

// Strings turns key/value pairs into zap string fields. Pairs with a blank key
// or value are skipped; a trailing key without a value is ignored.
func Strings(pairs ...string) []zap.Field {
	fields := make([]zap.Field, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := strings.TrimSpace(pairs[i])
		value := strings.TrimSpace(pairs[i+1])
		if key == "" || value == "" {
			continue
		}
		fields = append(fields, zap.String(key, value))
	}

	return fields
}

// With attaches fields to log. A nil logger becomes a no-op one.
func With(log *zap.Logger, fields ...zap.Field) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}
	if len(fields) == 0 {
		return log
	}

	return log.With(fields...)
}

// ForModel tags log with the AI provider and model.
func ForModel(log *zap.Logger, provider, model string) *zap.Logger {
	return With(log, Strings(FieldProvider, provider, FieldModel, model)...)
}

// ForEndpoint tags log with the API operation name.
func ForEndpoint(log *zap.Logger, endpoint string) *zap.Logger {
	return With(log, Strings(FieldEndpoint, endpoint)...)
}
