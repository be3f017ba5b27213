package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by the classifier and scoring code.
const (
	FieldProvider         = "ai_provider"
	FieldModel            = "ai_model"
	FieldChecklistVersion = "checklist_version"
	FieldSection          = "section"
	FieldItemID           = "item_id"
)

type StringField struct {
	Key   string
	Value string
}

// StringFields converts pairs into zap fields. Keys and values are trimmed and
// pairs with either side empty are dropped.
func StringFields(fields ...StringField) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		key, value := strings.TrimSpace(f.Key), strings.TrimSpace(f.Value)
		if key == "" || value == "" {
			continue
		}
		out = append(out, zap.String(key, value))
	}
	return out
}

// WithFields attaches fields to logger. A nil logger becomes a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// CommonFields describes the classifier behind an entry.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// ItemFields describes a checklist item. An empty item id is dropped so the
// helper also serves section-level entries.
func ItemFields(section, itemID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSection, Value: section},
		StringField{Key: FieldItemID, Value: itemID},
	)
}

// WithChecklistVersion tags every entry of a scoring run with the checklist
// version it evaluates against.
func WithChecklistVersion(logger *zap.Logger, version string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldChecklistVersion, Value: version})...)
}
