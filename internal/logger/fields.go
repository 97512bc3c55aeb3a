package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/career"
)

const (
	// FieldCareer is the structured log field key for a matched career.
	FieldCareer = "career"
	// FieldMentor is the structured log field key for a matched mentor.
	FieldMentor = "mentor"
	// FieldEducation is the structured log field key for a profile education.
	FieldEducation = "education"
	// FieldExperience is the structured log field key for a profile experience.
	FieldExperience = "experience"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// MatchFields returns the fields describing a recommendation.
// Empty values are ignored to keep log entries compact when information is missing.
func MatchFields(careerName, mentor string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCareer, Value: careerName},
		StringField{Key: FieldMentor, Value: mentor},
	)
}

// ProfileFields summarizes a query profile. Set-valued attributes are logged
// by size only.
func ProfileFields(p career.Profile) []zap.Field {
	fields := []zap.Field{
		zap.Int("skills_count", len(p.Skills)),
		zap.Int("interests_count", len(p.Interests)),
	}
	return append(fields, StringFields(
		StringField{Key: FieldEducation, Value: p.Education},
		StringField{Key: FieldExperience, Value: p.Experience},
	)...)
}

// WithMatchFields attaches the recommendation fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithMatchFields(logger *zap.Logger, careerName, mentor string) *zap.Logger {
	return WithFields(logger, MatchFields(careerName, mentor)...)
}
