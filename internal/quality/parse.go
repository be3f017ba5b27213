package quality

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	VerdictValid       = "valid"
	VerdictPlaceholder = "placeholder"
	VerdictGibberish   = "gibberish"
)

var errAmbiguous = errors.New("ambiguous classification")

func parseResponse(raw string) (Validation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Validation{}, fmt.Errorf("parse classifier response: %w", err)
	}

	verdict := strings.ToLower(coerceString(data["verdict"]))
	switch verdict {
	case "", VerdictValid, VerdictPlaceholder, VerdictGibberish:
	default:
		return Validation{}, fmt.Errorf("%w: unknown verdict %q", errAmbiguous, verdict)
	}

	valid, ok := coerceBool(data["isValid"])
	switch {
	case !ok && verdict == "":
		return Validation{}, fmt.Errorf("%w: neither verdict nor isValid present", errAmbiguous)
	case !ok:
		valid = verdict == VerdictValid
	case verdict != "" && valid != (verdict == VerdictValid):
		return Validation{}, fmt.Errorf("%w: verdict %q contradicts isValid=%t", errAmbiguous, verdict, valid)
	}
	if verdict == "" {
		verdict = VerdictValid
		if !valid {
			verdict = VerdictPlaceholder
		}
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return Validation{}, fmt.Errorf("%w: confidence missing", errAmbiguous)
	}
	// Some models answer in percent.
	if confidence > 1 && confidence <= 100 {
		confidence /= 100
	}
	if confidence < 0 || confidence > 1 {
		return Validation{}, fmt.Errorf("%w: confidence %v out of range", errAmbiguous, confidence)
	}

	return Validation{
		IsValid:    valid,
		Confidence: confidence,
		Reason:     coerceString(data["reason"]),
		Verdict:    verdict,
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	raw = strings.TrimSpace(raw)

	// Tolerate prose around the object.
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	case float64:
		return val != 0, true
	}
	return false, false
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSuffix(strings.TrimSpace(val), "%")
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
