package resume

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadGenerated reads a generated resume from a JSON or YAML file.
func LoadGenerated(path string) (*Generated, error) {
	var generated Generated
	if err := loadFile(path, &generated); err != nil {
		return nil, fmt.Errorf("load generated resume: %w", err)
	}
	return &generated, nil
}

// LoadOriginalInput reads the original input data from a JSON or YAML file.
func LoadOriginalInput(path string) (*OriginalInput, error) {
	var input OriginalInput
	if err := loadFile(path, &input); err != nil {
		return nil, fmt.Errorf("load original input: %w", err)
	}
	return &input, nil
}

// Decode converts a loosely-typed document (decoded JSON or YAML) into out.
// Scalars are coerced where possible: numbers become strings, single strings
// become one-element lists.
func Decode(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func loadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// YAML is a superset of JSON, so one parser covers both formats.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if raw == nil {
		return fmt.Errorf("%s is empty", path)
	}

	if err := Decode(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Fingerprint returns a stable hex digest of the resume and input content.
func Fingerprint(g *Generated, in *OriginalInput, extra ...string) (string, error) {
	payload := struct {
		Resume *Generated     `json:"resume"`
		Input  *OriginalInput `json:"input"`
		Extra  []string       `json:"extra,omitempty"`
	}{Resume: g, Input: in, Extra: extra}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal resume fingerprint: %w", err)
	}

	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:]), nil
}
