// Package secrets resolves API keys from a file, an environment variable or
// an inline config value.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source lists the places a secret may come from, in order of precedence:
// File, then Env, then Value.
type Source struct {
	// Name labels the secret in error messages.
	Name  string
	File  string
	Env   string
	Value string
}

// Load returns the trimmed secret. A configured file must exist and hold a
// value; an unset or blank env var falls through to Value.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		return fromFile(name, file)
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}

	if v := strings.TrimSpace(src.Value); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s is not configured", name)
}

func fromFile(name, file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}
	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}
	return secret, nil
}
