package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// CleanJSONResponse strips markdown code fences that chat models love to wrap
// JSON answers in, so the payload can be unmarshalled directly.
func CleanJSONResponse(raw string) []byte {
	b := []byte(raw)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

// GenerateStructured prompts the model and parses the reply into T.
// A reply that is not valid JSON for T is returned as an error together with
// the raw text, so callers can decide whether to abort or fall back.
func GenerateStructured[T any](
	ctx context.Context,
	provider LLMProvider,
	prompt string,
	options ...Option,
) (T, error) {
	var out T

	raw, err := provider.Generate(ctx, prompt, options...)
	if err != nil {
		return out, fmt.Errorf("structured generation failed: %w", err)
	}

	cleaned := CleanJSONResponse(raw)
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return out, fmt.Errorf("parse error: %w | raw: %s", err, string(cleaned))
	}

	return out, nil
}
