package placement

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/qri-io/jsonschema"
)

// The ML endpoints feed numbers straight into view rendering, so their
// payloads are checked against a schema before decoding. Other endpoints
// carry resources the client round-trips back to the server and are decoded
// directly.

const metricsSchemaJSON = `{
	"type": "object",
	"required": ["classifier_accuracy", "classifier_report"],
	"properties": {
		"classifier_accuracy": {"type": "number"},
		"classifier_report": {"type": "object"},
		"regressor_r2_score": {"type": "number"},
		"feature_importances": {"type": "object"},
		"training_samples": {"type": "integer"}
	}
}`

const recommendSchemaJSON = `{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["full_name", "match_percentage"],
				"properties": {
					"full_name": {"type": "string"},
					"match_percentage": {"type": "number"},
					"cgpa": {"type": "number"}
				}
			}
		}
	}
}`

const predictionSchemaJSON = `{
	"type": "object",
	"required": ["placement_prediction", "salary_prediction", "profile_features"],
	"properties": {
		"placement_prediction": {
			"type": "object",
			"required": ["status", "confidence"]
		},
		"salary_prediction": {
			"type": "object",
			"required": ["predicted_salary_lpa"]
		},
		"profile_features": {"type": "object"}
	}
}`

const importanceSchemaJSON = `{
	"type": "object",
	"required": ["feature_importances"],
	"properties": {
		"feature_importances": {"type": "object"}
	}
}`

// schemaCache compiles schemas once and hands them out by name.
type schemaCache struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

var mlSchemas = &schemaCache{cache: make(map[string]*jsonschema.Schema)}

var mlSchemaSources = map[string]string{
	"ml_metrics":    metricsSchemaJSON,
	"ml_recommend":  recommendSchemaJSON,
	"ml_prediction": predictionSchemaJSON,
	"ml_importance": importanceSchemaJSON,
}

func (s *schemaCache) get(name string) (*jsonschema.Schema, error) {
	s.mu.RLock()
	rs, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return rs, nil
	}

	src, ok := mlSchemaSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	rs = &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = rs
	s.mu.Unlock()
	return rs, nil
}

// validatePayload checks raw bytes against a named schema.
func validatePayload(ctx context.Context, name string, raw []byte) error {
	rs, err := mlSchemas.get(name)
	if err != nil {
		return err
	}

	errs, err := rs.ValidateBytes(ctx, raw)
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s payload failed validation: %s", name, errs[0].Error())
	}
	return nil
}
