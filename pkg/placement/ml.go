package placement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Rishithapigili/AI-Powered-smart-Placement-IntelligencePlatform/internal/models"
)

// MLMetrics returns the training metrics of the server-side models
// (admin only).
func (c *Client) MLMetrics(ctx context.Context) (models.MLMetrics, error) {
	var out models.MLMetrics
	raw, err := c.doRaw(ctx, http.MethodGet, "/api/ml/metrics", nil, nil)
	if err != nil {
		return out, err
	}
	if err := validatePayload(ctx, "ml_metrics", raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode ml metrics: %w", err)
	}
	return out, nil
}

type recommendRequest struct {
	Skills string `json:"skills"`
	TopN   int    `json:"top_n"`
}

// Recommend asks the server for student matches against a free-text skills
// query (company only).
func (c *Client) Recommend(ctx context.Context, skills string, topN int) ([]models.Recommendation, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/api/ml/recommend", nil, recommendRequest{Skills: skills, TopN: topN})
	if err != nil {
		return nil, err
	}
	if err := validatePayload(ctx, "ml_recommend", raw); err != nil {
		return nil, err
	}
	var out struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	return out.Recommendations, nil
}

// PredictMyProfile returns placement and salary predictions for the
// logged-in student's own profile.
func (c *Client) PredictMyProfile(ctx context.Context) (models.ProfilePrediction, error) {
	var out models.ProfilePrediction
	raw, err := c.doRaw(ctx, http.MethodGet, "/api/ml/predict/my-profile", nil, nil)
	if err != nil {
		return out, err
	}
	if err := validatePayload(ctx, "ml_prediction", raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode prediction: %w", err)
	}
	return out, nil
}

// FeatureImportance returns the classifier's feature weights.
func (c *Client) FeatureImportance(ctx context.Context) (map[string]float64, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/api/ml/feature-importance", nil, nil)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(ctx, "ml_importance", raw); err != nil {
		return nil, err
	}
	var out struct {
		FeatureImportances map[string]float64 `json:"feature_importances"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode feature importances: %w", err)
	}
	return out.FeatureImportances, nil
}
