package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pageza/calorix/backend/internal/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const estimateTTL = 24 * time.Hour

var ErrEstimatorDisabled = errors.New("nutrition estimator is not configured")

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature"`
}

// EstimatorService asks a chat-completions API to turn a free-text meal
// description into food items.
type EstimatorService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client
	log    *zap.Logger
}

var _ IEstimatorService = (*EstimatorService)(nil)

// NewEstimatorService creates the client. A nil Redis client disables the
// result cache.
func NewEstimatorService(apiURL, apiKey, model string, rdb *redis.Client, log *zap.Logger) *EstimatorService {
	return &EstimatorService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
		redis:  rdb,
		log:    log,
	}
}

func estimateKey(description string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(description))))
	return "calorix:estimate:" + hex.EncodeToString(sum[:])
}

// Estimate returns the foods the API recognizes in description.
func (s *EstimatorService) Estimate(ctx context.Context, description string) ([]types.FoodInput, error) {
	if s.apiKey == "" {
		return nil, ErrEstimatorDisabled
	}

	key := estimateKey(description)
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var foods []types.FoodInput
			if json.Unmarshal(data, &foods) == nil {
				return foods, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn("estimate cache read failed", zap.Error(err))
		}
	}

	foods, err := s.call(ctx, description)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(foods); err == nil {
			if err := s.redis.Set(ctx, key, data, estimateTTL).Err(); err != nil {
				s.log.Warn("failed to cache estimate", zap.Error(err))
			}
		}
	}
	return foods, nil
}

func (s *EstimatorService) call(ctx context.Context, description string) ([]types.FoodInput, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{
				Role: "system",
				Content: "You are a nutrition expert. Respond only with JSON like " +
					`{"foods":[{"name":"","serving_size":"","calories":0,"protein":0,"carbs":0,"fat":0}]}` +
					" listing every food in the user's meal with values for the described serving.",
			},
			{Role: "user", Content: description},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.log.Warn("estimator request failed", zap.Int("status", resp.StatusCode), zap.ByteString("body", bodyBytes))
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var parsed struct {
		Foods []types.FoodInput `json:"foods"`
	}
	if err := json.Unmarshal([]byte(extractJSON(result.Choices[0].Message.Content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse foods: %w", err)
	}

	out := parsed.Foods[:0]
	for _, f := range parsed.Foods {
		if strings.TrimSpace(f.Name) == "" || f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			continue
		}
		out = append(out, f)
	}
	if out == nil {
		out = []types.FoodInput{}
	}
	return out, nil
}

// extractJSON strips a markdown code fence around the content, if any.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
