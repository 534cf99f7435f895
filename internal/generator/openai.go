package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/id"
)

const defaultModel = "gpt-4o-mini"

// OpenAIGenerator implements Generator against the OpenAI chat API. It also
// works with OpenAI-compatible endpoints via BaseURL.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

// OpenAIConfig configures the OpenAI-backed generator.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewOpenAIGenerator builds a generator from config.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(config), model: model}, nil
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_option"`
	Difficulty    string   `json:"difficulty"`
	Points        float64  `json:"points"`
	Explanation   string   `json:"explanation"`
}

type generatedQuiz struct {
	Questions []generatedQuestion `json:"questions"`
}

func (g *OpenAIGenerator) GenerateQuestions(ctx context.Context, spec QuizSpec) ([]domain.Question, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.9,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: quizPrompt(spec)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generate questions: empty response")
	}

	text := stripFences(resp.Choices[0].Message.Content)
	var quiz generatedQuiz
	if err := json.Unmarshal([]byte(text), &quiz); err != nil {
		return nil, fmt.Errorf("parse generated quiz: %w", err)
	}

	questions := make([]domain.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		parsed, err := toDomainQuestion(q, spec)
		if err != nil {
			return nil, err
		}
		questions = append(questions, parsed)
	}
	return questions, nil
}

func (g *OpenAIGenerator) GenerateHint(ctx context.Context, question, userAnswer string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: hintPrompt(question, userAnswer)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate hint: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generate hint: empty response")
	}
	hint := strings.TrimSpace(resp.Choices[0].Message.Content)
	if hint == "" {
		return "", fmt.Errorf("generate hint: empty hint")
	}
	return hint, nil
}

func toDomainQuestion(q generatedQuestion, spec QuizSpec) (domain.Question, error) {
	letter := strings.ToUpper(strings.TrimSpace(q.CorrectOption))
	if letter == "" || letter[0] < 'A' || letter[0] > 'D' {
		return domain.Question{}, fmt.Errorf("generated question has invalid correct option %q", q.CorrectOption)
	}
	difficulty := domain.Difficulty(strings.ToLower(q.Difficulty))
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		difficulty = domain.DifficultyMedium
	}
	points := q.Points
	if points <= 0 {
		points = spec.Points.PointsFor(difficulty)
	}
	return domain.Question{
		ID:            id.New(),
		Subject:       spec.Subject,
		Grade:         spec.Grade,
		Difficulty:    difficulty,
		Prompt:        q.Question,
		Options:       q.Options,
		CorrectOption: letter[:1],
		Points:        points,
		Explanation:   q.Explanation,
	}, nil
}

// stripFences removes markdown code fences that models sometimes wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
