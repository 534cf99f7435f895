package generator

import (
	"context"
	"fmt"
	"math/rand"

	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/id"
)

// StaticGenerator produces simple arithmetic questions without any external
// service. It backs demos and deployments without an API key.
type StaticGenerator struct {
	rnd *rand.Rand
}

// NewStaticGenerator creates a StaticGenerator seeded for variety.
func NewStaticGenerator(seed int64) *StaticGenerator {
	return &StaticGenerator{rnd: rand.New(rand.NewSource(seed))}
}

func (g *StaticGenerator) GenerateQuestions(_ context.Context, spec QuizSpec) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, spec.Counts.Total())
	for i := 0; i < spec.Counts.Easy; i++ {
		questions = append(questions, g.addition(spec))
	}
	for i := 0; i < spec.Counts.Medium; i++ {
		questions = append(questions, g.subtraction(spec))
	}
	for i := 0; i < spec.Counts.Hard; i++ {
		questions = append(questions, g.multiplication(spec))
	}
	return questions, nil
}

func (g *StaticGenerator) GenerateHint(_ context.Context, _, _ string) (string, error) {
	hints := []string{
		"Try breaking the problem down into smaller steps.",
		"Try to eliminate obviously wrong answers first.",
		"Think about any formulas or concepts that might apply here.",
		"Consider drawing a diagram to visualize the problem.",
	}
	return hints[g.rnd.Intn(len(hints))], nil
}

func (g *StaticGenerator) addition(spec QuizSpec) domain.Question {
	a, b := g.rnd.Intn(10)+1, g.rnd.Intn(10)+1
	return g.question(spec, domain.DifficultyEasy,
		fmt.Sprintf("What is %d + %d?", a, b), a+b, a+b+1, a+b-1, a+b+2)
}

func (g *StaticGenerator) subtraction(spec QuizSpec) domain.Question {
	a, b := g.rnd.Intn(40)+10, g.rnd.Intn(10)+1
	return g.question(spec, domain.DifficultyMedium,
		fmt.Sprintf("If you have %d apples and give away %d, how many are left?", a, b),
		a-b, a+b, b-a, a)
}

func (g *StaticGenerator) multiplication(spec QuizSpec) domain.Question {
	a, b := g.rnd.Intn(11)+2, g.rnd.Intn(11)+2
	return g.question(spec, domain.DifficultyHard,
		fmt.Sprintf("What is %d × %d?", a, b), a*b, a+b, a*b+a, a*(b+1))
}

func (g *StaticGenerator) question(spec QuizSpec, diff domain.Difficulty, prompt string, correct int, wrong ...int) domain.Question {
	letters := []string{"A", "B", "C", "D"}
	values := append([]int{correct}, wrong...)
	pos := g.rnd.Intn(len(values))
	values[0], values[pos] = values[pos], values[0]

	options := make([]string, len(values))
	for i, v := range values {
		options[i] = fmt.Sprintf("%s) %d", letters[i], v)
	}
	return domain.Question{
		ID:            id.New(),
		Subject:       spec.Subject,
		Grade:         spec.Grade,
		Difficulty:    diff,
		Prompt:        prompt,
		Options:       options,
		CorrectOption: letters[pos],
		Points:        spec.Points.PointsFor(diff),
	}
}
