package generator

import (
	"fmt"
	"strings"
)

func quizPrompt(spec QuizSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s teacher for grade %d students. Create an engaging quiz.\n\n", spec.Subject, spec.Grade)
	fmt.Fprintf(&b, "QUESTION DISTRIBUTION:\n")
	fmt.Fprintf(&b, "- Easy questions: %d, worth %g point(s) each\n", spec.Counts.Easy, spec.Points.Easy)
	fmt.Fprintf(&b, "- Medium questions: %d, worth %g point(s) each\n", spec.Counts.Medium, spec.Points.Medium)
	fmt.Fprintf(&b, "- Hard questions: %d, worth %g point(s) each\n\n", spec.Counts.Hard, spec.Points.Hard)
	b.WriteString(`INSTRUCTIONS:
1. Every question must suit the grade level and subject.
2. For each question provide 4 answer choices labeled "A)" through "D)", the correct
   letter, its difficulty (easy, medium, hard), its points, and a concise explanation
   of why the correct answer is right.
3. All questions must be distinct and cover varied topics.

Respond with JSON only, in this shape:
{
  "questions": [
    {
      "question": "...",
      "options": ["A) ...", "B) ...", "C) ...", "D) ..."],
      "correct_option": "A",
      "difficulty": "easy",
      "points": 1,
      "explanation": "..."
    }
  ]
}
`)
	fmt.Fprintf(&b, "\nNow generate %d questions following these guidelines.", spec.Counts.Total())
	return b.String()
}

func hintPrompt(question, userAnswer string) string {
	var b strings.Builder
	b.WriteString("You are a teacher helping a student with a quiz question.\n")
	fmt.Fprintf(&b, "Question: %q\n", question)
	if strings.TrimSpace(userAnswer) != "" {
		fmt.Fprintf(&b, "Student's current answer: %q\n", userAnswer)
		b.WriteString("Nudge the student toward the right approach given their answer.\n")
	}
	b.WriteString("Give one short hint that guides without revealing the answer.")
	return b.String()
}
