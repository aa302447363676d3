package service

import (
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// buildQuizPrompt composes the natural-language specification sent to
// the content provider: grade, subject, exact per-difficulty counts
// and point values, and the mandated JSON response shape.
func buildQuizPrompt(grade int, subject string, mix domain.DifficultyMix, points domain.PointsSchedule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert %s teacher for grade %d students.\n", subject, grade)
	b.WriteString("Create an engaging and educational quiz with the following specifications:\n\n")
	fmt.Fprintf(&b, "SUBJECT: %s\n", subject)
	fmt.Fprintf(&b, "GRADE LEVEL: %d\n\n", grade)

	b.WriteString("QUESTION DISTRIBUTION:\n")
	fmt.Fprintf(&b, "- Easy questions: %d question(s) - %g point(s) each\n", mix.Easy, points.Easy)
	fmt.Fprintf(&b, "- Medium questions: %d question(s) - %g point(s) each\n", mix.Medium, points.Medium)
	fmt.Fprintf(&b, "- Hard questions: %d question(s) - %g point(s) each\n\n", mix.Hard, points.Hard)

	b.WriteString(`INSTRUCTIONS:
1. Generate questions appropriate for the grade level and subject.
2. For each question:
   - Write a clear, concise question.
   - Provide 4 answer choices, each prefixed with its letter ("A) ", "B) ", "C) ", "D) ").
   - Mark the correct answer (A, B, C, or D).
   - Specify the difficulty level (easy, medium, hard).
   - Include the points value based on difficulty.
   - Provide a concise "explanation" for why the correct answer is right.
3. Make sure all questions are different and cover various topics.

FORMAT YOUR RESPONSE AS VALID JSON with this structure:
{
    "questions": [
        {
            "question": "Your question here",
            "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
            "correct_option": "A",
            "difficulty": "easy",
`)
	fmt.Fprintf(&b, "            \"points\": %g,\n", points.Easy)
	b.WriteString(`            "explanation": "The explanation for why A is correct goes here."
        }
    ]
}

`)
	fmt.Fprintf(&b, "Now, generate %d questions following these guidelines.\n", mix.Total())

	return b.String()
}

// buildHintPrompt composes the hint-generation specification. When the
// learner has already attempted an answer, the prompt asks the provider
// to take it into account without revealing the solution.
func buildHintPrompt(questionText, userAnswer string) string {
	var b strings.Builder

	b.WriteString("You are an expert teacher helping a student with a quiz question.\n")
	if userAnswer != "" {
		b.WriteString("The student has provided an answer but might need some guidance.\n\n")
		fmt.Fprintf(&b, "Question: %q\n", questionText)
		fmt.Fprintf(&b, "Student's Answer: %q\n\n", userAnswer)
		b.WriteString(`Provide a helpful hint that guides the student toward the correct answer without giving it away. The hint should:
1. Acknowledge what's correct in their answer (if anything)
2. Gently point out any misconceptions
3. Suggest a strategy or concept to consider
4. Be encouraging, constructive, and concise (1-2 sentences)
5. Never reveal the final answer
`)
	} else {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Question: %q\n\n", questionText)
		b.WriteString(`Provide a helpful hint that guides the student toward the answer without giving it away. The hint should:
1. Point to key concepts or strategies
2. Break down complex problems into simpler steps
3. Be concise (1-2 sentences)
4. Not reveal the final answer
`)
	}

	return b.String()
}
