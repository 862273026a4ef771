package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/vidya/internal/catalog"
)

const introSystemPrompt = `You are a friendly, energetic, and encouraging elementary school teacher.`

// introLanguage describes the target language of a lesson intro.
func introLanguage(lang catalog.Language) string {
	if lang.Transliterated() {
		return lang.DisplayName() + " (With simple English transliteration in brackets)"
	}
	return "English"
}

// replyLanguage describes the language mode of tutoring replies.
func replyLanguage(lang catalog.Language) string {
	if lang.Transliterated() {
		return lang.DisplayName() + " (Include simple English transliteration)"
	}
	return "English"
}

func buildIntroUserMessage(topic, grade string, lang catalog.Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", topic)
	fmt.Fprintf(&b, "Grade Level: %s\n", grade)
	fmt.Fprintf(&b, "Target Language: %s\n", introLanguage(lang))

	b.WriteString(`
Task: Introduce the topic to the student in 2-3 short sentences.
Use emojis. Be exciting! Ask a simple opening question to get them started.`)

	return b.String()
}

func buildReplySystemPrompt(topic, grade string, lang catalog.Language) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a specialized AI Tutor for a child in Grade %s.\n", grade)
	fmt.Fprintf(&b, "Current Topic: %s.\n", topic)
	fmt.Fprintf(&b, "Language Mode: %s.\n", replyLanguage(lang))
	b.WriteString("Tone: Encouraging, patient, simple language.\n")

	b.WriteString(`
CRITICAL: You must return your response in a structured JSON format.

Structure:
{
  "text": "Your verbal explanation here. Max 50 words. Use emojis.",
  "visual_keyword": "Optional. A simple 2-3 word noun phrase to generate a cartoon image if the concept can be visualized (e.g., '3 red apples', 'happy cat', 'triangle shape'). If no image needed, leave empty."
}

Rules:
1. If the student is wrong, gently correct them.
2. If the student is right, celebrate!
3. Do NOT simply give answers to complex problems, guide them step-by-step.
4. For Math/Science, always try to provide a 'visual_keyword'.`)

	return b.String()
}

// replyContextMessage opens every tutoring conversation sent to the model.
func replyContextMessage(topic string) string {
	return fmt.Sprintf("Context: I am learning %s.", topic)
}

const quizSystemPrompt = `You write simple multiple-choice questions for young school children. Every question has exactly one correct option.`

func buildQuizUserMessage(topic, grade string, count int) string {
	return fmt.Sprintf("Generate %d multiple-choice questions for a Grade %s student about %q. Questions should be simple.", count, grade, topic)
}

const insightSystemPrompt = `You help a primary school teacher decide what to focus on next. Answer in exactly one sentence of plain text.`

func buildInsightUserMessage(rows []catalog.StudentProgress) (string, error) {
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshal class data: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze this student performance data and give a 1-sentence summary for the teacher on what to focus on next.\n")
	fmt.Fprintf(&b, "Data: %s", data)
	return b.String(), nil
}

const curriculumSystemPrompt = `You are a curriculum planner for an Indian primary school.`

func buildCurriculumUserMessage(grade string, subject catalog.Subject, count int) string {
	return fmt.Sprintf("Generate a list of %d fundamental learning topics for %s %s, one per week, starting at week 1.", count, grade, subject)
}
