// internal/genai/evaluate.go
package genai

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrBadGradeFormat signals that the scoring model replied with something
// other than the expected bare integer list.
var ErrBadGradeFormat = errors.New("scoring model returned an unexpected format")

const scoringSystemPrompt = `
You will be provided with an original prompt and up to two user guesses in the following format:

[original prompt]
<original prompt goes here>

[userA guess]
<userA guess goes here>

[userB guess]
<userB guess goes here>

Your task is to evaluate each user guess in relation to the original prompt on a scale from 1 to 10, where:
- 10 means the guess perfectly matches the original prompt.
- 1 means there is no similarity to the original prompt.

**Evaluation Criteria:**
1. **Accuracy**: How closely the guess aligns with the details of the original prompt.
2. **Completeness**: Whether the guess addresses all aspects of the original prompt.
3. **Creativity**: The uniqueness and imaginative interpretation of the guess while still relating to the original prompt.

**Output Requirements:**
- Return only whole integer numbers separated by commas, one per provided guess, in guess order.
- Example of correct output format for two guesses: '4,7'
- Do **not** include any additional text, explanations, or formatting.

**Example Input:**
[original prompt]
Birds singing on a stage with a live band playing instrumental music.

[userA guess]
A bluebird performs at an outdoor concert with three musicians.

[userB guess]
A crowd enjoys a silent night in the park.

**Expected Output:**
7,2
`

var (
	singleGradePattern = regexp.MustCompile(`^\d{1,2}$`)
	doubleGradePattern = regexp.MustCompile(`^\d{1,2},\d{1,2}$`)
)

// ScoreGuesses asks the scoring model to grade one or two guesses against the
// original prompt. userB may be empty, in which case a single grade is
// returned. The model reply is validated against a strict integer-list shape
// before use; anything else yields ErrBadGradeFormat.
func (c *Client) ScoreGuesses(ctx context.Context, prompt, userA, userB string) ([]int, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[original prompt]\n%s\n\n[userA guess]\n%s\n", prompt, userA)
	if userB != "" {
		fmt.Fprintf(&sb, "\n[userB guess]\n%s\n", userB)
	}

	raw, err := c.chatCompletion(ctx, chatRequest{
		Model: chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: scoringSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
	})
	if err != nil {
		return nil, err
	}

	pattern := doubleGradePattern
	if userB == "" {
		pattern = singleGradePattern
	}
	if !pattern.MatchString(raw) {
		c.log.Errorf("unexpected scoring response format: %q", raw)
		return nil, ErrBadGradeFormat
	}

	parts := strings.Split(raw, ",")
	grades := make([]int, 0, len(parts))
	for _, part := range parts {
		g, err := strconv.Atoi(part)
		if err != nil {
			return nil, ErrBadGradeFormat
		}
		grades = append(grades, g)
	}
	return grades, nil
}
