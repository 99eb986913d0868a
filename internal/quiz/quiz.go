// Package quiz supplies the knowledge-check questions cards are staged behind.
// The battle engine only needs a prompt, the expected answer and a verdict;
// wording and scoring live here.
package quiz

import (
	"fmt"
	"os"
	"strings"

	"github.com/peterkuimelis/quizcrawl/internal/rng"
	"gopkg.in/yaml.v3"
)

// Question is a staged prompt.
type Question struct {
	Prompt string `yaml:"prompt" json:"prompt"`
	Answer string `yaml:"answer" json:"answer"`
	// Hint is an optional rendering hint for hosts (e.g. "number", "choice").
	Hint string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// Source produces questions. Implementations must draw randomness only from
// the given stream so battles stay replayable.
type Source interface {
	Next(difficulty int, s *rng.Stream) Question
}

// Judge decides whether an answer is correct.
type Judge func(q Question, answer string) bool

// Matches compares answers case-insensitively, ignoring surrounding and
// repeated whitespace.
func Matches(q Question, answer string) bool {
	return normalize(q.Answer) == normalize(answer)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// --- Arithmetic: a seeded generator that needs no content ---

// Arithmetic generates sums and products whose operand size grows with
// difficulty.
type Arithmetic struct{}

func (Arithmetic) Next(difficulty int, s *rng.Stream) Question {
	if difficulty < 1 {
		difficulty = 1
	}
	limit := 10 * difficulty
	a := 1 + s.Intn(limit)
	b := 1 + s.Intn(limit)
	switch s.Intn(3) {
	case 0:
		return Question{Prompt: fmt.Sprintf("%d + %d = ?", a, b), Answer: fmt.Sprint(a + b), Hint: "number"}
	case 1:
		if a < b {
			a, b = b, a
		}
		return Question{Prompt: fmt.Sprintf("%d - %d = ?", a, b), Answer: fmt.Sprint(a - b), Hint: "number"}
	default:
		a = 1 + a%(3+difficulty*2)
		b = 1 + b%(3+difficulty*2)
		return Question{Prompt: fmt.Sprintf("%d × %d = ?", a, b), Answer: fmt.Sprint(a * b), Hint: "number"}
	}
}

// --- Bank: questions authored in YAML ---

// BankFile is the YAML shape of a question bank.
type BankFile struct {
	Tiers []Tier `yaml:"tiers"`
}

// Tier holds the questions for one difficulty level.
type Tier struct {
	Difficulty int        `yaml:"difficulty"`
	Questions  []Question `yaml:"questions"`
}

// Bank draws from authored questions, picking the highest tier at or below
// the requested difficulty. An empty bank defers to Fallback.
type Bank struct {
	tiers    []Tier
	Fallback Source
}

// LoadBank reads a YAML question bank.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBank(data)
}

// ParseBank decodes a YAML question bank.
func ParseBank(data []byte) (*Bank, error) {
	var bf BankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse question bank YAML: %w", err)
	}
	b := &Bank{Fallback: Arithmetic{}}
	for _, t := range bf.Tiers {
		if len(t.Questions) > 0 {
			b.tiers = append(b.tiers, t)
		}
	}
	return b, nil
}

// Len returns the number of authored questions.
func (b *Bank) Len() int {
	n := 0
	for _, t := range b.tiers {
		n += len(t.Questions)
	}
	return n
}

func (b *Bank) Next(difficulty int, s *rng.Stream) Question {
	var best *Tier
	for i := range b.tiers {
		t := &b.tiers[i]
		if t.Difficulty > difficulty {
			continue
		}
		if best == nil || t.Difficulty > best.Difficulty {
			best = t
		}
	}
	if best == nil && len(b.tiers) > 0 {
		best = &b.tiers[0]
	}
	if best == nil {
		if b.Fallback == nil {
			return Question{Prompt: "Type yes to continue.", Answer: "yes", Hint: "text"}
		}
		return b.Fallback.Next(difficulty, s)
	}
	q, _ := rng.Pick(s, best.Questions)
	return q
}
