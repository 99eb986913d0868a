package quiz

import (
	"strconv"
	"strings"
	"testing"

	"github.com/peterkuimelis/quizcrawl/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	q := Question{Answer: "Mitochondria"}
	assert.True(t, Matches(q, "mitochondria"))
	assert.True(t, Matches(q, "  MITOCHONDRIA "))
	assert.False(t, Matches(q, "ribosome"))

	q = Question{Answer: "New  York"}
	assert.True(t, Matches(q, "new york"))
}

func TestArithmeticAnswersAreCorrect(t *testing.T) {
	s := rng.New(99)
	for i := 0; i < 200; i++ {
		q := Arithmetic{}.Next(1+i%4, &s)
		require.NotEmpty(t, q.Prompt)
		want, err := strconv.Atoi(q.Answer)
		require.NoError(t, err)

		fields := strings.Fields(q.Prompt)
		require.Len(t, fields, 5)
		a, _ := strconv.Atoi(fields[0])
		b, _ := strconv.Atoi(fields[2])
		switch fields[1] {
		case "+":
			assert.Equal(t, a+b, want)
		case "-":
			assert.Equal(t, a-b, want)
			assert.GreaterOrEqual(t, want, 0)
		case "×":
			assert.Equal(t, a*b, want)
		default:
			t.Fatalf("unexpected operator in %q", q.Prompt)
		}
	}
}

func TestArithmeticIsReplayable(t *testing.T) {
	s1, s2 := rng.New(5), rng.New(5)
	for i := 0; i < 20; i++ {
		assert.Equal(t, Arithmetic{}.Next(2, &s1), Arithmetic{}.Next(2, &s2))
	}
}

const bankYAML = `
tiers:
  - difficulty: 1
    questions:
      - prompt: Capital of France?
        answer: Paris
  - difficulty: 3
    questions:
      - prompt: Powerhouse of the cell?
        answer: mitochondria
        hint: text
  - difficulty: 5
    questions: []
`

func TestBankPicksTier(t *testing.T) {
	b, err := ParseBank([]byte(bankYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())

	s := rng.New(1)
	assert.Equal(t, "Paris", b.Next(1, &s).Answer)
	assert.Equal(t, "Paris", b.Next(2, &s).Answer)
	assert.Equal(t, "mitochondria", b.Next(3, &s).Answer)
	assert.Equal(t, "mitochondria", b.Next(9, &s).Answer, "empty tiers are dropped")
	assert.Equal(t, "Paris", b.Next(0, &s).Answer, "below every tier uses the first tier")
}

func TestEmptyBankFallsBack(t *testing.T) {
	b, err := ParseBank([]byte("tiers: []\n"))
	require.NoError(t, err)
	s := rng.New(1)
	q := b.Next(1, &s)
	assert.Equal(t, "number", q.Hint)

	b.Fallback = nil
	q = b.Next(1, &s)
	assert.True(t, Matches(q, "yes"))
}

func TestParseBankError(t *testing.T) {
	_, err := ParseBank([]byte("tiers: {"))
	assert.Error(t, err)
}
