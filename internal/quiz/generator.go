// Package quiz generates the arithmetic self-assessment shown on /test.
package quiz

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const maxAttempts = 1000

// Kind describes one family of questions. Operands holds an inclusive range per
// operand; Operations lists the operator characters to draw from.
type Kind struct {
	Name       string
	Operations string
	Operands   [][2]int
	ResultMax  int
}

var DefaultKinds = []Kind{
	{Name: "Addition and subtraction", Operations: "+-", Operands: [][2]int{{1, 50}, {1, 50}}, ResultMax: 100},
	{Name: "Multiplication table", Operations: "*", Operands: [][2]int{{2, 9}, {2, 9}}, ResultMax: 81},
	{Name: "Division", Operations: "/", Operands: [][2]int{{4, 81}, {2, 9}}, ResultMax: 40},
	{Name: "Order of operations", Operations: "+-*", Operands: [][2]int{{1, 20}, {1, 10}, {1, 10}}, ResultMax: 200},
}

type Question struct {
	ID     int    `json:"id"`
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Answer int    `json:"answer"`
}

var displaySymbols = map[string]string{
	"*": "×",
	"/": "÷",
}

func (k Kind) validate() error {
	if len(k.Operands) < 2 {
		return errors.Errorf("kind %q needs at least two operands", k.Name)
	}
	if k.Operations == "" {
		return errors.Errorf("kind %q has no operations", k.Name)
	}
	for _, op := range k.Operations {
		if !isOperator(string(op)) {
			return errors.Errorf("kind %q has unknown operation %q", k.Name, op)
		}
	}
	for _, r := range k.Operands {
		if r[0] > r[1] {
			return errors.Errorf("kind %q has an empty operand range %v", k.Name, r)
		}
	}
	return nil
}

type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewGeneratorWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate returns n questions, cycling through kinds.
func (g *Generator) Generate(kinds []Kind, n int) ([]Question, error) {
	if len(kinds) == 0 {
		return nil, errors.New("no question kinds given")
	}
	for _, k := range kinds {
		if err := k.validate(); err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := g.question(kinds[i%len(kinds)])
		if err != nil {
			return nil, err
		}
		q.ID = i + 1
		questions = append(questions, q)
	}
	return questions, nil
}

// question draws operands and operators until the expression evaluates to a
// positive integer within the kind's limit.
func (g *Generator) question(k Kind) (Question, error) {
	ops := []rune(k.Operations)
	tokens := make([]string, 0, len(k.Operands)*2-1)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		tokens = tokens[:0]
		for i, r := range k.Operands {
			if i > 0 {
				tokens = append(tokens, string(ops[g.rnd.Intn(len(ops))]))
			}
			tokens = append(tokens, strconv.Itoa(r[0]+g.rnd.Intn(r[1]-r[0]+1)))
		}

		answer, err := Evaluate(tokens)
		if err != nil || (k.ResultMax > 0 && answer > k.ResultMax) {
			continue
		}

		return Question{Kind: k.Name, Text: display(tokens), Answer: answer}, nil
	}

	return Question{}, errors.Errorf("kind %q: no valid question after %d attempts", k.Name, maxAttempts)
}

func display(tokens []string) string {
	parts := make([]string, 0, len(tokens)+2)
	for _, t := range tokens {
		if sym, ok := displaySymbols[t]; ok {
			t = sym
		}
		parts = append(parts, t)
	}
	parts = append(parts, "=", "?")
	return strings.Join(parts, " ")
}
