package quiz

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrMalformed   = errors.New("malformed expression")
	ErrNotPositive = errors.New("result is not positive")
	ErrIndivisible = errors.New("division leaves a remainder")
)

var precedence = map[string]int{
	"+": 1,
	"-": 1,
	"*": 2,
	"/": 2,
}

func isOperator(token string) bool {
	_, ok := precedence[token]
	return ok
}

// Evaluate computes an infix expression given as tokens, e.g. ["2", "+", "3", "*", "4"].
// Every intermediate result must stay a positive integer.
func Evaluate(tokens []string) (int, error) {
	postfix, err := toPostfix(tokens)
	if err != nil {
		return 0, err
	}
	return evalPostfix(postfix)
}

// toPostfix is the shunting-yard conversion.
func toPostfix(tokens []string) ([]string, error) {
	output := make([]string, 0, len(tokens))
	stack := make([]string, 0)

	for _, token := range tokens {
		if _, err := strconv.Atoi(token); err == nil {
			output = append(output, token)
			continue
		}

		switch {
		case token == "(":
			stack = append(stack, token)

		case token == ")":
			closed := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == "(" {
					closed = true
					break
				}
				output = append(output, top)
			}
			if !closed {
				return nil, errors.Wrap(ErrMalformed, "unbalanced parenthesis")
			}

		case isOperator(token):
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == "(" || precedence[token] > precedence[top] {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, token)

		default:
			return nil, errors.Wrapf(ErrMalformed, "unexpected token %q", token)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == "(" {
			return nil, errors.Wrap(ErrMalformed, "unbalanced parenthesis")
		}
		output = append(output, top)
	}

	return output, nil
}

func evalPostfix(postfix []string) (int, error) {
	if len(postfix) == 0 {
		return 0, errors.Wrap(ErrMalformed, "empty expression")
	}

	stack := make([]int, 0, len(postfix))
	for _, token := range postfix {
		if n, err := strconv.Atoi(token); err == nil {
			stack = append(stack, n)
			continue
		}

		if len(stack) < 2 {
			return 0, errors.Wrapf(ErrMalformed, "operator %q is missing an operand", token)
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		res, err := apply(a, b, token)
		if err != nil {
			return 0, err
		}
		stack = append(stack, res)
	}

	if len(stack) != 1 {
		return 0, errors.Wrap(ErrMalformed, "dangling operand")
	}
	return stack[0], nil
}

func apply(a, b int, op string) (int, error) {
	var res int
	switch op {
	case "+":
		res = a + b
	case "-":
		res = a - b
	case "*":
		res = a * b
	case "/":
		if b == 0 || a%b != 0 {
			return 0, errors.Wrapf(ErrIndivisible, "%d / %d", a, b)
		}
		res = a / b
	default:
		return 0, errors.Wrapf(ErrMalformed, "unknown operator %q", op)
	}

	if res <= 0 {
		return 0, errors.Wrapf(ErrNotPositive, "%d %s %d = %d", a, op, b, res)
	}
	return res, nil
}
