package commands

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// invalidCalculation is the user-visible result for any expression that
// cannot be evaluated. The reason is never surfaced.
const invalidCalculation = "Invalid calculation"

var disallowedChars = regexp.MustCompile(`[^0-9+\-*/().\s]`)

// Calculate evaluates a basic arithmetic expression and renders the result
// as "<input> = <value>". Characters outside digits, operators, parentheses
// and whitespace are stripped before evaluation; anything that still fails
// to parse yields "Invalid calculation".
func Calculate(input string) string {
	sanitized := disallowedChars.ReplaceAllString(input, "")

	value, err := evaluate(sanitized)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return invalidCalculation
	}

	return fmt.Sprintf("%s = %s", strings.TrimSpace(input), strconv.FormatFloat(value, 'f', -1, 64))
}

func evaluate(expression string) (float64, error) {
	p := &exprParser{input: []rune(expression)}
	value, err := p.parseSum()
	if err != nil {
		return 0, err
	}

	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character at position %d", p.pos)
	}
	return value, nil
}

// exprParser is a recursive descent parser with the usual precedence:
// parentheses and unary minus bind tightest, then multiplication and
// division, then addition and subtraction.
type exprParser struct {
	input []rune
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) peek() (rune, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *exprParser) parseSum() (float64, error) {
	value, err := p.parseProduct()
	if err != nil {
		return 0, err
	}

	for {
		op, ok := p.peek()
		if !ok || op != '+' && op != '-' {
			return value, nil
		}
		p.pos++

		rhs, err := p.parseProduct()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			value += rhs
		} else {
			value -= rhs
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		op, ok := p.peek()
		if !ok || op != '*' && op != '/' {
			return value, nil
		}
		p.pos++

		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			value *= rhs
		} else {
			value /= rhs
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	char, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	switch {
	case char == '-':
		p.pos++
		value, err := p.parseFactor()
		return -value, err

	case char == '(':
		p.pos++
		value, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if closing, ok := p.peek(); !ok || closing != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil

	case char >= '0' && char <= '9' || char == '.':
		return p.parseNumber()
	}

	return 0, fmt.Errorf("unexpected character %q", char)
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}

	value, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, nil
}
