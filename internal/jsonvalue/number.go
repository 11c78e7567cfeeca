package jsonvalue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type invalidNumberError struct {
	literal string
}

func (e *invalidNumberError) Error() string {
	return fmt.Sprintf("jsonvalue: invalid number literal %q", e.literal)
}

func (e *invalidNumberError) Is(target error) bool {
	return target == ErrInvalidNumber
}

func isRangeError(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// numberParts splits a JSON number literal into its grammar pieces.
type numberParts struct {
	negative bool
	integer  string
	fraction string
	exponent string // optional sign and digits
}

func splitNumber(literal string) (numberParts, bool) {
	var p numberParts
	s := literal

	if strings.HasPrefix(s, "-") {
		p.negative = true
		s = s[1:]
	}

	n := leadingDigits(s)
	if n == 0 || (n > 1 && s[0] == '0') {
		return numberParts{}, false
	}
	p.integer, s = s[:n], s[n:]

	if strings.HasPrefix(s, ".") {
		s = s[1:]
		n = leadingDigits(s)
		if n == 0 {
			return numberParts{}, false
		}
		p.fraction, s = s[:n], s[n:]
	}

	if len(s) > 0 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		sign := ""
		if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
			sign, s = s[:1], s[1:]
		}
		n = leadingDigits(s)
		if n == 0 {
			return numberParts{}, false
		}
		p.exponent, s = sign+s[:n], s[n:]
	}

	if s != "" {
		return numberParts{}, false
	}
	return p, true
}

func leadingDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func validNumber(literal string) bool {
	_, ok := splitNumber(literal)
	return ok
}

// decimal is a number reduced to sign, significant digits and a base-10
// exponent. Two literals denote the same value iff their decimals are equal.
type decimal struct {
	negative bool
	digits   string
	exponent int64
}

func canonicalDecimal(literal string) (decimal, bool) {
	p, ok := splitNumber(literal)
	if !ok {
		return decimal{}, false
	}

	var exp int64
	if p.exponent != "" {
		e, err := strconv.ParseInt(p.exponent, 10, 64)
		if err != nil {
			return decimal{}, false
		}
		exp = e
	}
	if exp < -(1<<62) || exp > 1<<62 {
		return decimal{}, false
	}

	digits := strings.TrimLeft(p.integer+p.fraction, "0")
	exp -= int64(len(p.fraction))
	if digits == "" {
		// every zero is the same value, whatever its sign or exponent
		return decimal{}, true
	}

	trimmed := strings.TrimRight(digits, "0")
	exp += int64(len(digits) - len(trimmed))

	return decimal{negative: p.negative, digits: trimmed, exponent: exp}, true
}

// numbersEqual compares two number literals by exact value.
func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	da, okA := canonicalDecimal(a)
	db, okB := canonicalDecimal(b)
	if !okA || !okB {
		return false
	}
	return da == db
}
