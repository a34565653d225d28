package algebra

import "strconv"

// TokenError is an error indicating a token that cannot appear where the
// parser found it. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the offending token text.
	Token string
	// Expect describes what the parser expected instead, e.g. "a number,
	// variable, or (".
	Expect string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Token)+", expected "+err.Expect)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an unmatched parenthesis in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position at which the mismatch was detected.
	Col int
	// Left is the opening parenthesis, or the empty string if a close
	// parenthesis appeared with no matching open.
	Left string
	// Right is the closing parenthesis, or the empty string if the input
	// ended with an open parenthesis pending.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty or truncated
// expression, e.g. empty input or a trailing operator. It implements
// InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string
	// at end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*TokenError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
