package game

import "errors"

// Input and submission errors. All of them are recoverable: the round is
// left as it was, apart from the message set for ErrNotInDictionary.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrIncompleteGuess = errors.New("incomplete guess")
	ErrNotInDictionary = errors.New("not in word list")
	ErrRoundOver       = errors.New("round over")
)
