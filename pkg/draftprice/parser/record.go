package parser

import (
	"errors"
	"strconv"
	"strings"
)

// RecordSeparator separates wins from losses in a record cell.
const RecordSeparator = " - "

var errNoSeparator = errors.New("expected \"<wins> - <losses>\"")

// ParseRecord parses a "<wins> - <losses>" tally.
// Tokens after the second are ignored; negative values are returned as-is.
func ParseRecord(s string) (wins, losses int, err error) {
	parts := strings.Split(s, RecordSeparator)
	if len(parts) < 2 {
		return 0, 0, &FormatError{Field: "record", Value: s, Err: errNoSeparator}
	}

	wins, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &FormatError{Field: "record", Value: s, Err: err}
	}
	losses, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &FormatError{Field: "record", Value: s, Err: err}
	}
	return wins, losses, nil
}
