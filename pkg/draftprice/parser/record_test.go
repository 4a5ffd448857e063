package parser

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		input  string
		wins   int
		losses int
	}{
		{"5 - 3", 5, 3},
		{"0 - 0", 0, 0},
		{"12 - 1", 12, 1},
		{"1 - 2 - 3", 1, 2},
		{"+4 - 0", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			wins, losses, err := ParseRecord(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wins, wins)
			assert.Equal(t, tt.losses, losses)
		})
	}
}

func TestParseRecordTotalIsWinsPlusLosses(t *testing.T) {
	for w := 0; w < 20; w += 3 {
		for l := 0; l < 20; l += 4 {
			wins, losses, err := ParseRecord(strconv.Itoa(w) + " - " + strconv.Itoa(l))
			require.NoError(t, err)
			assert.Equal(t, w, wins)
			assert.Equal(t, w+l, wins+losses)
		}
	}
}

func TestParseRecordInvalid(t *testing.T) {
	tests := []string{
		"abc - 3",
		"3 - abc",
		"5-3",
		"5 -3",
		"",
		"5",
		" 5 - 3",
		"5 - 3 ",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseRecord(input)
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "record", fe.Field)
			assert.Equal(t, input, fe.Value)
		})
	}
}
