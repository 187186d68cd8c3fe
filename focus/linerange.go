package focus

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/oligo/gvfocus"
)

var lineRangePattern = regexp.MustCompile(`^\s*(\d+)\s*-\s*(\d+)\s*$`)

// ParseLineRange parses a "start-end" range of 1-based, inclusive line
// numbers typed by the user, and returns it 0-based. Input that does not
// fit in a document of lineCount lines is rejected with a *RangeInputError,
// never clamped.
func ParseLineRange(input string, lineCount int) (gvfocus.FocusRange, error) {
	reject := func(msg string) (gvfocus.FocusRange, error) {
		return gvfocus.FocusRange{}, &RangeInputError{Input: input, Msg: msg}
	}

	if strings.TrimSpace(input) == "" {
		return reject("Please enter a line range")
	}

	match := lineRangePattern.FindStringSubmatch(input)
	if match == nil {
		return reject(`Invalid format. Use "startLine-endLine" (e.g., "5-15")`)
	}

	start, end := atoi(match[1]), atoi(match[2])
	if start < 1 || end < 1 {
		return reject("Line numbers must be greater than 0")
	}
	if start > end {
		return reject("Start line must be less than or equal to end line")
	}
	if end > lineCount {
		return reject(fmt.Sprintf("End line cannot exceed document length (%d)", lineCount))
	}

	return gvfocus.FocusRange{Start: start - 1, End: end - 1}, nil
}

// atoi parses a string of digits, saturating instead of overflowing.
func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
