package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Room numbers follow block conventions like "A-101", "B2-305" or
// "C 12": a block label (letters, optionally with a wing digit)
// followed by the room digits. The last two digits of the number are
// the sequence on the floor, anything before them is the floor.
var (
	roomNoRe = regexp.MustCompile(`^([A-Za-z]+\d*?)[\s#-]*(\d+)$`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// ParsedRoomNumber holds the structured data parsed from a room number.
type ParsedRoomNumber struct {
	Block string
	Floor int
	Seq   int
}

// ParseRoomNumber extracts block, floor and sequence from a raw room
// number string. Room numbers are free-form at registration time, so
// callers must tolerate an error and fall back to the literal value.
func ParseRoomNumber(raw string) (ParsedRoomNumber, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))

	m := roomNoRe.FindStringSubmatch(s)
	if m == nil {
		return ParsedRoomNumber{}, fmt.Errorf("unable to parse room number: %q", raw)
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return ParsedRoomNumber{}, fmt.Errorf("unable to parse room number: %q", raw)
	}

	// "101" -> floor 1, seq 1; "1203" -> floor 12, seq 3.
	// One- and two-digit numbers have no floor component.
	return ParsedRoomNumber{
		Block: strings.ToUpper(m[1]),
		Floor: n / 100,
		Seq:   n % 100,
	}, nil
}
