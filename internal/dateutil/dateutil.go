// Package dateutil turns user-friendly timestamp formats such as
// "MMMM DD, YYYY hh:mm A" into Go layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength bounds user-supplied formats.
const MaxDateFormatLength = 50

const (
	// DefaultTitleFormat renders as "March 05, 2026 02:07 PM".
	DefaultTitleFormat = "MMMM DD, YYYY hh:mm A"
	// DefaultHistoryFormat renders as "02:07:09 PM – March 05, 2026".
	DefaultHistoryFormat = "hh:mm:ss A – MMMM DD, YYYY"
)

// tokens maps format tokens to layout fragments. Longer tokens come first
// so the replacer prefers MMMM over MM at the same position. Tokens are
// case-sensitive: MM is the month, mm the minute.
var tokens = strings.NewReplacer(
	"YYYY", "2006",
	"MMMM", "January",
	"MMM", "Jan",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"ss", "05",
	"M", "1",
	"D", "2",
	"h", "3",
	"A", "PM",
)

// DatePresets are named shortcuts accepted wherever a format is.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"title":    DefaultTitleFormat,
	"history":  DefaultHistoryFormat,
}

// ParseDateFormat converts format to a Go layout. Text inside brackets is
// kept literally: "[at]" stays "at".
func ParseDateFormat(format string) (string, error) {
	switch {
	case format == "":
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	case len(format) > MaxDateFormatLength:
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	rest, offset := format, 0
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			layout.WriteString(tokens.Replace(rest))
			break
		}
		layout.WriteString(tokens.Replace(rest[:open]))

		closing := strings.IndexByte(rest[open+1:], ']')
		if closing < 0 {
			return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, offset+open)
		}
		layout.WriteString(rest[open+1 : open+1+closing])

		consumed := open + closing + 2
		rest, offset = rest[consumed:], offset+consumed
	}
	return layout.String(), nil
}

// Format renders t with a format or preset name.
func Format(format string, t time.Time) (string, error) {
	layout, err := ParseDateFormat(presetOr(format))
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Validate reports whether format can be used with Format.
func Validate(format string) error {
	_, err := ParseDateFormat(presetOr(format))
	return err
}

func presetOr(format string) string {
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		return preset
	}
	return format
}
