package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsRe = regexp.MustCompile(`\d+`)
	isoRe    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dmyRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ParseSheetDate normalizes a date cell to DD/MM/YYYY. Three shapes are
// recognized: GViz-serialized "Date(y,m,d)" objects (month is 0-based),
// ISO YYYY-MM-DD, and already-formatted D/M/YYYY. Anything else is
// returned unchanged so garbled cells stay visible rather than being
// silently blanked.
func ParseSheetDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "Date(") {
		parts := digitsRe.FindAllString(s, -1)
		if len(parts) >= 3 {
			y := parts[0]
			m, _ := strconv.Atoi(parts[1])
			d, _ := strconv.Atoi(parts[2])
			return fmt.Sprintf("%02d/%02d/%s", d, m+1, y)
		}
	}

	if isoRe.MatchString(s) {
		p := strings.Split(s, "-")
		return fmt.Sprintf("%s/%s/%s", p[2], p[1], p[0])
	}

	if m := dmyRe.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d/%02d/%s", d, mo, m[3])
	}

	return s
}

// ToInputDate converts a DD/MM/YYYY display date into the YYYY-MM-DD
// shape used by form inputs. Returns "" for anything unconvertible.
func ToInputDate(display string) string {
	display = strings.TrimSpace(display)
	if display == "" {
		return ""
	}
	if strings.Contains(display, "/") {
		p := strings.Split(display, "/")
		if len(p) == 3 {
			return fmt.Sprintf("%s-%s-%s", p[2], pad2(p[1]), pad2(p[0]))
		}
	}
	if isoRe.MatchString(display) {
		return display
	}
	return ""
}

// ToDisplayDate converts YYYY-MM-DD back to DD/MM/YYYY, passing through
// anything that is not ISO-shaped.
func ToDisplayDate(input string) string {
	if !strings.Contains(input, "-") {
		return input
	}
	p := strings.Split(input, "-")
	if len(p) != 3 {
		return input
	}
	return fmt.Sprintf("%s/%s/%s", p[2], p[1], p[0])
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
