package transcript

import (
	"regexp"
	"strconv"
)

// CHAT encodes ages as ISO-8601-like durations: P2Y3M10D. The day
// component is optional.
var ageRe = regexp.MustCompile(`^P(\d+)Y(\d+)M?(\d?\d?)D?`)

// Months converts a CHAT age string to total months. Days above 15
// round up to the next month. A missing or malformed day component is
// tolerated; a string that does not match the pattern at all reports
// ok=false.
func Months(age string) (int, bool) {
	m := ageRe.FindStringSubmatch(age)
	if m == nil {
		return 0, false
	}

	years, _ := strconv.Atoi(m[1])
	months, _ := strconv.Atoi(m[2])
	total := years*12 + months

	if days, err := strconv.Atoi(m[3]); err == nil && days > 15 {
		total++
	}

	return total, true
}

// Age returns the target child's raw age string, if the transcript
// carries one.
func (t *Transcript) Age() (string, bool) {
	age, ok := t.Participants.Get(SpeakerChild, "age")
	if !ok || age == "" {
		return "", false
	}

	return age, true
}

// AgeMonths returns the target child's age in months, if present and
// parseable.
func (t *Transcript) AgeMonths() (int, bool) {
	age, ok := t.Age()
	if !ok {
		return 0, false
	}

	return Months(age)
}
