// Package personalcode validates and parses Estonian personal identification
// codes (isikukood), format GYYMMDDSSSC.
package personalcode

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Length is the number of digits in a personal code.
const Length = 11

var (
	ErrInvalidFormat    = errors.New("personal code must be 11 digits with a valid century digit")
	ErrInvalidChecksum  = errors.New("personal code checksum mismatch")
	ErrInvalidBirthDate = errors.New("personal code birth date is not a calendar date")
	ErrBornInFuture     = errors.New("personal code birth date is in the future")
)

var (
	firstWeights  = [10]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 1}
	secondWeights = [10]int{3, 4, 5, 6, 7, 8, 9, 1, 2, 3}
)

// Sex encoded by the first digit.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Code is a parsed personal code.
type Code struct {
	raw       string
	birthDate time.Time
	sex       Sex
	serial    int
}

func (c Code) String() string       { return c.raw }
func (c Code) BirthDate() time.Time { return c.birthDate }
func (c Code) Sex() Sex             { return c.sex }
func (c Code) Serial() int          { return c.serial }

// Segment is the integer value of the last four digits.
func (c Code) Segment() int {
	seg, _ := strconv.Atoi(c.raw[Length-4:])
	return seg
}

// AgeAt returns whole years lived at t. Negative when t is before the birth date.
func (c Code) AgeAt(t time.Time) int {
	return YearsBetween(c.birthDate, t)
}

// Masked hides the serial and checksum, e.g. "503071*****".
func (c Code) Masked() string {
	return Mask(c.raw)
}

// Parse validates s and returns its structured form.
func Parse(s string) (Code, error) {
	digits, err := toDigits(s)
	if err != nil {
		return Code{}, err
	}

	century, sex, ok := centuryAndSex(digits[0])
	if !ok {
		return Code{}, ErrInvalidFormat
	}

	year := century + digits[1]*10 + digits[2]
	month := digits[3]*10 + digits[4]
	day := digits[5]*10 + digits[6]
	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birth.Year() != year || int(birth.Month()) != month || birth.Day() != day {
		return Code{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidBirthDate, year, month, day)
	}

	if checksum(digits) != digits[10] {
		return Code{}, ErrInvalidChecksum
	}

	return Code{
		raw:       s,
		birthDate: birth,
		sex:       sex,
		serial:    digits[7]*100 + digits[8]*10 + digits[9],
	}, nil
}

// IsValid reports whether s is a well-formed code with a valid checksum.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// BirthDate returns the birth date encoded in s.
func BirthDate(s string) (time.Time, error) {
	c, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return c.birthDate, nil
}

// Age returns the holder's age in whole years at now, along with the birth date.
func Age(s string, now time.Time) (int, time.Time, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, time.Time{}, err
	}
	if c.birthDate.After(now) {
		return 0, time.Time{}, ErrBornInFuture
	}
	return c.AgeAt(now), c.birthDate, nil
}

// Segment returns the integer value of the last four digits of s.
func Segment(s string) (int, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return c.Segment(), nil
}

// YearsBetween counts full years from 'from' to 'to'. Only calendar dates are compared.
func YearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// Mask keeps the first six characters of s and stars the rest.
func Mask(s string) string {
	const keep = 6
	if len(s) <= keep {
		return s
	}
	masked := []byte(s)
	for i := keep; i < len(masked); i++ {
		masked[i] = '*'
	}
	return string(masked)
}

func toDigits(s string) ([Length]int, error) {
	var digits [Length]int
	if len(s) != Length {
		return digits, ErrInvalidFormat
	}
	for i := 0; i < Length; i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return digits, ErrInvalidFormat
		}
		digits[i] = int(ch - '0')
	}
	return digits, nil
}

func centuryAndSex(g int) (int, Sex, bool) {
	if g < 1 || g > 8 {
		return 0, "", false
	}
	century := 1800 + ((g-1)/2)*100
	sex := SexFemale
	if g%2 == 1 {
		sex = SexMale
	}
	return century, sex, true
}

func checksum(digits [Length]int) int {
	if r := weightedMod(digits, firstWeights); r < 10 {
		return r
	}
	if r := weightedMod(digits, secondWeights); r < 10 {
		return r
	}
	return 0
}

func weightedMod(digits [Length]int, weights [10]int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	return sum % 11
}
