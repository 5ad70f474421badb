package personalcode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PersonalCodeSuite struct {
	suite.Suite
	now time.Time
}

func TestPersonalCodeSuite(t *testing.T) {
	suite.Run(t, new(PersonalCodeSuite))
}

func (s *PersonalCodeSuite) SetupTest() {
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

// =============================================================================
// Parse
// =============================================================================

func (s *PersonalCodeSuite) TestParse() {
	s.Run("valid code exposes birth date, sex and serial", func() {
		c, err := Parse("50307172740")
		s.Require().NoError(err)
		s.Equal(time.Date(2003, 7, 17, 0, 0, 0, 0, time.UTC), c.BirthDate())
		s.Equal(SexMale, c.Sex())
		s.Equal(274, c.Serial())
		s.Equal(2740, c.Segment())
		s.Equal("50307172740", c.String())
	})

	s.Run("checksum resolved by second weight set", func() {
		c, err := Parse("38411266610")
		s.Require().NoError(err)
		s.Equal(1984, c.BirthDate().Year())
	})

	s.Run("century digits", func() {
		tests := []struct {
			code string
			year int
			sex  Sex
		}{
			{"37605030299", 1976, SexMale},
			{"35006069515", 1950, SexMale},
			{"51001015876", 2010, SexMale},
			{"34001014839", 1940, SexMale},
		}
		for _, tt := range tests {
			c, err := Parse(tt.code)
			s.Require().NoError(err, tt.code)
			s.Equal(tt.year, c.BirthDate().Year(), tt.code)
			s.Equal(tt.sex, c.Sex(), tt.code)
		}
	})

	s.Run("rejects malformed input", func() {
		for _, in := range []string{"", "123", "3760503029", "376050302999", "3760503029a", "97605030299", "07605030299"} {
			_, err := Parse(in)
			s.ErrorIs(err, ErrInvalidFormat, in)
		}
	})

	s.Run("rejects impossible calendar date", func() {
		_, err := Parse("37602300000")
		s.ErrorIs(err, ErrInvalidBirthDate)
	})

	s.Run("rejects checksum mismatch", func() {
		_, err := Parse("37605030298")
		s.ErrorIs(err, ErrInvalidChecksum)
		_, err = Parse("12345678901")
		s.Error(err)
	})
}

// =============================================================================
// Age and derived values
// =============================================================================

func (s *PersonalCodeSuite) TestAge() {
	s.Run("counts whole years", func() {
		age, birth, err := Age("50307172740", s.now)
		s.Require().NoError(err)
		s.Equal(20, age)
		s.Equal(2003, birth.Year())
	})

	s.Run("birthday on the day counts", func() {
		age, _, err := Age("50307172740", time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.Equal(21, age)
	})

	s.Run("birth date after now is an error", func() {
		_, _, err := Age("63001010002", s.now)
		s.ErrorIs(err, ErrBornInFuture)
	})

	s.Run("invalid code propagates parse error", func() {
		_, _, err := Age("12345678901", s.now)
		s.Error(err)
	})
}

func (s *PersonalCodeSuite) TestHelpers() {
	s.True(IsValid("37605030299"))
	s.False(IsValid("37605030298"))

	seg, err := Segment("37605030299")
	s.Require().NoError(err)
	s.Equal(299, seg)

	birth, err := BirthDate("35006069515")
	s.Require().NoError(err)
	s.Equal(time.Date(1950, 6, 6, 0, 0, 0, 0, time.UTC), birth)

	_, err = Segment("bogus")
	s.ErrorIs(err, ErrInvalidFormat)
}

func TestYearsBetween(t *testing.T) {
	birth := time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 84, YearsBetween(birth, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 88, YearsBetween(birth, time.Date(2028, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 83, YearsBetween(birth, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, YearsBetween(birth, time.Date(1939, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "503071*****", Mask("50307172740"))
	assert.Equal(t, "abc", Mask("abc"))

	c, err := Parse("50307172740")
	require.NoError(t, err)
	assert.Equal(t, "503071*****", c.Masked())
}
