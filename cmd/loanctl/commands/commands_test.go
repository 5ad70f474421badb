package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decidePayload struct {
	LoanAmount   *int    `json:"loanAmount"`
	LoanPeriod   *int    `json:"loanPeriod"`
	ErrorMessage *string `json:"errorMessage"`
	Outcome      string  `json:"outcome"`
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeDecision(t *testing.T, out string) decidePayload {
	t.Helper()
	var p decidePayload
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	return p
}

func TestDecideCommand(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		out, err := execute(t, "decide", "--date", "2024-06-01",
			"--code", "38411266610", "--amount", "2000", "--period", "24")
		require.NoError(t, err)

		p := decodeDecision(t, out)
		require.NotNil(t, p.LoanAmount)
		assert.Equal(t, 7200, *p.LoanAmount)
		assert.Equal(t, 24, *p.LoanPeriod)
		assert.Nil(t, p.ErrorMessage)
		assert.Equal(t, "approved", p.Outcome)
	})

	t.Run("period suggestion only", func(t *testing.T) {
		out, err := execute(t, "decide", "--date", "2024-06-01",
			"--code", "50307172740", "--amount", "4000", "--period", "12")
		require.NoError(t, err)

		p := decodeDecision(t, out)
		assert.Nil(t, p.LoanAmount)
		require.NotNil(t, p.LoanPeriod)
		assert.Equal(t, 42, *p.LoanPeriod)
		require.NotNil(t, p.ErrorMessage)
		assert.Equal(t, "No valid loan found!", *p.ErrorMessage)
		assert.Equal(t, "rejected", p.Outcome)
	})

	t.Run("country flag selects age policy", func(t *testing.T) {
		_, err := execute(t, "decide", "--date", "2024-06-01",
			"--code", "34001014839", "--amount", "2000", "--period", "24")
		require.Error(t, err)

		out, err := execute(t, "decide", "--date", "2024-06-01", "--country", "latvia",
			"--code", "34001014839", "--amount", "2000", "--period", "24")
		require.NoError(t, err)
		assert.Equal(t, 2400, *decodeDecision(t, out).LoanAmount)
	})

	t.Run("validation error exits non-zero", func(t *testing.T) {
		out, err := execute(t, "decide", "--date", "2024-06-01",
			"--code", "37605030298", "--amount", "2000", "--period", "24")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "E1001")

		p := decodeDecision(t, out)
		require.NotNil(t, p.ErrorMessage)
		assert.Equal(t, "Invalid personal ID code!", *p.ErrorMessage)
	})

	t.Run("config file switches search floor", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "loanengine.yaml")
		require.NoError(t, os.WriteFile(path, []byte("engine:\n  search_floor: amount\n"), 0o600))

		out, err := execute(t, "decide", "--config", path, "--date", "2024-06-01",
			"--code", "50307172740", "--amount", "4000", "--period", "12")
		require.NoError(t, err)

		p := decodeDecision(t, out)
		assert.Equal(t, 2000, *p.LoanAmount)
		assert.Equal(t, 42, *p.LoanPeriod)
		assert.Equal(t, "counter_offer", p.Outcome)
	})

	t.Run("missing flags", func(t *testing.T) {
		_, err := execute(t, "decide", "--code", "50307172740")
		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := execute(t, "decide", "--date", "01/06/2024",
			"--code", "50307172740", "--amount", "4000", "--period", "12")
		assert.ErrorContains(t, err, "invalid --date")
	})
}

func TestCodeCommand(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		out, err := execute(t, "code", "50307172740", "--date", "2024-06-01")
		require.NoError(t, err)

		var got codeOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.True(t, got.Valid)
		assert.Equal(t, "2003-07-17", got.BirthDate)
		assert.Equal(t, "male", got.Sex)
		require.NotNil(t, got.Age)
		assert.Equal(t, 20, *got.Age)
		require.NotNil(t, got.Segment)
		assert.Equal(t, 2740, *got.Segment)
	})

	t.Run("bad checksum", func(t *testing.T) {
		out, err := execute(t, "code", "37605030298")
		require.ErrorIs(t, err, errInvalidCode)
		assert.Contains(t, out, `"valid": false`)
	})

	t.Run("requires one argument", func(t *testing.T) {
		_, err := execute(t, "code")
		assert.Error(t, err)
	})
}
