package data

import (
	"testing"
	"time"

	"github.com/modu-soho/buzz_dashboard/internal/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) *time.Time {
	t, err := time.Parse(biz.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRangeClauseBothBounds(t *testing.T) {
	clause, args := rangeClause("date", "date", day("2024-01-01"), day("2024-01-31"))

	assert.Equal(t, " WHERE date >= $1 AND date <= $2", clause)
	require.Len(t, args, 2)
	assert.Equal(t, *day("2024-01-01"), args[0])
	assert.Equal(t, *day("2024-01-31"), args[1])
}

func TestRangeClauseStartOnly(t *testing.T) {
	clause, args := rangeClause("date", "date", day("2024-01-01"), nil)

	assert.Equal(t, " WHERE date >= $1", clause)
	assert.Len(t, args, 1)
}

func TestRangeClauseEndOnly(t *testing.T) {
	clause, args := rangeClause("date", "date", nil, day("2024-01-31"))

	assert.Equal(t, " WHERE date <= $1", clause)
	assert.Len(t, args, 1)
}

func TestRangeClauseNoBounds(t *testing.T) {
	clause, args := rangeClause("date", "date", nil, nil)

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

// The weekly filter compares start_date against the range start and end_date
// against the range end, so a report's span must sit fully inside the query
// window. A window narrower than the span excludes the report.
func TestRangeClauseWeeklyContainment(t *testing.T) {
	clause, _ := rangeClause("start_date", "end_date", day("2024-01-02"), day("2024-01-06"))
	assert.Equal(t, " WHERE start_date >= $1 AND end_date <= $2", clause)

	span := struct{ start, end time.Time }{*day("2024-01-01"), *day("2024-01-07")}

	narrow := struct{ start, end time.Time }{*day("2024-01-02"), *day("2024-01-06")}
	contained := !span.start.Before(narrow.start) && !span.end.After(narrow.end)
	assert.False(t, contained, "a 7-day span must not match a 5-day window")

	wide := struct{ start, end time.Time }{*day("2023-12-25"), *day("2024-01-10")}
	contained = !span.start.Before(wide.start) && !span.end.After(wide.end)
	assert.True(t, contained, "a 7-day span must match an enclosing window")
}

func TestRangeClauseEndOnlyUsesHighColumn(t *testing.T) {
	clause, _ := rangeClause("start_date", "end_date", nil, day("2024-01-31"))
	assert.Equal(t, " WHERE end_date <= $1", clause)
}

func TestDecodeKeywordFrequency(t *testing.T) {
	freq, err := decodeKeywordFrequency([]byte(`{"제품": 42, "가격": 7}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"제품": 42, "가격": 7}, freq)
}

func TestDecodeKeywordFrequencyNull(t *testing.T) {
	freq, err := decodeKeywordFrequency(nil)
	require.NoError(t, err)
	assert.Nil(t, freq)
}

func TestDecodeKeywordFrequencyMalformed(t *testing.T) {
	_, err := decodeKeywordFrequency([]byte(`{"제품": "lots"}`))
	assert.Error(t, err)
}

func TestDecodeTrendAnalysis(t *testing.T) {
	raw := []byte(`{"topics":["시장 동향"],"sentiments":{"시장 동향":71.5},"insights":["x"]}`)

	ta, err := decodeTrendAnalysis(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"시장 동향"}, ta.Topics)
	assert.InDelta(t, 71.5, ta.Sentiments["시장 동향"], 0.001)
}

func TestDecodeTrendAnalysisNull(t *testing.T) {
	ta, err := decodeTrendAnalysis(nil)
	require.NoError(t, err)
	assert.Nil(t, ta)
}

func TestEncodeKeywordFrequencyNilStaysNull(t *testing.T) {
	v, err := encodeKeywordFrequency(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = encodeKeywordFrequency(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(v.([]byte)))
}

func TestEncodeTrendAnalysisNilStaysNull(t *testing.T) {
	v, err := encodeTrendAnalysis(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}
