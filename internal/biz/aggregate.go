package biz

import "sort"

// Aggregation helpers folding an already-filtered report list into
// chart-ready structures. All functions are pure; empty input yields empty
// but valid output.

// TopKeywordLimit caps the ranked keyword list rendered by the word cloud.
const TopKeywordLimit = 50

// KeywordCount is one entry of the ranked keyword list.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SentimentTotals holds the 3-category sums for one subject.
type SentimentTotals struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Inquiry  int `json:"inquiry"`
}

// SeriesPoint is one (period label, value) pair of a time series.
type SeriesPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ReportMetrics is the granularity-independent view of a report that the
// aggregation helpers consume.
type ReportMetrics struct {
	Label              string
	TotalBuzz          int
	CompanyPositive    int
	CompanyNegative    int
	CompanyInquiry     int
	CompetitorPositive int
	CompetitorNegative int
	CompetitorInquiry  int
	KeywordFrequency   map[string]int
}

// Summary is the aggregate a dashboard renders for one report list.
type Summary struct {
	ReportCount int             `json:"reportCount"`
	TotalBuzz   int             `json:"totalBuzz"`
	Company     SentimentTotals `json:"company"`
	Competitor  SentimentTotals `json:"competitor"`
	TopKeywords []KeywordCount  `json:"topKeywords"`
	BuzzSeries  []SeriesPoint   `json:"buzzSeries"`
}

// Metrics projects a daily report for aggregation, labelled by its date.
func (r *DailyReport) Metrics() ReportMetrics {
	return ReportMetrics{
		Label:              r.Date,
		TotalBuzz:          r.TotalBuzz,
		CompanyPositive:    r.CompanyPositive,
		CompanyNegative:    r.CompanyNegative,
		CompanyInquiry:     r.CompanyInquiry,
		CompetitorPositive: r.CompetitorPositive,
		CompetitorNegative: r.CompetitorNegative,
		CompetitorInquiry:  r.CompetitorInquiry,
		KeywordFrequency:   r.KeywordFrequency,
	}
}

// Metrics projects a weekly report for aggregation, labelled by its start date.
func (r *WeeklyReport) Metrics() ReportMetrics {
	return ReportMetrics{
		Label:              r.StartDate,
		TotalBuzz:          r.TotalBuzz,
		CompanyPositive:    r.CompanyPositive,
		CompanyNegative:    r.CompanyNegative,
		CompanyInquiry:     r.CompanyInquiry,
		CompetitorPositive: r.CompetitorPositive,
		CompetitorNegative: r.CompetitorNegative,
		CompetitorInquiry:  r.CompetitorInquiry,
		KeywordFrequency:   r.KeywordFrequency,
	}
}

// Metrics projects a monthly report for aggregation, labelled by its month.
func (r *MonthlyReport) Metrics() ReportMetrics {
	return ReportMetrics{
		Label:              r.Month,
		TotalBuzz:          r.TotalBuzz,
		CompanyPositive:    r.CompanyPositive,
		CompanyNegative:    r.CompanyNegative,
		CompanyInquiry:     r.CompanyInquiry,
		CompetitorPositive: r.CompetitorPositive,
		CompetitorNegative: r.CompetitorNegative,
		CompetitorInquiry:  r.CompetitorInquiry,
		KeywordFrequency:   r.KeywordFrequency,
	}
}

// MergeKeywordFrequencies adds up per-report keyword counts into one map.
// Reports without a keyword map are skipped; the merge is additive, so the
// order of the input maps never changes the result.
func MergeKeywordFrequencies(freqs ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, freq := range freqs {
		for kw, count := range freq {
			merged[kw] += count
		}
	}
	return merged
}

// TopKeywords ranks a merged frequency map descending by count and truncates
// to n entries. Ties break on the keyword string so repeated runs over the
// same input produce the same list.
func TopKeywords(merged map[string]int, n int) []KeywordCount {
	ranked := make([]KeywordCount, 0, len(merged))
	for kw, count := range merged {
		ranked = append(ranked, KeywordCount{Keyword: kw, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summarize folds a report list into sentiment totals, a ranked keyword list
// and a buzz time series. The series keeps the input order, which is period
// descending when the list comes from the query service.
func Summarize(reports []ReportMetrics, topN int) *Summary {
	s := &Summary{
		ReportCount: len(reports),
		BuzzSeries:  make([]SeriesPoint, 0, len(reports)),
	}
	freqs := make([]map[string]int, 0, len(reports))
	for _, r := range reports {
		s.TotalBuzz += r.TotalBuzz
		s.Company.Positive += r.CompanyPositive
		s.Company.Negative += r.CompanyNegative
		s.Company.Inquiry += r.CompanyInquiry
		s.Competitor.Positive += r.CompetitorPositive
		s.Competitor.Negative += r.CompetitorNegative
		s.Competitor.Inquiry += r.CompetitorInquiry
		s.BuzzSeries = append(s.BuzzSeries, SeriesPoint{Label: r.Label, Value: r.TotalBuzz})
		if r.KeywordFrequency != nil {
			freqs = append(freqs, r.KeywordFrequency)
		}
	}
	s.TopKeywords = TopKeywords(MergeKeywordFrequencies(freqs...), topN)
	return s
}
