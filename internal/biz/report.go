package biz

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// DateLayout is the wire format for all period fields.
const DateLayout = "2006-01-02"

// TrendAnalysis is a report's narrative summary: discussed topics, a
// 0-100 sentiment score per topic, and free-text insights.
type TrendAnalysis struct {
	Topics     []string           `json:"topics"`
	Sentiments map[string]float64 `json:"sentiments"`
	Insights   []string           `json:"insights"`
}

// DailyReport aggregates one calendar day of buzz.
type DailyReport struct {
	ID                 string         `json:"id"`
	Date               string         `json:"date"`
	TotalBuzz          int            `json:"totalBuzz"`
	CompanyPositive    int            `json:"companyPositive"`
	CompanyNegative    int            `json:"companyNegative"`
	CompanyInquiry     int            `json:"companyInquiry"`
	CompetitorPositive int            `json:"competitorPositive"`
	CompetitorNegative int            `json:"competitorNegative"`
	CompetitorInquiry  int            `json:"competitorInquiry"`
	KeywordFrequency   map[string]int `json:"keywordFrequency,omitempty"`
	CreatedAt          string         `json:"createdAt"`
}

// WeeklyReport aggregates one week of buzz, nominally a 7-day span.
type WeeklyReport struct {
	ID                          string         `json:"id"`
	StartDate                   string         `json:"startDate"`
	EndDate                     string         `json:"endDate"`
	TotalBuzz                   int            `json:"totalBuzz"`
	CompanyPositive             int            `json:"companyPositive"`
	CompanyNegative             int            `json:"companyNegative"`
	CompanyInquiry              int            `json:"companyInquiry"`
	CompetitorPositive          int            `json:"competitorPositive"`
	CompetitorNegative          int            `json:"competitorNegative"`
	CompetitorInquiry           int            `json:"competitorInquiry"`
	EntrepreneurStartupMentions int            `json:"entrepreneurStartupMentions"`
	BusinessClosureMentions     int            `json:"businessClosureMentions"`
	BusinessTypeSwitchMentions  int            `json:"businessTypeSwitchMentions"`
	KeywordFrequency            map[string]int `json:"keywordFrequency,omitempty"`
	TrendAnalysis               *TrendAnalysis `json:"trendAnalysis,omitempty"`
	CreatedAt                   string         `json:"createdAt"`
}

// MonthlyReport aggregates one calendar month of buzz. Month holds the
// first day of the month.
type MonthlyReport struct {
	ID                          string         `json:"id"`
	Month                       string         `json:"month"`
	TotalBuzz                   int            `json:"totalBuzz"`
	CompanyPositive             int            `json:"companyPositive"`
	CompanyNegative             int            `json:"companyNegative"`
	CompanyInquiry              int            `json:"companyInquiry"`
	CompetitorPositive          int            `json:"competitorPositive"`
	CompetitorNegative          int            `json:"competitorNegative"`
	CompetitorInquiry           int            `json:"competitorInquiry"`
	EntrepreneurStartupMentions int            `json:"entrepreneurStartupMentions"`
	BusinessClosureMentions     int            `json:"businessClosureMentions"`
	BusinessTypeSwitchMentions  int            `json:"businessTypeSwitchMentions"`
	KeywordFrequency            map[string]int `json:"keywordFrequency,omitempty"`
	TrendAnalysis               *TrendAnalysis `json:"trendAnalysis,omitempty"`
	CreatedAt                   string         `json:"createdAt"`
}

type DailyReportRepo interface {
	List(ctx context.Context, start, end *time.Time) ([]*DailyReport, error)
	Get(ctx context.Context, id string) (*DailyReport, error)
	Create(ctx context.Context, r *DailyReport) (*DailyReport, error)
}

type WeeklyReportRepo interface {
	// List filters by span containment: a report matches a full range only
	// when its own start and end both fall inside the requested window.
	List(ctx context.Context, start, end *time.Time) ([]*WeeklyReport, error)
	Get(ctx context.Context, id string) (*WeeklyReport, error)
	Create(ctx context.Context, r *WeeklyReport) (*WeeklyReport, error)
}

type MonthlyReportRepo interface {
	List(ctx context.Context, start, end *time.Time) ([]*MonthlyReport, error)
	Get(ctx context.Context, id string) (*MonthlyReport, error)
	Create(ctx context.Context, r *MonthlyReport) (*MonthlyReport, error)
}

// ReportUseCase exposes range-filtered retrieval and creation for the three
// report granularities.
type ReportUseCase struct {
	daily   DailyReportRepo
	weekly  WeeklyReportRepo
	monthly MonthlyReportRepo
	log     *log.Helper
}

func NewReportUseCase(daily DailyReportRepo, weekly WeeklyReportRepo, monthly MonthlyReportRepo, logger log.Logger) *ReportUseCase {
	return &ReportUseCase{
		daily:   daily,
		weekly:  weekly,
		monthly: monthly,
		log:     log.NewHelper(logger),
	}
}

// parseRange turns optional ISO date strings into time bounds. An empty
// string means the bound is absent. An inverted range (start after end) sets
// empty, which callers short-circuit into an empty result rather than an error.
func parseRange(startStr, endStr string) (start, end *time.Time, empty bool, err error) {
	if startStr != "" {
		t, perr := time.Parse(DateLayout, startStr)
		if perr != nil {
			return nil, nil, false, errors.BadRequest("INVALID_DATE", fmt.Sprintf("invalid startDate %q, expected YYYY-MM-DD", startStr))
		}
		start = &t
	}
	if endStr != "" {
		t, perr := time.Parse(DateLayout, endStr)
		if perr != nil {
			return nil, nil, false, errors.BadRequest("INVALID_DATE", fmt.Sprintf("invalid endDate %q, expected YYYY-MM-DD", endStr))
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, true, nil
	}
	return start, end, false, nil
}

func (uc *ReportUseCase) ListDaily(ctx context.Context, startStr, endStr string) ([]*DailyReport, error) {
	start, end, empty, err := parseRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*DailyReport{}, nil
	}
	return uc.daily.List(ctx, start, end)
}

func (uc *ReportUseCase) GetDaily(ctx context.Context, id string) (*DailyReport, error) {
	return uc.daily.Get(ctx, id)
}

func (uc *ReportUseCase) CreateDaily(ctx context.Context, r *DailyReport) (*DailyReport, error) {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return nil, errors.BadRequest("REPORT_INVALID", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", r.Date))
	}
	if err := checkCounters(map[string]int{
		"totalBuzz":          r.TotalBuzz,
		"companyPositive":    r.CompanyPositive,
		"companyNegative":    r.CompanyNegative,
		"companyInquiry":     r.CompanyInquiry,
		"competitorPositive": r.CompetitorPositive,
		"competitorNegative": r.CompetitorNegative,
		"competitorInquiry":  r.CompetitorInquiry,
	}); err != nil {
		return nil, err
	}
	if err := checkKeywordFrequency(r.KeywordFrequency); err != nil {
		return nil, err
	}
	return uc.daily.Create(ctx, r)
}

func (uc *ReportUseCase) ListWeekly(ctx context.Context, startStr, endStr string) ([]*WeeklyReport, error) {
	start, end, empty, err := parseRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*WeeklyReport{}, nil
	}
	return uc.weekly.List(ctx, start, end)
}

func (uc *ReportUseCase) GetWeekly(ctx context.Context, id string) (*WeeklyReport, error) {
	return uc.weekly.Get(ctx, id)
}

func (uc *ReportUseCase) CreateWeekly(ctx context.Context, r *WeeklyReport) (*WeeklyReport, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return nil, errors.BadRequest("REPORT_INVALID", fmt.Sprintf("invalid startDate %q, expected YYYY-MM-DD", r.StartDate))
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return nil, errors.BadRequest("REPORT_INVALID", fmt.Sprintf("invalid endDate %q, expected YYYY-MM-DD", r.EndDate))
	}
	if end.Before(start) {
		return nil, errors.BadRequest("REPORT_INVALID", "endDate must not precede startDate")
	}
	if err := checkCounters(map[string]int{
		"totalBuzz":                   r.TotalBuzz,
		"companyPositive":             r.CompanyPositive,
		"companyNegative":             r.CompanyNegative,
		"companyInquiry":              r.CompanyInquiry,
		"competitorPositive":          r.CompetitorPositive,
		"competitorNegative":          r.CompetitorNegative,
		"competitorInquiry":           r.CompetitorInquiry,
		"entrepreneurStartupMentions": r.EntrepreneurStartupMentions,
		"businessClosureMentions":     r.BusinessClosureMentions,
		"businessTypeSwitchMentions":  r.BusinessTypeSwitchMentions,
	}); err != nil {
		return nil, err
	}
	if err := checkKeywordFrequency(r.KeywordFrequency); err != nil {
		return nil, err
	}
	return uc.weekly.Create(ctx, r)
}

func (uc *ReportUseCase) ListMonthly(ctx context.Context, startStr, endStr string) ([]*MonthlyReport, error) {
	start, end, empty, err := parseRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if empty {
		return []*MonthlyReport{}, nil
	}
	return uc.monthly.List(ctx, start, end)
}

func (uc *ReportUseCase) GetMonthly(ctx context.Context, id string) (*MonthlyReport, error) {
	return uc.monthly.Get(ctx, id)
}

func (uc *ReportUseCase) CreateMonthly(ctx context.Context, r *MonthlyReport) (*MonthlyReport, error) {
	if _, err := time.Parse(DateLayout, r.Month); err != nil {
		return nil, errors.BadRequest("REPORT_INVALID", fmt.Sprintf("invalid month %q, expected YYYY-MM-DD", r.Month))
	}
	if err := checkCounters(map[string]int{
		"totalBuzz":                   r.TotalBuzz,
		"companyPositive":             r.CompanyPositive,
		"companyNegative":             r.CompanyNegative,
		"companyInquiry":              r.CompanyInquiry,
		"competitorPositive":          r.CompetitorPositive,
		"competitorNegative":          r.CompetitorNegative,
		"competitorInquiry":           r.CompetitorInquiry,
		"entrepreneurStartupMentions": r.EntrepreneurStartupMentions,
		"businessClosureMentions":     r.BusinessClosureMentions,
		"businessTypeSwitchMentions":  r.BusinessTypeSwitchMentions,
	}); err != nil {
		return nil, err
	}
	if err := checkKeywordFrequency(r.KeywordFrequency); err != nil {
		return nil, err
	}
	return uc.monthly.Create(ctx, r)
}

func checkCounters(counters map[string]int) error {
	for name, v := range counters {
		if v < 0 {
			return errors.BadRequest("REPORT_INVALID", fmt.Sprintf("%s must not be negative", name))
		}
	}
	return nil
}

func checkKeywordFrequency(freq map[string]int) error {
	for kw, count := range freq {
		if count < 0 {
			return errors.BadRequest("REPORT_INVALID", fmt.Sprintf("keyword %q has a negative count", kw))
		}
	}
	return nil
}
