package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
)

const timestampLayout = "2006-01-02 15:04:05"

// rangeClause builds the WHERE clause for an optional inclusive date range.
// loCol is compared against the range start and hiCol against the range end.
// Daily and monthly reports use their single period column for both sides;
// weekly reports use start_date/end_date, which turns the full-range filter
// into a containment check: the report's own span must fit inside the query
// window, not merely overlap it.
func rangeClause(loCol, hiCol string, start, end *time.Time) (string, []interface{}) {
	switch {
	case start != nil && end != nil:
		return fmt.Sprintf(" WHERE %s >= $1 AND %s <= $2", loCol, hiCol), []interface{}{*start, *end}
	case start != nil:
		return fmt.Sprintf(" WHERE %s >= $1", loCol), []interface{}{*start}
	case end != nil:
		return fmt.Sprintf(" WHERE %s <= $1", hiCol), []interface{}{*end}
	default:
		return "", nil
	}
}

// encodeKeywordFrequency and encodeTrendAnalysis keep absent blobs as SQL
// NULL instead of the JSON literal null.
func encodeKeywordFrequency(freq map[string]int) (interface{}, error) {
	if freq == nil {
		return nil, nil
	}
	b, err := json.Marshal(freq)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func encodeTrendAnalysis(ta *biz.TrendAnalysis) (interface{}, error) {
	if ta == nil {
		return nil, nil
	}
	b, err := json.Marshal(ta)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func decodeKeywordFrequency(raw []byte) (map[string]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var freq map[string]int
	if err := json.Unmarshal(raw, &freq); err != nil {
		return nil, fmt.Errorf("malformed keyword_frequency blob: %w", err)
	}
	return freq, nil
}

func decodeTrendAnalysis(raw []byte) (*biz.TrendAnalysis, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var ta biz.TrendAnalysis
	if err := json.Unmarshal(raw, &ta); err != nil {
		return nil, fmt.Errorf("malformed trend_analysis blob: %w", err)
	}
	return &ta, nil
}

func reportNotFound() error {
	return errors.NotFound("REPORT_NOT_FOUND", "Report not found")
}

type dailyReportRepo struct {
	data *Data
	log  *log.Helper
}

func NewDailyReportRepo(data *Data, logger log.Logger) biz.DailyReportRepo {
	return &dailyReportRepo{data: data, log: log.NewHelper(logger)}
}

const dailyColumns = `id, date, total_buzz, company_positive, company_negative, company_inquiry,
	competitor_positive, competitor_negative, competitor_inquiry, keyword_frequency, created_at`

func scanDailyReport(row interface{ Scan(...interface{}) error }) (*biz.DailyReport, error) {
	var (
		r         biz.DailyReport
		date      time.Time
		createdAt time.Time
		rawFreq   []byte
	)
	if err := row.Scan(&r.ID, &date, &r.TotalBuzz,
		&r.CompanyPositive, &r.CompanyNegative, &r.CompanyInquiry,
		&r.CompetitorPositive, &r.CompetitorNegative, &r.CompetitorInquiry,
		&rawFreq, &createdAt); err != nil {
		return nil, err
	}
	freq, err := decodeKeywordFrequency(rawFreq)
	if err != nil {
		return nil, err
	}
	r.Date = date.Format(biz.DateLayout)
	r.CreatedAt = createdAt.Format(timestampLayout)
	r.KeywordFrequency = freq
	return &r, nil
}

func (r *dailyReportRepo) List(ctx context.Context, start, end *time.Time) ([]*biz.DailyReport, error) {
	clause, args := rangeClause("date", "date", start, end)
	query := `SELECT ` + dailyColumns + ` FROM daily_reports` + clause + ` ORDER BY date DESC`

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*biz.DailyReport, 0)
	for rows.Next() {
		report, err := scanDailyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *dailyReportRepo) Get(ctx context.Context, id string) (*biz.DailyReport, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT `+dailyColumns+` FROM daily_reports WHERE id = $1`, id)
	report, err := scanDailyReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reportNotFound()
		}
		return nil, err
	}
	return report, nil
}

func (r *dailyReportRepo) Create(ctx context.Context, in *biz.DailyReport) (*biz.DailyReport, error) {
	date, err := time.Parse(biz.DateLayout, in.Date)
	if err != nil {
		return nil, err
	}
	rawFreq, err := encodeKeywordFrequency(in.KeywordFrequency)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	createdAt := time.Now()
	if _, err := r.data.db.ExecContext(ctx, `
		INSERT INTO daily_reports (`+dailyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, date, in.TotalBuzz,
		in.CompanyPositive, in.CompanyNegative, in.CompanyInquiry,
		in.CompetitorPositive, in.CompetitorNegative, in.CompetitorInquiry,
		rawFreq, createdAt,
	); err != nil {
		return nil, err
	}

	out := *in
	out.ID = id
	out.Date = date.Format(biz.DateLayout)
	out.CreatedAt = createdAt.Format(timestampLayout)
	return &out, nil
}

type weeklyReportRepo struct {
	data *Data
	log  *log.Helper
}

func NewWeeklyReportRepo(data *Data, logger log.Logger) biz.WeeklyReportRepo {
	return &weeklyReportRepo{data: data, log: log.NewHelper(logger)}
}

const weeklyColumns = `id, start_date, end_date, total_buzz, company_positive, company_negative,
	company_inquiry, competitor_positive, competitor_negative, competitor_inquiry,
	entrepreneur_startup_mentions, business_closure_mentions, business_type_switch_mentions,
	keyword_frequency, trend_analysis, created_at`

func scanWeeklyReport(row interface{ Scan(...interface{}) error }) (*biz.WeeklyReport, error) {
	var (
		r         biz.WeeklyReport
		startDate time.Time
		endDate   time.Time
		createdAt time.Time
		rawFreq   []byte
		rawTrend  []byte
	)
	if err := row.Scan(&r.ID, &startDate, &endDate, &r.TotalBuzz,
		&r.CompanyPositive, &r.CompanyNegative, &r.CompanyInquiry,
		&r.CompetitorPositive, &r.CompetitorNegative, &r.CompetitorInquiry,
		&r.EntrepreneurStartupMentions, &r.BusinessClosureMentions, &r.BusinessTypeSwitchMentions,
		&rawFreq, &rawTrend, &createdAt); err != nil {
		return nil, err
	}
	freq, err := decodeKeywordFrequency(rawFreq)
	if err != nil {
		return nil, err
	}
	trend, err := decodeTrendAnalysis(rawTrend)
	if err != nil {
		return nil, err
	}
	r.StartDate = startDate.Format(biz.DateLayout)
	r.EndDate = endDate.Format(biz.DateLayout)
	r.CreatedAt = createdAt.Format(timestampLayout)
	r.KeywordFrequency = freq
	r.TrendAnalysis = trend
	return &r, nil
}

func (r *weeklyReportRepo) List(ctx context.Context, start, end *time.Time) ([]*biz.WeeklyReport, error) {
	clause, args := rangeClause("start_date", "end_date", start, end)
	query := `SELECT ` + weeklyColumns + ` FROM weekly_reports` + clause + ` ORDER BY start_date DESC`

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*biz.WeeklyReport, 0)
	for rows.Next() {
		report, err := scanWeeklyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *weeklyReportRepo) Get(ctx context.Context, id string) (*biz.WeeklyReport, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT `+weeklyColumns+` FROM weekly_reports WHERE id = $1`, id)
	report, err := scanWeeklyReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reportNotFound()
		}
		return nil, err
	}
	return report, nil
}

func (r *weeklyReportRepo) Create(ctx context.Context, in *biz.WeeklyReport) (*biz.WeeklyReport, error) {
	startDate, err := time.Parse(biz.DateLayout, in.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(biz.DateLayout, in.EndDate)
	if err != nil {
		return nil, err
	}
	rawFreq, err := encodeKeywordFrequency(in.KeywordFrequency)
	if err != nil {
		return nil, err
	}
	trend, err := encodeTrendAnalysis(in.TrendAnalysis)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	createdAt := time.Now()
	if _, err := r.data.db.ExecContext(ctx, `
		INSERT INTO weekly_reports (`+weeklyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		id, startDate, endDate, in.TotalBuzz,
		in.CompanyPositive, in.CompanyNegative, in.CompanyInquiry,
		in.CompetitorPositive, in.CompetitorNegative, in.CompetitorInquiry,
		in.EntrepreneurStartupMentions, in.BusinessClosureMentions, in.BusinessTypeSwitchMentions,
		rawFreq, trend, createdAt,
	); err != nil {
		return nil, err
	}

	out := *in
	out.ID = id
	out.StartDate = startDate.Format(biz.DateLayout)
	out.EndDate = endDate.Format(biz.DateLayout)
	out.CreatedAt = createdAt.Format(timestampLayout)
	return &out, nil
}

type monthlyReportRepo struct {
	data *Data
	log  *log.Helper
}

func NewMonthlyReportRepo(data *Data, logger log.Logger) biz.MonthlyReportRepo {
	return &monthlyReportRepo{data: data, log: log.NewHelper(logger)}
}

const monthlyColumns = `id, month, total_buzz, company_positive, company_negative, company_inquiry,
	competitor_positive, competitor_negative, competitor_inquiry,
	entrepreneur_startup_mentions, business_closure_mentions, business_type_switch_mentions,
	keyword_frequency, trend_analysis, created_at`

func scanMonthlyReport(row interface{ Scan(...interface{}) error }) (*biz.MonthlyReport, error) {
	var (
		r         biz.MonthlyReport
		month     time.Time
		createdAt time.Time
		rawFreq   []byte
		rawTrend  []byte
	)
	if err := row.Scan(&r.ID, &month, &r.TotalBuzz,
		&r.CompanyPositive, &r.CompanyNegative, &r.CompanyInquiry,
		&r.CompetitorPositive, &r.CompetitorNegative, &r.CompetitorInquiry,
		&r.EntrepreneurStartupMentions, &r.BusinessClosureMentions, &r.BusinessTypeSwitchMentions,
		&rawFreq, &rawTrend, &createdAt); err != nil {
		return nil, err
	}
	freq, err := decodeKeywordFrequency(rawFreq)
	if err != nil {
		return nil, err
	}
	trend, err := decodeTrendAnalysis(rawTrend)
	if err != nil {
		return nil, err
	}
	r.Month = month.Format(biz.DateLayout)
	r.CreatedAt = createdAt.Format(timestampLayout)
	r.KeywordFrequency = freq
	r.TrendAnalysis = trend
	return &r, nil
}

func (r *monthlyReportRepo) List(ctx context.Context, start, end *time.Time) ([]*biz.MonthlyReport, error) {
	clause, args := rangeClause("month", "month", start, end)
	query := `SELECT ` + monthlyColumns + ` FROM monthly_reports` + clause + ` ORDER BY month DESC`

	rows, err := r.data.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]*biz.MonthlyReport, 0)
	for rows.Next() {
		report, err := scanMonthlyReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *monthlyReportRepo) Get(ctx context.Context, id string) (*biz.MonthlyReport, error) {
	row := r.data.db.QueryRowContext(ctx,
		`SELECT `+monthlyColumns+` FROM monthly_reports WHERE id = $1`, id)
	report, err := scanMonthlyReport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, reportNotFound()
		}
		return nil, err
	}
	return report, nil
}

func (r *monthlyReportRepo) Create(ctx context.Context, in *biz.MonthlyReport) (*biz.MonthlyReport, error) {
	month, err := time.Parse(biz.DateLayout, in.Month)
	if err != nil {
		return nil, err
	}
	rawFreq, err := encodeKeywordFrequency(in.KeywordFrequency)
	if err != nil {
		return nil, err
	}
	trend, err := encodeTrendAnalysis(in.TrendAnalysis)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	createdAt := time.Now()
	if _, err := r.data.db.ExecContext(ctx, `
		INSERT INTO monthly_reports (`+monthlyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		id, month, in.TotalBuzz,
		in.CompanyPositive, in.CompanyNegative, in.CompanyInquiry,
		in.CompetitorPositive, in.CompetitorNegative, in.CompetitorInquiry,
		in.EntrepreneurStartupMentions, in.BusinessClosureMentions, in.BusinessTypeSwitchMentions,
		rawFreq, trend, createdAt,
	); err != nil {
		return nil, err
	}

	out := *in
	out.ID = id
	out.Month = month.Format(biz.DateLayout)
	out.CreatedAt = createdAt.Format(timestampLayout)
	return &out, nil
}
