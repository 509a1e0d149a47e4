package biz

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
)

// mockDailyRepo records the bounds it was called with.
type mockDailyRepo struct {
	reports []*DailyReport
	called  bool
	start   *time.Time
	end     *time.Time
	created *DailyReport
}

func (m *mockDailyRepo) List(ctx context.Context, start, end *time.Time) ([]*DailyReport, error) {
	m.called = true
	m.start, m.end = start, end
	return m.reports, nil
}

func (m *mockDailyRepo) Get(ctx context.Context, id string) (*DailyReport, error) {
	for _, r := range m.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NotFound("REPORT_NOT_FOUND", "Report not found")
}

func (m *mockDailyRepo) Create(ctx context.Context, r *DailyReport) (*DailyReport, error) {
	m.created = r
	out := *r
	out.ID = "generated-id"
	return &out, nil
}

type mockWeeklyRepo struct {
	reports []*WeeklyReport
	created *WeeklyReport
}

func (m *mockWeeklyRepo) List(ctx context.Context, start, end *time.Time) ([]*WeeklyReport, error) {
	return m.reports, nil
}

func (m *mockWeeklyRepo) Get(ctx context.Context, id string) (*WeeklyReport, error) {
	return nil, errors.NotFound("REPORT_NOT_FOUND", "Report not found")
}

func (m *mockWeeklyRepo) Create(ctx context.Context, r *WeeklyReport) (*WeeklyReport, error) {
	m.created = r
	return r, nil
}

type mockMonthlyRepo struct{}

func (m *mockMonthlyRepo) List(ctx context.Context, start, end *time.Time) ([]*MonthlyReport, error) {
	return []*MonthlyReport{}, nil
}

func (m *mockMonthlyRepo) Get(ctx context.Context, id string) (*MonthlyReport, error) {
	return nil, errors.NotFound("REPORT_NOT_FOUND", "Report not found")
}

func (m *mockMonthlyRepo) Create(ctx context.Context, r *MonthlyReport) (*MonthlyReport, error) {
	return r, nil
}

func newTestUseCase(daily *mockDailyRepo, weekly *mockWeeklyRepo) *ReportUseCase {
	if daily == nil {
		daily = &mockDailyRepo{}
	}
	if weekly == nil {
		weekly = &mockWeeklyRepo{}
	}
	return NewReportUseCase(daily, weekly, &mockMonthlyRepo{}, log.DefaultLogger)
}

func TestListDailyOrdering(t *testing.T) {
	repo := &mockDailyRepo{reports: []*DailyReport{
		{ID: "2", Date: "2024-01-02", TotalBuzz: 200},
		{ID: "1", Date: "2024-01-01", TotalBuzz: 100},
	}}
	uc := newTestUseCase(repo, nil)

	reports, err := uc.ListDaily(context.Background(), "2024-01-01", "2024-01-02")
	if err != nil {
		t.Fatalf("ListDaily() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("ListDaily() len = %d, want 2", len(reports))
	}
	if reports[0].Date != "2024-01-02" || reports[1].Date != "2024-01-01" {
		t.Errorf("ListDaily() order = [%s, %s], want [2024-01-02, 2024-01-01]", reports[0].Date, reports[1].Date)
	}
	if repo.start == nil || repo.end == nil {
		t.Error("ListDaily() did not pass both bounds to the repo")
	}
}

func TestListDailyEmptyRange(t *testing.T) {
	repo := &mockDailyRepo{reports: []*DailyReport{{ID: "1", Date: "2024-01-01"}}}
	uc := newTestUseCase(repo, nil)

	reports, err := uc.ListDaily(context.Background(), "2024-02-01", "2024-01-01")
	if err != nil {
		t.Fatalf("ListDaily() error = %v, want empty result", err)
	}
	if len(reports) != 0 {
		t.Errorf("ListDaily() len = %d, want 0", len(reports))
	}
	if repo.called {
		t.Error("ListDaily() hit the repo for an inverted range")
	}
}

func TestListDailyNoFilter(t *testing.T) {
	repo := &mockDailyRepo{}
	uc := newTestUseCase(repo, nil)

	if _, err := uc.ListDaily(context.Background(), "", ""); err != nil {
		t.Fatalf("ListDaily() error = %v", err)
	}
	if repo.start != nil || repo.end != nil {
		t.Error("ListDaily() passed bounds for an unfiltered query")
	}
}

func TestListDailyInvalidDate(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.ListDaily(context.Background(), "01/02/2024", "")
	if !errors.IsBadRequest(err) {
		t.Errorf("ListDaily() error = %v, want BadRequest", err)
	}
}

func TestGetDailyNotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.GetDaily(context.Background(), "missing")
	if !errors.IsNotFound(err) {
		t.Errorf("GetDaily() error = %v, want NotFound", err)
	}
}

func TestCreateDaily(t *testing.T) {
	repo := &mockDailyRepo{}
	uc := newTestUseCase(repo, nil)

	report, err := uc.CreateDaily(context.Background(), &DailyReport{
		Date:            "2024-01-01",
		TotalBuzz:       100,
		CompanyPositive: 40,
	})
	if err != nil {
		t.Fatalf("CreateDaily() error = %v", err)
	}
	if report.ID != "generated-id" {
		t.Errorf("CreateDaily() id = %q, want server-assigned", report.ID)
	}
}

func TestCreateDailyRejectsNegativeCounter(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.CreateDaily(context.Background(), &DailyReport{
		Date:            "2024-01-01",
		CompanyNegative: -1,
	})
	if !errors.IsBadRequest(err) {
		t.Errorf("CreateDaily() error = %v, want BadRequest", err)
	}
}

func TestCreateDailyRejectsNegativeKeywordCount(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.CreateDaily(context.Background(), &DailyReport{
		Date:             "2024-01-01",
		KeywordFrequency: map[string]int{"a": -5},
	})
	if !errors.IsBadRequest(err) {
		t.Errorf("CreateDaily() error = %v, want BadRequest", err)
	}
}

func TestCreateDailyRejectsBadDate(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.CreateDaily(context.Background(), &DailyReport{Date: "not-a-date"})
	if !errors.IsBadRequest(err) {
		t.Errorf("CreateDaily() error = %v, want BadRequest", err)
	}
}

func TestCreateWeeklyRejectsInvertedSpan(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.CreateWeekly(context.Background(), &WeeklyReport{
		StartDate: "2024-01-07",
		EndDate:   "2024-01-01",
	})
	if !errors.IsBadRequest(err) {
		t.Errorf("CreateWeekly() error = %v, want BadRequest", err)
	}
}

func TestCreateWeekly(t *testing.T) {
	repo := &mockWeeklyRepo{}
	uc := newTestUseCase(nil, repo)

	_, err := uc.CreateWeekly(context.Background(), &WeeklyReport{
		StartDate:                   "2024-01-01",
		EndDate:                     "2024-01-07",
		TotalBuzz:                   5000,
		EntrepreneurStartupMentions: 250,
	})
	if err != nil {
		t.Fatalf("CreateWeekly() error = %v", err)
	}
	if repo.created == nil {
		t.Fatal("CreateWeekly() did not reach the repo")
	}
}

func TestListMonthlyEmptyResult(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	reports, err := uc.ListMonthly(context.Background(), "2024-01-01", "2024-06-01")
	if err != nil {
		t.Fatalf("ListMonthly() error = %v", err)
	}
	if reports == nil || len(reports) != 0 {
		t.Errorf("ListMonthly() = %v, want empty non-nil slice", reports)
	}
}
