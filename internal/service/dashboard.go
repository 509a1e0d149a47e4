package service

import (
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	http "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
)

// DashboardService exposes the auth and report HTTP endpoints.
type DashboardService struct {
	ucUser   *biz.UserUseCase
	ucReport *biz.ReportUseCase
	log      *log.Helper
}

func NewDashboardService(ucUser *biz.UserUseCase, ucReport *biz.ReportUseCase, logger log.Logger) *DashboardService {
	return &DashboardService{
		ucUser:   ucUser,
		ucReport: ucReport,
		log:      log.NewHelper(logger),
	}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userReply struct {
	Message string    `json:"message,omitempty"`
	User    *biz.User `json:"user"`
}

type loginReply struct {
	Token string    `json:"token"`
	User  *biz.User `json:"user"`
}

func (s *DashboardService) Register(ctx http.Context) error {
	var req registerReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	u, err := s.ucUser.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(201, &userReply{Message: "User registered successfully", User: u})
}

func (s *DashboardService) Login(ctx http.Context) error {
	var req loginReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	token, u, err := s.ucUser.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return ctx.Result(200, &loginReply{Token: token, User: u})
}

func (s *DashboardService) Profile(ctx http.Context) error {
	p, ok := biz.PrincipalFromContext(ctx)
	if !ok {
		return errors.Unauthorized("AUTH_REQUIRED", "Authentication required")
	}
	u, err := s.ucUser.Profile(ctx, p.Email)
	if err != nil {
		return err
	}
	return ctx.Result(200, &userReply{User: u})
}

type dailyListReply struct {
	Reports []*biz.DailyReport `json:"reports"`
}

type dailyReply struct {
	Report *biz.DailyReport `json:"report"`
}

type createDailyReply struct {
	Message string           `json:"message"`
	Report  *biz.DailyReport `json:"report"`
}

func (s *DashboardService) ListDailyReports(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListDaily(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &dailyListReply{Reports: reports})
}

func (s *DashboardService) GetDailyReport(ctx http.Context) error {
	report, err := s.ucReport.GetDaily(ctx, ctx.Vars().Get("id"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &dailyReply{Report: report})
}

func (s *DashboardService) CreateDailyReport(ctx http.Context) error {
	var req biz.DailyReport
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	report, err := s.ucReport.CreateDaily(ctx, &req)
	if err != nil {
		return err
	}
	return ctx.Result(201, &createDailyReply{Message: "Daily report created successfully", Report: report})
}

func (s *DashboardService) DailySummary(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListDaily(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	metrics := make([]biz.ReportMetrics, 0, len(reports))
	for _, r := range reports {
		metrics = append(metrics, r.Metrics())
	}
	return ctx.Result(200, biz.Summarize(metrics, biz.TopKeywordLimit))
}

type weeklyListReply struct {
	Reports []*biz.WeeklyReport `json:"reports"`
}

type weeklyReply struct {
	Report *biz.WeeklyReport `json:"report"`
}

type createWeeklyReply struct {
	Message string            `json:"message"`
	Report  *biz.WeeklyReport `json:"report"`
}

func (s *DashboardService) ListWeeklyReports(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListWeekly(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &weeklyListReply{Reports: reports})
}

func (s *DashboardService) GetWeeklyReport(ctx http.Context) error {
	report, err := s.ucReport.GetWeekly(ctx, ctx.Vars().Get("id"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &weeklyReply{Report: report})
}

func (s *DashboardService) CreateWeeklyReport(ctx http.Context) error {
	var req biz.WeeklyReport
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	report, err := s.ucReport.CreateWeekly(ctx, &req)
	if err != nil {
		return err
	}
	return ctx.Result(201, &createWeeklyReply{Message: "Weekly report created successfully", Report: report})
}

func (s *DashboardService) WeeklySummary(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListWeekly(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	metrics := make([]biz.ReportMetrics, 0, len(reports))
	for _, r := range reports {
		metrics = append(metrics, r.Metrics())
	}
	return ctx.Result(200, biz.Summarize(metrics, biz.TopKeywordLimit))
}

type monthlyListReply struct {
	Reports []*biz.MonthlyReport `json:"reports"`
}

type monthlyReply struct {
	Report *biz.MonthlyReport `json:"report"`
}

type createMonthlyReply struct {
	Message string             `json:"message"`
	Report  *biz.MonthlyReport `json:"report"`
}

func (s *DashboardService) ListMonthlyReports(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListMonthly(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &monthlyListReply{Reports: reports})
}

func (s *DashboardService) GetMonthlyReport(ctx http.Context) error {
	report, err := s.ucReport.GetMonthly(ctx, ctx.Vars().Get("id"))
	if err != nil {
		return err
	}
	return ctx.Result(200, &monthlyReply{Report: report})
}

func (s *DashboardService) CreateMonthlyReport(ctx http.Context) error {
	var req biz.MonthlyReport
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	report, err := s.ucReport.CreateMonthly(ctx, &req)
	if err != nil {
		return err
	}
	return ctx.Result(201, &createMonthlyReply{Message: "Monthly report created successfully", Report: report})
}

func (s *DashboardService) MonthlySummary(ctx http.Context) error {
	q := ctx.Query()
	reports, err := s.ucReport.ListMonthly(ctx, q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return err
	}
	metrics := make([]biz.ReportMetrics, 0, len(reports))
	for _, r := range reports {
		metrics = append(metrics, r.Metrics())
	}
	return ctx.Result(200, biz.Summarize(metrics, biz.TopKeywordLimit))
}
