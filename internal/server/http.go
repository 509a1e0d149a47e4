package server

import (
	"embed"
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/modu-soho/buzz_dashboard/internal/conf"
	"github.com/modu-soho/buzz_dashboard/internal/service"
)

//go:embed assets/*
var assets embed.FS

// messageErrorEncoder renders every handler error as {"message": "..."}
// with the error's HTTP status, so nothing escapes to the client unrendered.
func messageErrorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	code := int(se.Code)
	if code < 100 || code > 599 {
		code = nethttp.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": se.Message})
}

func NewHTTPServer(c *conf.Server, ac *conf.Auth, s *service.DashboardService, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
		),
		khttp.ErrorEncoder(messageErrorEncoder),
	}
	if c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, khttp.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, khttp.Timeout(d))
			}
		}
	}

	srv := khttp.NewServer(opts...)

	var apiFilters []khttp.FilterFunc
	if c.Limit != nil && c.Limit.Qps > 0 {
		apiFilters = append(apiFilters, RateLimit(int(c.Limit.Qps), int(c.Limit.Burst)))
	}

	jwtKey := ""
	if ac != nil {
		jwtKey = ac.JwtKey
	}
	auth := JWTAuth(jwtKey)

	api := srv.Route("/api", apiFilters...)
	api.POST("/auth/register", s.Register)
	api.POST("/auth/login", s.Login)
	api.GET("/auth/profile", s.Profile, auth)

	reports := srv.Route("/api/reports", append(apiFilters, auth)...)
	// Summary routes must register before the {id} routes so the literal
	// segment wins the mux match.
	reports.GET("/daily/summary", s.DailySummary)
	reports.GET("/daily", s.ListDailyReports)
	reports.GET("/daily/{id}", s.GetDailyReport)
	reports.POST("/daily", s.CreateDailyReport, RequireAdmin())

	reports.GET("/weekly/summary", s.WeeklySummary)
	reports.GET("/weekly", s.ListWeeklyReports)
	reports.GET("/weekly/{id}", s.GetWeeklyReport)
	reports.POST("/weekly", s.CreateWeeklyReport, RequireAdmin())

	reports.GET("/monthly/summary", s.MonthlySummary)
	reports.GET("/monthly", s.ListMonthlyReports)
	reports.GET("/monthly/{id}", s.GetMonthlyReport)
	reports.POST("/monthly", s.CreateMonthlyReport, RequireAdmin())

	// Serve the static dashboard shell.
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/" {
			content, _ := assets.ReadFile("assets/index.html")
			w.Write(content)
			return
		}
	})

	srv.HandleFunc("/dashboard", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		content, _ := assets.ReadFile("assets/dashboard.html")
		w.Write(content)
	})

	return srv
}
