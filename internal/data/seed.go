package data

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
	"github.com/modu-soho/buzz_dashboard/internal/conf"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed seed_profile.yaml
var seedProfileYAML []byte

type seedKeyword struct {
	Name   string `yaml:"name"`
	Base   int    `yaml:"base"`
	Spread int    `yaml:"spread"`
}

type seedAdmin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type seedProfile struct {
	Admin           seedAdmin     `yaml:"admin"`
	Keywords        []seedKeyword `yaml:"keywords"`
	ExtraKeywords   []seedKeyword `yaml:"extra_keywords"`
	MonthlyKeywords []seedKeyword `yaml:"monthly_keywords"`
	WeeklyTopics    []string      `yaml:"weekly_topics"`
	MonthlyTopics   []string      `yaml:"monthly_topics"`
	WeeklyInsights  []string      `yaml:"weekly_insights"`
	MonthlyInsights []string      `yaml:"monthly_insights"`
}

// Seeder fills empty report tables with synthetic demo data and makes sure a
// default admin account exists. Tables that already hold rows are left alone.
type Seeder struct {
	daily   biz.DailyReportRepo
	weekly  biz.WeeklyReportRepo
	monthly biz.MonthlyReportRepo
	users   biz.UserRepo
	conf    *conf.Seed
	log     *log.Helper
	rng     *rand.Rand
}

func NewSeeder(daily biz.DailyReportRepo, weekly biz.WeeklyReportRepo, monthly biz.MonthlyReportRepo,
	users biz.UserRepo, c *conf.Seed, logger log.Logger) *Seeder {
	return &Seeder{
		daily:   daily,
		weekly:  weekly,
		monthly: monthly,
		users:   users,
		conf:    c,
		log:     log.NewHelper(logger),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	if s.conf == nil || !s.conf.Enabled {
		s.log.Info("seeding disabled")
		return nil
	}

	var profile seedProfile
	if err := yaml.Unmarshal(seedProfileYAML, &profile); err != nil {
		return fmt.Errorf("failed to parse seed profile: %w", err)
	}

	if err := s.ensureAdmin(ctx, profile.Admin); err != nil {
		return err
	}
	if err := s.seedDaily(ctx, &profile); err != nil {
		return err
	}
	if err := s.seedWeekly(ctx, &profile); err != nil {
		return err
	}
	return s.seedMonthly(ctx, &profile)
}

func (s *Seeder) ensureAdmin(ctx context.Context, admin seedAdmin) error {
	if _, err := s.users.GetByEmail(ctx, admin.Email); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.users.Create(ctx, &biz.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: string(hashed),
		Role:         biz.RoleAdmin,
	}); err != nil {
		return err
	}
	s.log.Infof("seeded admin user %s", admin.Email)
	return nil
}

// sentimentSplit mirrors the demo distribution: 30-70% positive, 10-40%
// negative, the remainder inquiry, with the competitor shifted slightly
// toward negative.
func (s *Seeder) sentimentSplit(buzz int) (cp, cn, ci, tp, tn, ti int) {
	positive := s.rng.Float64()*0.4 + 0.3
	negative := s.rng.Float64()*0.3 + 0.1
	inquiry := 1 - positive - negative

	cp = int(float64(buzz) * positive)
	cn = int(float64(buzz) * negative)
	ci = int(float64(buzz) * inquiry)
	tp = int(float64(buzz) * positive * 0.7)
	tn = int(float64(buzz) * negative * 1.2)
	ti = int(float64(buzz) * inquiry * 0.9)
	return
}

func (s *Seeder) keywordFrequency(pools [][]seedKeyword, scale int) map[string]int {
	freq := make(map[string]int)
	for _, pool := range pools {
		for _, kw := range pool {
			freq[kw.Name] = (s.rng.Intn(kw.Spread+1) + kw.Base) * scale
		}
	}
	return freq
}

func (s *Seeder) trendAnalysis(topics, insights []string) *biz.TrendAnalysis {
	sentiments := make(map[string]float64, len(topics))
	for _, topic := range topics {
		sentiments[topic] = s.rng.Float64() * 100
	}
	return &biz.TrendAnalysis{
		Topics:     topics,
		Sentiments: sentiments,
		Insights:   insights,
	}
}

func (s *Seeder) seedDaily(ctx context.Context, profile *seedProfile) error {
	existing, err := s.daily.List(ctx, nil, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now()
	for i := 0; i < 30; i++ {
		date := today.AddDate(0, 0, -i)
		buzz := s.rng.Intn(1000) + 500
		cp, cn, ci, tp, tn, ti := s.sentimentSplit(buzz)

		freq := s.keywordFrequency([][]seedKeyword{profile.Keywords}, 1)
		// Periodic promotions show up as trending keywords.
		if date.Day()%5 == 0 {
			freq["프로모션"] = s.rng.Intn(61) + 40
		}
		if date.Day()%7 == 0 {
			freq["신제품"] = s.rng.Intn(81) + 30
		}

		if _, err := s.daily.Create(ctx, &biz.DailyReport{
			Date:               date.Format(biz.DateLayout),
			TotalBuzz:          buzz,
			CompanyPositive:    cp,
			CompanyNegative:    cn,
			CompanyInquiry:     ci,
			CompetitorPositive: tp,
			CompetitorNegative: tn,
			CompetitorInquiry:  ti,
			KeywordFrequency:   freq,
		}); err != nil {
			return err
		}
	}
	s.log.Info("seeded 30 daily reports")
	return nil
}

func (s *Seeder) seedWeekly(ctx context.Context, profile *seedProfile) error {
	existing, err := s.weekly.List(ctx, nil, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now()
	for i := 0; i < 8; i++ {
		end := today.AddDate(0, 0, -i*7)
		start := end.AddDate(0, 0, -6)
		buzz := s.rng.Intn(5000) + 3000
		cp, cn, ci, tp, tn, ti := s.sentimentSplit(buzz)

		if _, err := s.weekly.Create(ctx, &biz.WeeklyReport{
			StartDate:                   start.Format(biz.DateLayout),
			EndDate:                     end.Format(biz.DateLayout),
			TotalBuzz:                   buzz,
			CompanyPositive:             cp,
			CompanyNegative:             cn,
			CompanyInquiry:              ci,
			CompetitorPositive:          tp,
			CompetitorNegative:          tn,
			CompetitorInquiry:           ti,
			EntrepreneurStartupMentions: int(float64(buzz) * (s.rng.Float64()*0.1 + 0.05)),
			BusinessClosureMentions:     int(float64(buzz) * (s.rng.Float64()*0.05 + 0.02)),
			BusinessTypeSwitchMentions:  int(float64(buzz) * (s.rng.Float64()*0.04 + 0.01)),
			KeywordFrequency:            s.keywordFrequency([][]seedKeyword{profile.Keywords, profile.ExtraKeywords}, 6),
			TrendAnalysis:               s.trendAnalysis(profile.WeeklyTopics, profile.WeeklyInsights),
		}); err != nil {
			return err
		}
	}
	s.log.Info("seeded 8 weekly reports")
	return nil
}

func (s *Seeder) seedMonthly(ctx context.Context, profile *seedProfile) error {
	existing, err := s.monthly.List(ctx, nil, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	for i := 0; i < 12; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		buzz := s.rng.Intn(20000) + 10000
		cp, cn, ci, tp, tn, ti := s.sentimentSplit(buzz)

		if _, err := s.monthly.Create(ctx, &biz.MonthlyReport{
			Month:                       month.Format(biz.DateLayout),
			TotalBuzz:                   buzz,
			CompanyPositive:             cp,
			CompanyNegative:             cn,
			CompanyInquiry:              ci,
			CompetitorPositive:          tp,
			CompetitorNegative:          tn,
			CompetitorInquiry:           ti,
			EntrepreneurStartupMentions: int(float64(buzz) * (s.rng.Float64()*0.1 + 0.05)),
			BusinessClosureMentions:     int(float64(buzz) * (s.rng.Float64()*0.05 + 0.02)),
			BusinessTypeSwitchMentions:  int(float64(buzz) * (s.rng.Float64()*0.04 + 0.01)),
			KeywordFrequency:            s.keywordFrequency([][]seedKeyword{profile.Keywords, profile.ExtraKeywords, profile.MonthlyKeywords}, 25),
			TrendAnalysis:               s.trendAnalysis(profile.MonthlyTopics, profile.MonthlyInsights),
		}); err != nil {
			return err
		}
	}
	s.log.Info("seeded 12 monthly reports")
	return nil
}
