package data

import (
	"database/sql"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/modu-soho/buzz_dashboard/internal/conf"
)

// Data wraps the shared database handle. Stores are constructed from it once
// at bootstrap and passed down by reference.
type Data struct {
	db *sql.DB
}

// schemaStatements create the report and user tables. Period fields are plain
// DATE columns; keyword_frequency and trend_analysis are JSONB blobs decoded
// at the store boundary.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS daily_reports (
		id TEXT PRIMARY KEY,
		date DATE NOT NULL,
		total_buzz INT NOT NULL DEFAULT 0,
		company_positive INT NOT NULL DEFAULT 0,
		company_negative INT NOT NULL DEFAULT 0,
		company_inquiry INT NOT NULL DEFAULT 0,
		competitor_positive INT NOT NULL DEFAULT 0,
		competitor_negative INT NOT NULL DEFAULT 0,
		competitor_inquiry INT NOT NULL DEFAULT 0,
		keyword_frequency JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS weekly_reports (
		id TEXT PRIMARY KEY,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_buzz INT NOT NULL DEFAULT 0,
		company_positive INT NOT NULL DEFAULT 0,
		company_negative INT NOT NULL DEFAULT 0,
		company_inquiry INT NOT NULL DEFAULT 0,
		competitor_positive INT NOT NULL DEFAULT 0,
		competitor_negative INT NOT NULL DEFAULT 0,
		competitor_inquiry INT NOT NULL DEFAULT 0,
		entrepreneur_startup_mentions INT NOT NULL DEFAULT 0,
		business_closure_mentions INT NOT NULL DEFAULT 0,
		business_type_switch_mentions INT NOT NULL DEFAULT 0,
		keyword_frequency JSONB,
		trend_analysis JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_reports (
		id TEXT PRIMARY KEY,
		month DATE NOT NULL,
		total_buzz INT NOT NULL DEFAULT 0,
		company_positive INT NOT NULL DEFAULT 0,
		company_negative INT NOT NULL DEFAULT 0,
		company_inquiry INT NOT NULL DEFAULT 0,
		competitor_positive INT NOT NULL DEFAULT 0,
		competitor_negative INT NOT NULL DEFAULT 0,
		competitor_inquiry INT NOT NULL DEFAULT 0,
		entrepreneur_startup_mentions INT NOT NULL DEFAULT 0,
		business_closure_mentions INT NOT NULL DEFAULT 0,
		business_type_switch_mentions INT NOT NULL DEFAULT 0,
		keyword_frequency JSONB,
		trend_analysis JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
