package conf

// Bootstrap is the top-level configuration scanned from configs/config.yaml.
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Auth   *Auth   `json:"auth"`
	Seed   *Seed   `json:"seed"`
	Log    *Log    `json:"log"`
}

type Server struct {
	Http  *HTTP  `json:"http"`
	Limit *Limit `json:"limit"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Limit configures the request rate limiter on the API routes.
// A zero QPS disables limiting.
type Limit struct {
	Qps   int32 `json:"qps"`
	Burst int32 `json:"burst"`
}

type Data struct {
	Database *Database `json:"database"`
}

type Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

// Seed controls demo data seeding at startup. Seeding only inserts into
// empty tables, so leaving it enabled on a populated database is a no-op.
type Seed struct {
	Enabled bool `json:"enabled"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
