package pgb

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

// Driver used when `Config.Driver` is empty. Registered by "github.com/lib/pq".
const DefaultDriver = `postgres`

/*
Connection settings, usually loaded from YAML:

	driver: postgres
	dsn: postgres://localhost:5432/app?sslmode=disable
	id: app-main
	log_params: false

When `LogParams` is false, logged query arguments are masked via `MaskParams`.
*/
type Config struct {
	Driver    string `yaml:"driver"`
	Dsn       string `yaml:"dsn"`
	ID        string `yaml:"id"`
	LogParams bool   `yaml:"log_params"`
}

// Reads and parses a YAML config file. See `ParseConfig`.
func LoadConfig(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, Err{Code: ErrCodeInvalidInput, While: `reading config`, Cause: err}
	}
	return ParseConfig(src)
}

// Parses a YAML config, applying defaults. Unknown keys are rejected.
func ParseConfig(src []byte) (out Config, err error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	err = dec.Decode(&out)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, Err{Code: ErrCodeInvalidInput, While: `parsing config`, Cause: err}
	}

	if out.Driver == `` {
		out.Driver = DefaultDriver
	}
	return out, nil
}

// Opens and pings the database described by the config.
func (self Config) Open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, self.Driver, self.Dsn)
	if err != nil {
		return nil, Err{Code: ErrCodeQuery, While: `connecting to ` + self.Driver, Cause: err}
	}
	return db, nil
}

/*
Returns a `Conn` over the given handle, with `DefaultTypeParsers` and a
`StdLogger` printing to the given printer, which may be nil.
*/
func (self Config) Conn(db sqlx.QueryerContext, printer Printer) Conn {
	log := StdLogger{Printer: printer}
	if !self.LogParams {
		log.Sanitize = MaskParams
	}

	return Conn{
		DB:      db,
		Parsers: DefaultTypeParsers(),
		Logger:  log,
		ID:      self.ID,
	}
}
