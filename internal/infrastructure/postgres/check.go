// Package postgres checks connectivity and schema of the LifeOS PostgreSQL database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/sbs-ecosystem/ecocheck/internal/domain"
	"github.com/sbs-ecosystem/ecocheck/internal/ports"
)

const resultName = "database"

const (
	versionQuery = `SELECT version()`
	tableQuery   = `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	)`
	statsQuery = `SELECT
		pg_size_pretty(pg_database_size(current_database())) AS db_size,
		(SELECT count(*) FROM pg_stat_activity WHERE datname = current_database()) AS connections`
	triggerQuery = `SELECT count(*) FROM pg_trigger WHERE tgname LIKE '%notify%'`
)

// Connector opens and verifies a database handle within timeout.
type Connector func(ctx context.Context, env domain.Environment, timeout time.Duration) (*sql.DB, error)

// Check verifies the connection, required tables and notify triggers.
type Check struct {
	Env     domain.Environment
	Tables  []string
	Timeout time.Duration
	Connect Connector
	Logger  ports.Logger
}

// NewCheck builds the check with the lib/pq connector.
func NewCheck(cfg domain.Config, env domain.Environment, log ports.Logger) *Check {
	return &Check{
		Env:     env,
		Tables:  cfg.Tables(),
		Timeout: cfg.DBTimeoutDuration(),
		Connect: Open,
		Logger:  log,
	}
}

func (c *Check) Name() string { return string(domain.GroupDatabase) }

// Run implements ports.Check.
func (c *Check) Run(ctx context.Context) []domain.CheckResult {
	return []domain.CheckResult{c.check(ctx)}
}

type stats struct {
	version     string
	size        string
	connections int64
	triggers    int64
	missing     []string
}

func (c *Check) check(ctx context.Context) domain.CheckResult {
	if !c.Env.HasDBPassword() {
		return domain.Skip(resultName, "Database password not configured")
	}

	start := time.Now()
	db, err := c.Connect(ctx, c.Env, c.Timeout)
	connDuration := time.Since(start)
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("Database connection failed: %v", err))
	}

	st, err := c.inspect(ctx, db)
	if closeErr := db.Close(); closeErr != nil {
		c.Logger.Warn("database close failed", map[string]interface{}{"error": closeErr.Error()})
	}
	if err != nil {
		return domain.Fail(resultName, fmt.Sprintf("Database check error: %v", err))
	}

	total := len(c.Tables)
	details := domain.NewDetails().
		With("postgresql_version", domain.Text(st.version)).
		With("connection_time_ms", domain.Int(connDuration.Milliseconds())).
		With("database_size", domain.Text(st.size)).
		With("active_connections", domain.Int(st.connections)).
		With("missing_tables", domain.Strings(st.missing)).
		With("notify_triggers", domain.Int(st.triggers)).
		With("required_tables_found", domain.Int(total-len(st.missing))).
		With("total_required_tables", domain.Int(total))

	var result domain.CheckResult
	if len(st.missing) > 0 {
		result = domain.Warn(resultName, fmt.Sprintf("Database connected but missing tables: %s", strings.Join(st.missing, ", ")))
	} else {
		result = domain.Pass(resultName, fmt.Sprintf("Database healthy - PostgreSQL %s", st.version))
	}
	return result.WithDetails(details).WithDuration(connDuration)
}

func (c *Check) inspect(ctx context.Context, db *sql.DB) (stats, error) {
	var st stats

	var fullVersion string
	if err := db.QueryRowContext(ctx, versionQuery).Scan(&fullVersion); err != nil {
		return st, fmt.Errorf("read version: %w", err)
	}
	st.version = shortVersion(fullVersion)

	st.missing = []string{}
	for _, table := range c.Tables {
		var exists bool
		if err := db.QueryRowContext(ctx, tableQuery, table).Scan(&exists); err != nil {
			return st, fmt.Errorf("lookup table %s: %w", table, err)
		}
		if !exists {
			st.missing = append(st.missing, table)
		}
	}

	if err := db.QueryRowContext(ctx, statsQuery).Scan(&st.size, &st.connections); err != nil {
		return st, fmt.Errorf("read database stats: %w", err)
	}
	if err := db.QueryRowContext(ctx, triggerQuery).Scan(&st.triggers); err != nil {
		return st, fmt.Errorf("count notify triggers: %w", err)
	}
	return st, nil
}

// shortVersion extracts "16.2" from "PostgreSQL 16.2 on x86_64-pc-linux-gnu, ...".
func shortVersion(full string) string {
	fields := strings.Fields(full)
	if len(fields) < 2 {
		return full
	}
	return fields[1]
}

// Open connects with lib/pq and pings within timeout.
func Open(ctx context.Context, env domain.Environment, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(env, timeout))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DSN builds a postgres:// URL for lib/pq.
func DSN(env domain.Environment, timeout time.Duration) string {
	q := url.Values{}
	q.Set("sslmode", env.DBSSLMode)
	q.Set("connect_timeout", fmt.Sprintf("%d", int(timeout.Seconds())))
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(env.DBUser, env.DBPassword),
		Host:     net.JoinHostPort(env.DBHost, env.DBPort),
		Path:     "/" + env.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

var _ ports.Check = (*Check)(nil)
