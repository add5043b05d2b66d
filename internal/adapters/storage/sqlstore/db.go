package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect agrupa lo que cambia entre motores: driver, placeholders y DDL.
type Dialect struct {
	Name        string
	Driver      string
	Placeholder byte // '$' => $1..$n; 0 => '?'
	Schema      string
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		Placeholder: '$',
		Schema: `CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			id VARCHAR(64) NOT NULL,
			body TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	}
	MySQL = Dialect{
		Name:   "mysql",
		Driver: "mysql",
		Schema: `CREATE TABLE IF NOT EXISTS documents (
			collection VARCHAR(64) NOT NULL,
			id VARCHAR(64) NOT NULL,
			body LONGTEXT NOT NULL,
			created_at BIGINT NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	}
	SQLite = Dialect{
		Name:   "sqlite",
		Driver: "sqlite3",
		Schema: `CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (collection, id)
		)`,
	}
)

// DialectByName acepta postgres|pgx, mysql, sqlite|sqlite3.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unknown sql dialect %q", name)
	}
}

// Rebind reescribe los '?' de una consulta al estilo del dialecto.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder == 0 || d.Placeholder == '?' {
		return query
	}
	var sb strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			sb.WriteByte(d.Placeholder)
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// Open abre el pool con database/sql, hace ping y crea la tabla si falta.
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", d.Name, err)
	}

	if d.Driver == SQLite.Driver {
		// un solo writer; además ":memory:" es por conexión
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", d.Name, err)
	}
	if _, err := db.ExecContext(ctx, d.Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s schema: %w", d.Name, err)
	}
	return db, nil
}
