package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ProbeTimeout acota el ping de arranque: si Postgres no contesta en este
// plazo, el router cablea la variante degradada en su lugar.
const ProbeTimeout = 3 * time.Second

// Open abre el pool contra Postgres usando pgx (database/sql) y hace el
// ping de conectividad. Un error acá significa "backend durable no disponible".
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), ProbeTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
