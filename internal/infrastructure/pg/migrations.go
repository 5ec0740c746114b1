package pg

import (
	"context"
)

// createOperationsTable: история вычислений. session_id пустой у разовых вычислений.
const createOperationsTable = `
CREATE TABLE IF NOT EXISTS operations (
	id         SERIAL PRIMARY KEY,
	session_id VARCHAR(36) NOT NULL DEFAULT '',
	number1    DOUBLE PRECISION NOT NULL,
	number2    DOUBLE PRECISION NOT NULL,
	operation  VARCHAR(10) NOT NULL,
	result     DOUBLE PRECISION NOT NULL,
	message    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS operations_created_at_idx ON operations (created_at DESC);
CREATE INDEX IF NOT EXISTS operations_session_id_idx ON operations (session_id);
`

// Migrate создаёт таблицу operations, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createOperationsTable)
	return err
}
