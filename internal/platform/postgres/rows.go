package postgres

import (
	"database/sql"
	"log/slog"
)

// closeRows closes a result set and logs a close failure instead of
// returning it, since the scan error (if any) is the one callers need.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
