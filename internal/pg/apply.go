package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код PostgreSQL duplicate_object.
const duplicateObject = "42710"

// ApplyDDL выполняет фазы DDL по возрастанию ключа. Ожидается идемпотентный DDL
// (create ... if not exists); повторно созданные объекты пропускаются.
func ApplyDDL(ctx context.Context, db *sql.DB, ddl map[string]string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	for _, k := range keys {
		sqlText := strings.TrimSpace(ddl[k])
		if sqlText == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, sqlText); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == duplicateObject {
				log.Info("DDL skipped, already exists", "phase", k, "message", strings.TrimSpace(pgErr.Message))
				continue
			}
			return fmt.Errorf("DDL apply failed (%s): %w", k, err)
		}
		log.Debug("DDL applied", "phase", k)
	}
	return nil
}
