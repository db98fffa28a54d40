package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/domain"
)

// Store keeps a Postgres trail of who was looked up and when. Contacts
// are stored hashed only. Writes are best-effort and detached from the
// request: an audit failure never fails a lookup.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{pool: pool, logger: logger}
}

const insertRecord = `
INSERT INTO lookup_audit (contact_type, contact_hash, source, result_count, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// Record implements lookup.Reporter.
func (s *Store) Record(_ context.Context, rec domain.LookupRecord) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_, err := s.pool.Exec(ctx, insertRecord,
			string(rec.ContactType),
			rec.ContactHash,
			rec.Source,
			rec.Orders,
			rec.DurationMs,
			rec.At,
		)
		if err != nil {
			s.logger.Warn("audit insert failed",
				zap.Error(err),
				zap.String("contact_type", string(rec.ContactType)),
			)
		}
	}()
}
