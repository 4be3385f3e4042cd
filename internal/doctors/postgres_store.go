package doctors

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of *pgxpool.Pool the store needs; pgxmock satisfies it.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var doctorColumns = []string{
	"name", "specialty", "city", "specializations", "qualifications",
	"experience", "reviews", "fee", "area", "hospital_clinic", "phone",
	"timings", "profile_link",
}

const selectDoctors = `
	SELECT id, name, specialty, city, specializations, qualifications,
	       experience, reviews, fee, area, hospital_clinic, phone,
	       timings, profile_link
	FROM doctors`

// PostgresStore persists doctors in the doctors table.
type PostgresStore struct {
	pool PgxPool
}

// NewPostgresStore builds a Postgres-backed Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("doctors: pgx pool cannot be nil")
	}
	return newPostgresStoreWithPool(pool)
}

func newPostgresStoreWithPool(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// Replace deletes every row and bulk-copies the new set inside one
// transaction. IDs come from the BIGSERIAL sequence and are never reused.
func (s *PostgresStore) Replace(ctx context.Context, doctors []Doctor) (int, error) {
	for _, d := range doctors {
		if err := d.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("doctors: begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM doctors`); err != nil {
		return 0, fmt.Errorf("doctors: clear table: %w", err)
	}

	rows := make([][]any, len(doctors))
	for i, d := range doctors {
		rows[i] = []any{
			d.Name, d.Specialty, d.City, d.Specializations, d.Qualifications,
			d.Experience, d.Reviews, d.Fee, d.Area, d.HospitalClinic, d.Phone,
			d.Timings, d.ProfileLink,
		}
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"doctors"}, doctorColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("doctors: copy rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("doctors: commit replace: %w", err)
	}
	return int(copied), nil
}

// Find returns the rows matching the filter in ascending ID order.
func (s *PostgresStore) Find(ctx context.Context, filter Filter) ([]Doctor, error) {
	where, args := filterClause(filter)
	rows, err := s.pool.Query(ctx, selectDoctors+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("doctors: query: %w", err)
	}
	defer rows.Close()

	var out []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Specialty, &d.City, &d.Specializations,
			&d.Qualifications, &d.Experience, &d.Reviews, &d.Fee, &d.Area,
			&d.HospitalClinic, &d.Phone, &d.Timings, &d.ProfileLink,
		); err != nil {
			return nil, fmt.Errorf("doctors: scan row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctors: iterate rows: %w", err)
	}
	return out, nil
}

// Count returns the number of rows for the specialty and city.
func (s *PostgresStore) Count(ctx context.Context, specialty, city string) (int, error) {
	where, args := filterClause(Filter{Specialty: specialty, City: city})
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM doctors"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("doctors: count: %w", err)
	}
	return n, nil
}

// Specialties returns the distinct specialties, sorted.
func (s *PostgresStore) Specialties(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT specialty FROM doctors ORDER BY specialty`)
	if err != nil {
		return nil, fmt.Errorf("doctors: list specialties: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var specialty string
		if err := rows.Scan(&specialty); err != nil {
			return nil, fmt.Errorf("doctors: scan specialty: %w", err)
		}
		out = append(out, specialty)
	}
	return out, rows.Err()
}

// Stats returns row counts grouped by specialty and city.
func (s *PostgresStore) Stats(ctx context.Context) ([]Stat, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT specialty, city, COUNT(*)
		FROM doctors
		GROUP BY specialty, city
		ORDER BY specialty, city`)
	if err != nil {
		return nil, fmt.Errorf("doctors: stats: %w", err)
	}
	defer rows.Close()

	out := []Stat{}
	for rows.Next() {
		var st Stat
		if err := rows.Scan(&st.Specialty, &st.City, &st.Count); err != nil {
			return nil, fmt.Errorf("doctors: scan stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func filterClause(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Specialty != "" {
		args = append(args, f.Specialty)
		conds = append(conds, fmt.Sprintf("specialty = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, f.City)
		conds = append(conds, fmt.Sprintf("city = $%d", len(args)))
	}
	if f.MaxFee != nil {
		args = append(args, *f.MaxFee)
		conds = append(conds, fmt.Sprintf("fee <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
