package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
	"github.com/joseph-ayodele/foreclosure-parser/internal/common"
	"github.com/joseph-ayodele/foreclosure-parser/internal/entity"
)

const casesTable = "cases"

// updatedAtLayout is fixed width so updated_at sorts chronologically as text.
const updatedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

var caseColumns = []string{
	"index_number",
	"plaintiff",
	"property_address",
	"borough",
	"block",
	"lot",
	"auction_date",
	"auction_time",
	"referee",
	"judgment_amount",
	"auction_status",
	"source_notice",
	"source_judgment",
	"source_affirmation",
	"run_id",
	"seq",
	"updated_at",
}

type CaseRepository interface {
	// SaveCases upserts records by index number, in order, tagged with runID
	// (or the run id carried by ctx when runID is empty).
	SaveCases(ctx context.Context, runID string, records []*entity.CaseRecord) error
	ListCases(ctx context.Context) ([]entity.StoredCase, error)
	GetCase(ctx context.Context, indexNumber string) (*entity.StoredCase, error)
	CountCases(ctx context.Context) (int, error)
}

type caseRepo struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

func NewCaseRepository(db *DB, logger *slog.Logger) CaseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &caseRepo{db: db, logger: logger, now: time.Now}
}

func (r *caseRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect)
}

func (r *caseRepo) SaveCases(ctx context.Context, runID string, records []*entity.CaseRecord) error {
	if len(records) == 0 {
		return nil
	}
	if runID == "" {
		runID = common.RunIDFromContext(ctx)
	}
	tx, err := r.db.Driver.Tx(ctx)
	if err != nil {
		return common.NewAppError("DB_ERROR", "begin tx", fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	updatedAt := r.now().UTC().Format(updatedAtLayout)

	for i, rec := range records {
		q, args := r.builder().
			Insert(casesTable).
			Columns(caseColumns...).
			Values(
				rec.IndexNumber,
				nullable(rec.Plaintiff),
				nullable(rec.PropertyAddress),
				nullableBorough(rec.Borough),
				nullable(rec.Block),
				nullable(rec.Lot),
				nullable(rec.AuctionDate),
				nullable(rec.AuctionTime),
				nullable(rec.Referee),
				nullable(rec.JudgmentAmount),
				nullableStatus(rec.AuctionStatus),
				nullable(rec.SourceNotice),
				nullable(rec.SourceJudgment),
				nullable(rec.SourceAffirmation),
				runID,
				i,
				updatedAt,
			).
			OnConflict(
				entsql.ConflictColumns("index_number"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			_ = tx.Rollback()
			r.logger.Error("failed to save case", "index", rec.IndexNumber, "run_id", runID, "error", err)
			return common.NewAppError("DB_ERROR", "save case "+rec.IndexNumber, fmt.Errorf("%w: %v", common.ErrDatabase, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return common.NewAppError("DB_ERROR", "commit", fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	r.logger.Info("cases saved", "run_id", runID, "count", len(records))
	return nil
}

func (r *caseRepo) ListCases(ctx context.Context) ([]entity.StoredCase, error) {
	b := r.builder()
	q, args := b.Select(caseColumns...).
		From(b.Table(casesTable)).
		OrderBy("updated_at", "run_id", "seq").
		Query()
	return r.query(ctx, q, args)
}

func (r *caseRepo) GetCase(ctx context.Context, indexNumber string) (*entity.StoredCase, error) {
	b := r.builder()
	q, args := b.Select(caseColumns...).
		From(b.Table(casesTable)).
		Where(entsql.EQ("index_number", indexNumber)).
		Query()
	rows, err := r.query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.NewAppError("NOT_FOUND", "case "+indexNumber, common.ErrNotFound)
	}
	return &rows[0], nil
}

func (r *caseRepo) CountCases(ctx context.Context) (int, error) {
	b := r.builder()
	q, args := b.Select(entsql.Count("*")).From(b.Table(casesTable)).Query()

	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		return 0, common.NewAppError("DB_ERROR", "count cases", fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	defer func() { _ = rows.Close() }()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

func (r *caseRepo) query(ctx context.Context, q string, args []any) ([]entity.StoredCase, error) {
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, q, args, &rows); err != nil {
		r.logger.Error("failed to query cases", "error", err)
		return nil, common.NewAppError("DB_ERROR", "query cases", fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	defer func() { _ = rows.Close() }()

	var out []entity.StoredCase
	for rows.Next() {
		var (
			sc      entity.StoredCase
			opt     [13]sql.NullString
			seq     int64
			updated string
		)
		dest := []any{&sc.IndexNumber}
		for i := range opt {
			dest = append(dest, &opt[i])
		}
		dest = append(dest, &sc.RunID, &seq, &updated)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}

		sc.Plaintiff = fromNull(opt[0])
		sc.PropertyAddress = fromNull(opt[1])
		if v := fromNull(opt[2]); v != nil {
			b := constants.Borough(*v)
			sc.Borough = &b
		}
		sc.Block = fromNull(opt[3])
		sc.Lot = fromNull(opt[4])
		sc.AuctionDate = fromNull(opt[5])
		sc.AuctionTime = fromNull(opt[6])
		sc.Referee = fromNull(opt[7])
		sc.JudgmentAmount = fromNull(opt[8])
		if v := fromNull(opt[9]); v != nil {
			s := constants.AuctionStatus(*v)
			sc.AuctionStatus = &s
		}
		sc.SourceNotice = fromNull(opt[10])
		sc.SourceJudgment = fromNull(opt[11])
		sc.SourceAffirmation = fromNull(opt[12])
		sc.Seq = int(seq)
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			sc.UpdatedAt = t
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableBorough(b *constants.Borough) any {
	if b == nil {
		return nil
	}
	return string(*b)
}

func nullableStatus(s *constants.AuctionStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func fromNull(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}
