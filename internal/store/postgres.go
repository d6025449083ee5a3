package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Camblonie/recruiting-tracker/internal/model"
	"github.com/Camblonie/recruiting-tracker/internal/store/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for goose
	"github.com/pressly/goose/v3"
)

// Postgres is a Store backed by PostgreSQL via pgx.
//
// Candidate inserts are staged locally and flushed by Save in a single
// transaction using a pgx batch. Companies, positions, attachments, and
// saved filters are written immediately: the importer creates companies and
// positions before the candidates that reference them are committed.
type Postgres struct {
	pool *pgxpool.Pool

	mu      sync.Mutex
	pending []*model.Candidate
}

// NewPostgres creates a Postgres store over an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// RunMigrations applies the embedded goose migrations against dsn.
func RunMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

const candidateColumns = `id, name, phone, email, lead_source, years_experience,
	previous_employers, technical_focus, technician_level, hiring_status,
	hot, needs_follow_up, avoid, avoid_history, pay_scale, pay_date,
	needs_insurance, offer_detail, offer_date, photo, social_links, notes,
	date_entered, position_id`

const insertCandidateSQL = `INSERT INTO candidates (` + candidateColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`

func candidateArgs(c *model.Candidate) ([]any, error) {
	history, err := json.Marshal(c.AvoidHistory)
	if err != nil {
		return nil, fmt.Errorf("encode avoid history: %w", err)
	}
	return []any{
		c.ID, c.Name, c.Phone, c.Email, string(c.LeadSource), c.YearsExperience,
		c.PreviousEmployers, c.TechnicalFocus, string(c.TechnicianLevel), string(c.HiringStatus),
		c.Hot, c.NeedsFollowUp, c.Avoid, history, c.PayScale, c.PayDate,
		c.NeedsInsurance, c.OfferDetail, c.OfferDate, c.Photo, c.SocialLinks, c.Notes,
		c.DateEntered, c.PositionID,
	}, nil
}

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	var (
		c         model.Candidate
		lead      string
		level     string
		status    string
		history   []byte
		payDate   *time.Time
		offerDate *time.Time
		posID     *uuid.UUID
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &lead, &c.YearsExperience,
		&c.PreviousEmployers, &c.TechnicalFocus, &level, &status,
		&c.Hot, &c.NeedsFollowUp, &c.Avoid, &history, &c.PayScale, &payDate,
		&c.NeedsInsurance, &c.OfferDetail, &offerDate, &c.Photo, &c.SocialLinks, &c.Notes,
		&c.DateEntered, &posID,
	)
	if err != nil {
		return nil, err
	}
	c.LeadSource = model.LeadSource(lead)
	c.TechnicianLevel = model.TechnicianLevel(level)
	c.HiringStatus = model.HiringStatus(status)
	c.PayDate = payDate
	c.OfferDate = offerDate
	c.PositionID = posID
	if len(history) > 0 {
		if err := json.Unmarshal(history, &c.AvoidHistory); err != nil {
			return nil, fmt.Errorf("decode avoid history: %w", err)
		}
	}
	return &c, nil
}

// InsertCandidate stages the candidate for the next Save.
func (p *Postgres) InsertCandidate(_ context.Context, c *model.Candidate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, c)
	return nil
}

func (p *Postgres) UpdateCandidate(ctx context.Context, c *model.Candidate) error {
	args, err := candidateArgs(c)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `UPDATE candidates SET
		name=$2, phone=$3, email=$4, lead_source=$5, years_experience=$6,
		previous_employers=$7, technical_focus=$8, technician_level=$9, hiring_status=$10,
		hot=$11, needs_follow_up=$12, avoid=$13, avoid_history=$14, pay_scale=$15, pay_date=$16,
		needs_insurance=$17, offer_detail=$18, offer_date=$19, photo=$20, social_links=$21,
		notes=$22, date_entered=$23, position_id=$24
		WHERE id=$1`, args...)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteCandidate(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM candidates WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Candidate(ctx context.Context, id uuid.UUID) (*model.Candidate, error) {
	row := p.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id=$1`, id)
	c, err := scanCandidate(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (p *Postgres) Candidates(ctx context.Context) ([]*model.Candidate, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY date_entered, id`)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []*model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) CountCandidates(ctx context.Context) (int, error) {
	var n int
	err := p.pool.QueryRow(ctx, `SELECT count(*) FROM candidates`).Scan(&n)
	return n, err
}

func (p *Postgres) InsertCompany(ctx context.Context, c *model.Company) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO companies (id, name, icon) VALUES ($1,$2,$3)`,
		c.ID, c.Name, c.Icon)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (p *Postgres) Companies(ctx context.Context) ([]*model.Company, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, icon FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var out []*model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteCompany relies on the schema's cascade: positions owned by the
// company are deleted, and candidates referencing those positions are
// detached via ON DELETE SET NULL.
func (p *Postgres) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) InsertPosition(ctx context.Context, pos *model.Position) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO positions (id, title, description, company_id) VALUES ($1,$2,$3,$4)`,
		pos.ID, pos.Title, pos.Description, pos.CompanyID)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (p *Postgres) Positions(ctx context.Context) ([]*model.Position, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, description, company_id FROM positions ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	var out []*model.Position
	for rows.Next() {
		var pos model.Position
		if err := rows.Scan(&pos.ID, &pos.Title, &pos.Description, &pos.CompanyID); err != nil {
			return nil, err
		}
		out = append(out, &pos)
	}
	return out, rows.Err()
}

func (p *Postgres) DeletePosition(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM positions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) InsertAttachment(ctx context.Context, a *model.Attachment) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO attachments (id, candidate_id, filename, content, content_type, added_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.CandidateID, a.Filename, a.Content, a.ContentType, a.AddedAt)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

func (p *Postgres) Attachments(ctx context.Context, candidateID uuid.UUID) ([]*model.Attachment, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, candidate_id, filename, content, content_type, added_at
		 FROM attachments WHERE candidate_id=$1 ORDER BY added_at`, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	var out []*model.Attachment
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.CandidateID, &a.Filename, &a.Content, &a.ContentType, &a.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) UpsertSavedFilter(ctx context.Context, f *model.SavedFilter) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO saved_filters (id, name, version, criteria, updated_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			version = EXCLUDED.version,
			criteria = EXCLUDED.criteria,
			updated_at = EXCLUDED.updated_at`,
		f.ID, f.Name, f.Version, f.Criteria, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert saved filter: %w", err)
	}
	return nil
}

func (p *Postgres) SavedFilters(ctx context.Context) ([]*model.SavedFilter, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, version, criteria, updated_at FROM saved_filters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saved filters: %w", err)
	}
	defer rows.Close()

	var out []*model.SavedFilter
	for rows.Next() {
		var f model.SavedFilter
		if err := rows.Scan(&f.ID, &f.Name, &f.Version, &f.Criteria, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (p *Postgres) DeleteSavedFilter(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM saved_filters WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete saved filter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Save flushes staged candidate inserts in one transaction. The staged list
// is cleared whether or not the flush succeeds; the caller reports the error
// and the composed records remain visible to it in memory.
func (p *Postgres) Save(ctx context.Context) error {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range pending {
		args, err := candidateArgs(c)
		if err != nil {
			return err
		}
		batch.Queue(insertCandidateSQL, args...)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for range pending {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("save candidate batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close save batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
