package communications

import (
	"context"
	"database/sql"
	"time"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite.
type SQLRepo struct {
	DB db.Execer
}

func (r *SQLRepo) Create(ctx context.Context, m Message) error {
	const query = `
INSERT INTO communication_log (id, pipeline_id, candidate_id, channel, recipient, subject, body,
  status, sent_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		m.ID, m.PipelineID, m.CandidateID, m.Channel, m.Recipient, m.Subject, m.Body,
		m.Status, m.SentBy, m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *SQLRepo) Finish(ctx context.Context, id, status, errMessage string, at time.Time) error {
	const query = `
UPDATE communication_log SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1 AND status = 'pending'`
	var msg any
	if errMessage != "" {
		msg = errMessage
	}
	res, err := r.DB.ExecContext(ctx, query, id, status, msg, at)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) ListByPipeline(ctx context.Context, pipelineID string) ([]Message, error) {
	const query = `
SELECT id, pipeline_id, candidate_id, channel, recipient, subject, body, status,
  error_message, sent_by, created_at, updated_at
FROM communication_log WHERE pipeline_id = $1 ORDER BY created_at DESC, id`
	rows, err := r.DB.QueryContext(ctx, query, pipelineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Message{}
	for rows.Next() {
		var m Message
		var errMessage sql.NullString
		if err := rows.Scan(&m.ID, &m.PipelineID, &m.CandidateID, &m.Channel, &m.Recipient,
			&m.Subject, &m.Body, &m.Status, &errMessage, &m.SentBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.ErrorMessage = errMessage.String
		items = append(items, m)
	}
	return items, rows.Err()
}
