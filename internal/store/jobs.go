package store

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avencia/tika-batch/constants"
)

// Job is one extraction pass over a batch.
type Job struct {
	ID           uuid.UUID
	BatchName    string
	DocCount     int
	Processed    int
	Status       constants.JobStatus
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

type JobRepository interface {
	Start(ctx context.Context, batchName string, docCount int) (*Job, error)
	FinishSuccess(ctx context.Context, jobID uuid.UUID, processed int) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, processed int, message string) error
	History(ctx context.Context, limit int) ([]Job, error)
}

type jobRepo struct {
	db  *DB
	log *slog.Logger
}

func NewJobRepository(db *DB, log *slog.Logger) JobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &jobRepo{db: db, log: log}
}

func (r *jobRepo) Start(ctx context.Context, batchName string, docCount int) (*Job, error) {
	job := &Job{
		ID:        uuid.New(),
		BatchName: batchName,
		DocCount:  docCount,
		Status:    constants.JobStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO extraction_job (id, batch_name, doc_count, processed, status, started_at)
		 VALUES (?, ?, ?, 0, ?, ?)`),
		job.ID.String(), job.BatchName, job.DocCount, string(job.Status), job.StartedAt)
	if err != nil {
		r.log.Error("extraction_job start failed", "batch", batchName, "err", err)
		return nil, err
	}
	r.log.Info("extraction_job started", "job_id", job.ID, "batch", batchName, "doc_count", docCount)
	return job, nil
}

func (r *jobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, processed int) error {
	return r.finish(ctx, jobID, processed, constants.JobStatusSucceeded, "")
}

func (r *jobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, processed int, message string) error {
	return r.finish(ctx, jobID, processed, constants.JobStatusFailed, message)
}

func (r *jobRepo) finish(ctx context.Context, jobID uuid.UUID, processed int, status constants.JobStatus, message string) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE extraction_job
		 SET processed = ?, status = ?, error_message = ?, finished_at = ?
		 WHERE id = ?`),
		processed, string(status), message, time.Now().UTC(), jobID.String())
	if err != nil {
		r.log.Error("extraction_job finish failed", "job_id", jobID, "status", status, "err", err)
		return err
	}
	r.log.Info("extraction_job finished", "job_id", jobID, "status", status, "processed", processed)
	return nil
}

func (r *jobRepo) History(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT id, batch_name, doc_count, processed, status, error_message, started_at, finished_at
		 FROM extraction_job
		 ORDER BY started_at DESC
		 LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		var id string
		var finished sql.NullTime
		if err := rows.Scan(&id, &j.BatchName, &j.DocCount, &j.Processed, &j.Status, &j.ErrorMessage, &j.StartedAt, &finished); err != nil {
			return nil, err
		}
		j.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			j.FinishedAt = &t
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
