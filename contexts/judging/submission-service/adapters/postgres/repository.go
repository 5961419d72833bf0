package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"themis/contexts/judging/submission-service/domain/entities"
	domainerrors "themis/contexts/judging/submission-service/domain/errors"
	"themis/contexts/judging/submission-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveSubmission(ctx context.Context, submission entities.Submission) error {
	row := submissionModelFromEntity(submission)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrConflict
		}
		return r.logError("judging_repo_save_submission_failed", create.Error,
			"submission_id", strings.TrimSpace(submission.SubmissionID),
		)
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	var row submissionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Submission{}, domainerrors.ErrSubmissionNotFound
		}
		return entities.Submission{}, r.logError("judging_repo_get_submission_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSubmissions(ctx context.Context) ([]entities.Submission, error) {
	var rows []submissionModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_submissions_failed", err)
	}
	items := make([]entities.Submission, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// SystemClock supplies wall-clock time in live wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates stable UUIDv4 identifiers for submissions.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "judging/submission-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("submission repository operation failed", fields...)
	return err
}

type submissionModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	ParticipantName string    `gorm:"column:participant_name"`
	TeamName        string    `gorm:"column:team_name"`
	Category        string    `gorm:"column:category"`
	Kind            string    `gorm:"column:kind"`
	Title           string    `gorm:"column:title"`
	Content         string    `gorm:"column:content"`
	VideoURL        string    `gorm:"column:video_url"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (submissionModel) TableName() string {
	return "submissions"
}

func submissionModelFromEntity(submission entities.Submission) submissionModel {
	row := submissionModel{
		ID:              strings.TrimSpace(submission.SubmissionID),
		ParticipantName: strings.TrimSpace(submission.ParticipantName),
		TeamName:        strings.TrimSpace(submission.TeamName),
		Category:        strings.TrimSpace(submission.Category),
		Kind:            string(submission.Kind),
		Title:           strings.TrimSpace(submission.Title),
		Content:         submission.Content,
		VideoURL:        strings.TrimSpace(submission.VideoURL),
		CreatedAt:       submission.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m submissionModel) toEntity() entities.Submission {
	return entities.Submission{
		SubmissionID:    m.ID,
		ParticipantName: m.ParticipantName,
		TeamName:        m.TeamName,
		Category:        m.Category,
		Kind:            entities.Kind(m.Kind),
		Title:           m.Title,
		Content:         m.Content,
		VideoURL:        m.VideoURL,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.SubmissionRepository = (*Repository)(nil)
