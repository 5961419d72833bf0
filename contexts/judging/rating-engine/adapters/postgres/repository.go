package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"themis/contexts/judging/rating-engine/domain/entities"
	domainerrors "themis/contexts/judging/rating-engine/domain/errors"
	"themis/contexts/judging/rating-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

// SaveRating upserts on (submission_id, expert_id) so a revised
// scorecard replaces the previous one in place, matching the ledger's
// last-write-wins discipline.
func (r *Repository) SaveRating(ctx context.Context, rating entities.Rating) error {
	row, err := ratingModelFromEntity(rating)
	if err != nil {
		return r.logError("judging_repo_save_rating_encode_failed", err,
			"rating_id", strings.TrimSpace(rating.RatingID),
		)
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}, {Name: "expert_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"expert_name": row.ExpertName,
			"scores":      row.Scores,
			"total_score": row.TotalScore,
			"comment":     row.Comment,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrConflict
		}
		return r.logError("judging_repo_save_rating_failed", create.Error,
			"rating_id", strings.TrimSpace(rating.RatingID),
			"submission_id", strings.TrimSpace(rating.SubmissionID),
			"expert_id", strings.TrimSpace(rating.ExpertID),
		)
	}
	return nil
}

func (r *Repository) GetRatingByIdentity(
	ctx context.Context,
	submissionID string,
	expertID string,
) (entities.Rating, bool, error) {
	var row ratingModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("expert_id = ?", strings.TrimSpace(expertID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Rating{}, false, nil
		}
		return entities.Rating{}, false, r.logError("judging_repo_get_rating_by_identity_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
			"expert_id", strings.TrimSpace(expertID),
		)
	}
	rating, err := row.toEntity()
	if err != nil {
		return entities.Rating{}, false, r.logError("judging_repo_decode_rating_failed", err, "rating_id", row.ID)
	}
	return rating, true, nil
}

func (r *Repository) ListRatingsBySubmission(ctx context.Context, submissionID string) ([]entities.Rating, error) {
	var rows []ratingModel
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_ratings_by_submission_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return r.toRatingEntities(rows)
}

func (r *Repository) ListRatings(ctx context.Context) ([]entities.Rating, error) {
	var rows []ratingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_ratings_failed", err)
	}
	return r.toRatingEntities(rows)
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("judging_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("judging_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return r.logError("judging_repo_append_outbox_load_existing_failed", err,
			"outbox_id", row.OutboxID,
		)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("judging_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

// SystemClock supplies wall-clock time to use cases in live wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates stable UUIDv4 identifiers for ratings/events.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) toRatingEntities(rows []ratingModel) ([]entities.Rating, error) {
	items := make([]entities.Rating, 0, len(rows))
	for _, row := range rows {
		rating, err := row.toEntity()
		if err != nil {
			return nil, r.logError("judging_repo_decode_rating_failed", err, "rating_id", row.ID)
		}
		items = append(items, rating)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "judging/rating-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("rating repository operation failed", fields...)
	return err
}

// Scores are stored as a JSON array so the adapter stays agnostic of
// rubric length; total_score is denormalized for reporting queries.
type ratingModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id;uniqueIndex:idx_ratings_identity"`
	ExpertID     string    `gorm:"column:expert_id;uniqueIndex:idx_ratings_identity"`
	ExpertName   string    `gorm:"column:expert_name"`
	Scores       []byte    `gorm:"column:scores;type:jsonb"`
	TotalScore   int       `gorm:"column:total_score"`
	Comment      string    `gorm:"column:comment"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "ratings"
}

func ratingModelFromEntity(rating entities.Rating) (ratingModel, error) {
	scores, err := json.Marshal(rating.Scores)
	if err != nil {
		return ratingModel{}, err
	}
	row := ratingModel{
		ID:           strings.TrimSpace(rating.RatingID),
		SubmissionID: strings.TrimSpace(rating.SubmissionID),
		ExpertID:     strings.TrimSpace(rating.ExpertID),
		ExpertName:   strings.TrimSpace(rating.ExpertName),
		Scores:       scores,
		TotalScore:   rating.Total(),
		Comment:      strings.TrimSpace(rating.Comment),
		CreatedAt:    rating.CreatedAt.UTC(),
		UpdatedAt:    rating.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row, nil
}

func (m ratingModel) toEntity() (entities.Rating, error) {
	var scores []int
	if len(m.Scores) > 0 {
		if err := json.Unmarshal(m.Scores, &scores); err != nil {
			return entities.Rating{}, err
		}
	}
	return entities.Rating{
		RatingID:     m.ID,
		SubmissionID: m.SubmissionID,
		ExpertID:     m.ExpertID,
		ExpertName:   m.ExpertName,
		Scores:       scores,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "rating_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.RatingRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxSource = (*Repository)(nil)
