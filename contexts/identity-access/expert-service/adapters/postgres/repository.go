package postgresadapter

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"themis/contexts/identity-access/expert-service/domain/entities"
	domainerrors "themis/contexts/identity-access/expert-service/domain/errors"
	"themis/contexts/identity-access/expert-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

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

func (r *Repository) SaveExpert(ctx context.Context, expert entities.Expert) error {
	row := expertModelFromEntity(expert)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrConflict
		}
		return r.logError("identity_repo_save_expert_failed", create.Error,
			"expert_id", strings.TrimSpace(expert.ExpertID),
		)
	}
	return nil
}

func (r *Repository) GetExpert(ctx context.Context, expertID string) (entities.Expert, error) {
	var row expertModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(expertID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Expert{}, domainerrors.ErrExpertNotFound
		}
		return entities.Expert{}, r.logError("identity_repo_get_expert_failed", err,
			"expert_id", strings.TrimSpace(expertID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) FindByCredentials(
	ctx context.Context,
	name string,
	accessCode string,
) (entities.Expert, bool, error) {
	var row expertModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Where("access_code = ?", accessCode).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Expert{}, false, nil
		}
		return entities.Expert{}, false, r.logError("identity_repo_find_by_credentials_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListExperts(ctx context.Context) ([]entities.Expert, error) {
	var rows []expertModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("identity_repo_list_experts_failed", err)
	}
	items := make([]entities.Expert, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// SystemClock supplies wall-clock time to use cases in live wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates stable UUIDv4 identifiers for experts.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// AccessCodeGenerator draws 8 characters from A-Z0-9 with crypto/rand.
type AccessCodeGenerator struct{}

func (AccessCodeGenerator) NewCode() (string, error) {
	var code strings.Builder
	for i := 0; i < 8; i++ {
		index, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code.WriteByte(codeAlphabet[index.Int64()])
	}
	return code.String(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/expert-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("expert repository operation failed", fields...)
	return err
}

type expertModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name"`
	AccessCode string    `gorm:"column:access_code"`
	Role       string    `gorm:"column:role"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (expertModel) TableName() string {
	return "experts"
}

func expertModelFromEntity(expert entities.Expert) expertModel {
	row := expertModel{
		ID:         strings.TrimSpace(expert.ExpertID),
		Name:       strings.TrimSpace(expert.Name),
		AccessCode: strings.TrimSpace(expert.AccessCode),
		Role:       string(expert.Role),
		CreatedAt:  expert.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m expertModel) toEntity() entities.Expert {
	return entities.Expert{
		ExpertID:   m.ID,
		Name:       m.Name,
		AccessCode: m.AccessCode,
		Role:       entities.Role(m.Role),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ExpertRepository = (*Repository)(nil)
