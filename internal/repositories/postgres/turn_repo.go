package postgres

import (
	"context"
	"errors"

	"github.com/prepwise/prepwise-backend/internal/models"
	"github.com/prepwise/prepwise-backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TurnRepository persists interview turns. AnswerLatestMain is the
// serialization point for a session: concurrent submissions for the same
// session queue on the row lock, so a turn's single answer mutation can
// never be applied twice.
type TurnRepository interface {
	Insert(ctx context.Context, t *models.InterviewTurn) error
	CountMain(ctx context.Context, sessionID string) (int64, error)

	// AnswerLatestMain locates the most recently created main turn of the
	// session under a row lock. If it is unanswered, answer is recorded and
	// already=false; if it was already answered the stored answer is left
	// untouched and already=true. utils.ErrNotFound when the session has no
	// main turn at all.
	AnswerLatestMain(ctx context.Context, sessionID, answer string) (turn *models.InterviewTurn, already bool, err error)

	HasFollowUp(ctx context.Context, parentTurnID string) (bool, error)
	ListAnsweredMain(ctx context.Context, sessionID string) ([]models.InterviewTurn, error)
}

type turnRepo struct {
	db *gorm.DB
}

func NewTurnRepo(db *gorm.DB) TurnRepository {
	return &turnRepo{db: db}
}

func (r *turnRepo) Insert(ctx context.Context, t *models.InterviewTurn) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *turnRepo) CountMain(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InterviewTurn{}).
		Where("session_id = ? AND is_follow_up = ?", sessionID, false).
		Count(&count).Error
	return count, err
}

func (r *turnRepo) AnswerLatestMain(ctx context.Context, sessionID, answer string) (*models.InterviewTurn, bool, error) {
	var turn models.InterviewTurn
	var already bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ? AND is_follow_up = ?", sessionID, false).
			Order("created_at DESC").
			Take(&turn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound
		}
		if err != nil {
			return err
		}

		if turn.Answered() {
			already = true
			return nil
		}

		if err := tx.Model(&turn).Update("answer", answer).Error; err != nil {
			return err
		}
		turn.Answer = &answer
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &turn, already, nil
}

func (r *turnRepo) HasFollowUp(ctx context.Context, parentTurnID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InterviewTurn{}).
		Where("parent_turn_id = ?", parentTurnID).
		Count(&count).Error
	return count > 0, err
}

func (r *turnRepo) ListAnsweredMain(ctx context.Context, sessionID string) ([]models.InterviewTurn, error) {
	var rows []models.InterviewTurn
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND is_follow_up = ? AND answer IS NOT NULL", sessionID, false).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
