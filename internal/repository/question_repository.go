package repository

import (
	"medexam_backend/internal/model"
	"medexam_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindByIDUnscoped returns the question whether or not it is soft-deleted.
func (r *QuestionRepository) FindByIDUnscoped(id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.Unscoped().First(&q, id).Error; err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	return &q, nil
}

// ListByPaperUnscoped returns every question owned by the paper, deleted or not.
func (r *QuestionRepository) ListByPaperUnscoped(paperID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Unscoped().Where("paper_id = ?", paperID).Order("id asc").Find(&qs).Error
	return qs, err
}

// ListDeletedByPaper returns the soft-deleted questions owned by the paper.
func (r *QuestionRepository) ListDeletedByPaper(paperID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Unscoped().
		Where("paper_id = ? AND deleted_at IS NOT NULL", paperID).
		Order("id asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) SoftDelete(id uint) (int64, error) {
	res := r.DB.Where("id = ?", id).Delete(&model.Question{})
	return res.RowsAffected, res.Error
}

func (r *QuestionRepository) Restore(id uint) (int64, error) {
	res := r.DB.Unscoped().Model(&model.Question{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
