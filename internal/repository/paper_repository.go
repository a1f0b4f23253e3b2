package repository

import (
	"errors"

	"medexam_backend/internal/model"
	"medexam_backend/internal/util"

	"gorm.io/gorm"
)

type PaperRepository struct {
	DB *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{DB: db}
}

func (r *PaperRepository) Create(paper *model.Paper) error {
	return r.DB.Create(paper).Error
}

// FindByID returns an active paper.
func (r *PaperRepository) FindByID(id uint) (*model.Paper, error) {
	var paper model.Paper
	if err := r.DB.First(&paper, id).Error; err != nil {
		return nil, notFound(err, util.ErrPaperNotFound)
	}
	return &paper, nil
}

// FindByIDUnscoped returns the paper whether or not it is soft-deleted.
func (r *PaperRepository) FindByIDUnscoped(id uint) (*model.Paper, error) {
	var paper model.Paper
	if err := r.DB.Unscoped().First(&paper, id).Error; err != nil {
		return nil, notFound(err, util.ErrPaperNotFound)
	}
	return &paper, nil
}

// SoftDelete tombstones the paper. An already deleted paper keeps its
// original timestamp.
func (r *PaperRepository) SoftDelete(id uint) (int64, error) {
	res := r.DB.Where("id = ?", id).Delete(&model.Paper{})
	return res.RowsAffected, res.Error
}

func (r *PaperRepository) Restore(id uint) (int64, error) {
	res := r.DB.Unscoped().Model(&model.Paper{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// notFound maps gorm's missing-row error onto a domain sentinel and passes
// every other error through unchanged.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
