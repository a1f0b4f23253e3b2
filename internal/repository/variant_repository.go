package repository

import (
	"medexam_backend/internal/model"
	"medexam_backend/internal/util"

	"gorm.io/gorm"
)

// VariantRepository covers the answer-bearing children of a question:
// choices (MCQ), parts (SAQ) and stations (OSCE/SPOT).
type VariantRepository struct {
	DB *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{DB: db}
}

// Choices

func (r *VariantRepository) CreateChoice(c *model.Choice) error {
	return r.DB.Create(c).Error
}

func (r *VariantRepository) FindChoice(id uint) (*model.Choice, error) {
	var c model.Choice
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, notFound(err, util.ErrChildNotFound)
	}
	return &c, nil
}

func (r *VariantRepository) ListActiveChoices(questionID uint) ([]model.Choice, error) {
	var cs []model.Choice
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *VariantRepository) SoftDeleteChoice(id uint) (int64, error) {
	res := r.DB.Where("id = ?", id).Delete(&model.Choice{})
	return res.RowsAffected, res.Error
}

func (r *VariantRepository) RestoreChoices(questionID uint) (int64, error) {
	res := r.DB.Unscoped().Model(&model.Choice{}).
		Where("question_id = ? AND deleted_at IS NOT NULL", questionID).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// Parts

func (r *VariantRepository) CreatePart(p *model.Part) error {
	return r.DB.Create(p).Error
}

func (r *VariantRepository) FindPart(id uint) (*model.Part, error) {
	var p model.Part
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, notFound(err, util.ErrChildNotFound)
	}
	return &p, nil
}

func (r *VariantRepository) ListActiveParts(questionID uint) ([]model.Part, error) {
	var ps []model.Part
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&ps).Error
	return ps, err
}

func (r *VariantRepository) SoftDeletePart(id uint) (int64, error) {
	res := r.DB.Where("id = ?", id).Delete(&model.Part{})
	return res.RowsAffected, res.Error
}

func (r *VariantRepository) RestoreParts(questionID uint) (int64, error) {
	res := r.DB.Unscoped().Model(&model.Part{}).
		Where("question_id = ? AND deleted_at IS NOT NULL", questionID).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// Stations

func (r *VariantRepository) CreateStation(s *model.Station) error {
	return r.DB.Create(s).Error
}

func (r *VariantRepository) FindStation(id uint) (*model.Station, error) {
	var s model.Station
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, notFound(err, util.ErrChildNotFound)
	}
	return &s, nil
}

func (r *VariantRepository) ListActiveStations(questionID uint) ([]model.Station, error) {
	var ss []model.Station
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&ss).Error
	return ss, err
}

func (r *VariantRepository) SoftDeleteStation(id uint) (int64, error) {
	res := r.DB.Where("id = ?", id).Delete(&model.Station{})
	return res.RowsAffected, res.Error
}

func (r *VariantRepository) RestoreStations(questionID uint) (int64, error) {
	res := r.DB.Unscoped().Model(&model.Station{}).
		Where("question_id = ? AND deleted_at IS NOT NULL", questionID).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
