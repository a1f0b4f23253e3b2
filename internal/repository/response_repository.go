package repository

import (
	"medexam_backend/internal/model"

	"gorm.io/gorm"
)

// ResponseRepository annotates historical user responses. Rows are never
// removed: the child text is frozen into original_*_text the first time the
// child goes away, and only ACTIVE rows change status.
type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) CreateMcq(resp *model.UserMcqResponse) error {
	return r.DB.Create(resp).Error
}

func (r *ResponseRepository) CreateSaq(resp *model.UserSaqResponse) error {
	return r.DB.Create(resp).Error
}

func (r *ResponseRepository) CreateStation(resp *model.UserStationResponse) error {
	return r.DB.Create(resp).Error
}

func (r *ResponseRepository) MarkChoiceResponses(choiceID uint, choiceText string, status model.ResponseStatus) (int64, error) {
	return r.mark(&model.UserMcqResponse{}, "choice_id", "original_choice_text", choiceID, choiceText, status)
}

func (r *ResponseRepository) MarkPartResponses(partID uint, partText string, status model.ResponseStatus) (int64, error) {
	return r.mark(&model.UserSaqResponse{}, "part_id", "original_part_text", partID, partText, status)
}

func (r *ResponseRepository) MarkStationResponses(stationID uint, stationText string, status model.ResponseStatus) (int64, error) {
	return r.mark(&model.UserStationResponse{}, "station_id", "original_station_text", stationID, stationText, status)
}

func (r *ResponseRepository) mark(table interface{}, refColumn, textColumn string, childID uint, text string, status model.ResponseStatus) (int64, error) {
	res := r.DB.Model(table).
		Where(refColumn+" = ?", childID).
		Updates(map[string]interface{}{
			"status":   gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END", model.ResponseActive, status),
			textColumn: gorm.Expr("COALESCE("+textColumn+", ?)", text),
		})
	return res.RowsAffected, res.Error
}
