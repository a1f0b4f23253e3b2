package model

type ResponseStatus string

const (
	ResponseActive ResponseStatus = "ACTIVE"
	// ResponseObsolete marks a response whose content changed under it.
	ResponseObsolete ResponseStatus = "OBSOLETE"
	// ResponseDeleted marks a response whose content was removed.
	ResponseDeleted ResponseStatus = "DELETED"
)

func (s ResponseStatus) Valid() bool {
	switch s {
	case ResponseActive, ResponseObsolete, ResponseDeleted:
		return true
	}
	return false
}

// UserMcqResponse records one user's pick of an MCQ choice.
type UserMcqResponse struct {
	RecordBase
	UserID             uint           `gorm:"index;not null" json:"userId"`
	QuestionID         uint           `gorm:"index;not null" json:"questionId"`
	ChoiceID           uint           `gorm:"index;not null" json:"choiceId"`
	Status             ResponseStatus `gorm:"size:10;not null;default:'ACTIVE'" json:"status"`
	OriginalChoiceText *string        `gorm:"type:text" json:"originalChoiceText,omitempty"`
}

func (UserMcqResponse) TableName() string {
	return "user_mcq_responses"
}

// UserSaqResponse records one user's answer to an SAQ part.
type UserSaqResponse struct {
	RecordBase
	UserID           uint           `gorm:"index;not null" json:"userId"`
	QuestionID       uint           `gorm:"index;not null" json:"questionId"`
	PartID           uint           `gorm:"index;not null" json:"partId"`
	Answer           string         `gorm:"type:text" json:"answer"`
	Status           ResponseStatus `gorm:"size:10;not null;default:'ACTIVE'" json:"status"`
	OriginalPartText *string        `gorm:"type:text" json:"originalPartText,omitempty"`
}

func (UserSaqResponse) TableName() string {
	return "user_saq_responses"
}

// UserStationResponse records one user's answer to an OSCE or SPOT station.
type UserStationResponse struct {
	RecordBase
	UserID              uint           `gorm:"index;not null" json:"userId"`
	QuestionID          uint           `gorm:"index;not null" json:"questionId"`
	StationID           uint           `gorm:"index;not null" json:"stationId"`
	Answer              string         `gorm:"type:text" json:"answer"`
	Status              ResponseStatus `gorm:"size:10;not null;default:'ACTIVE'" json:"status"`
	OriginalStationText *string        `gorm:"type:text" json:"originalStationText,omitempty"`
}

func (UserStationResponse) TableName() string {
	return "user_station_responses"
}

// ContentModels lists every table owned by the content core, in migration order.
func ContentModels() []interface{} {
	return []interface{}{
		&Paper{},
		&Question{},
		&Choice{},
		&Part{},
		&Station{},
		&UserMcqResponse{},
		&UserSaqResponse{},
		&UserStationResponse{},
	}
}
