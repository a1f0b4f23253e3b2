package model

type QuestionType string

const (
	QuestionMCQ  QuestionType = "MCQ"
	QuestionSAQ  QuestionType = "SAQ"
	QuestionOSCE QuestionType = "OSCE"
	QuestionSPOT QuestionType = "SPOT"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMCQ, QuestionSAQ, QuestionOSCE, QuestionSPOT:
		return true
	}
	return false
}

// Question is a single exam item. PaperID is nil for questions that belong
// to a daily question or an event quiz instead of a paper.
type Question struct {
	BaseModel
	PaperID  *uint        `gorm:"index" json:"paperId"`
	Type     QuestionType `gorm:"size:10;not null" json:"type"`
	Text     string       `gorm:"type:text" json:"text"`
	Choices  []Choice     `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
	Parts    []Part       `gorm:"foreignKey:QuestionID" json:"parts,omitempty"`
	Stations []Station    `gorm:"foreignKey:QuestionID" json:"stations,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Choice is an MCQ option.
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Choice) TableName() string {
	return "choices"
}

// Part is one sub-question of an SAQ.
type Part struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Answer     string `gorm:"type:text" json:"answer"`
	Marks      int    `gorm:"default:0" json:"marks"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Part) TableName() string {
	return "parts"
}

// Station is one OSCE or SPOT station.
type Station struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Answer     string `gorm:"type:text" json:"answer"`
	Marks      int    `gorm:"default:0" json:"marks"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (Station) TableName() string {
	return "stations"
}
