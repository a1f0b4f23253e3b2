package model

type PaperType string

const (
	PaperMCQ   PaperType = "MCQ"
	PaperSAQ   PaperType = "SAQ"
	PaperOSCE  PaperType = "OSCE"
	PaperSPOT  PaperType = "SPOT"
	PaperMixed PaperType = "MIXED"
)

func (t PaperType) Valid() bool {
	switch t {
	case PaperMCQ, PaperSAQ, PaperOSCE, PaperSPOT, PaperMixed:
		return true
	}
	return false
}

// Paper is a container of exam questions, e.g. a past exam.
type Paper struct {
	BaseModel
	Title     string     `gorm:"size:255;not null" json:"title"`
	Type      PaperType  `gorm:"size:10;not null" json:"type"`
	ConceptID uint       `gorm:"index" json:"conceptId"`
	Questions []Question `gorm:"foreignKey:PaperID" json:"questions,omitempty"`
}

func (Paper) TableName() string {
	return "papers"
}
