package service

import (
	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/util"
)

// childStats counts the rows a variant handler touched.
type childStats struct {
	QuestionID uint
	Children   int64
	Responses  int64
}

func (c *childStats) add(o childStats) {
	c.Children += o.Children
	c.Responses += o.Responses
}

// variantHandler owns the child table of one question variant and the
// response table that points into it. Handlers always annotate responses
// before tombstoning the child they reference.
type variantHandler interface {
	retireChildren(tx *repository.ContentStore, questionID uint, status model.ResponseStatus) (childStats, error)
	retireChild(tx *repository.ContentStore, childID uint, status model.ResponseStatus) (childStats, error)
	restoreChildren(tx *repository.ContentStore, questionID uint) (int64, error)
}

func handlerFor(t model.QuestionType) (variantHandler, error) {
	switch t {
	case model.QuestionMCQ:
		return mcqHandler{}, nil
	case model.QuestionSAQ:
		return saqHandler{}, nil
	case model.QuestionOSCE, model.QuestionSPOT:
		return stationHandler{}, nil
	}
	return nil, util.ErrUnknownQuestionType
}

type mcqHandler struct{}

func (mcqHandler) retireChildren(tx *repository.ContentStore, questionID uint, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: questionID}
	choices, err := tx.Variants.ListActiveChoices(questionID)
	if err != nil {
		return stats, err
	}
	for i := range choices {
		s, err := retireChoice(tx, &choices[i], status)
		if err != nil {
			return stats, err
		}
		stats.add(s)
	}
	return stats, nil
}

func (mcqHandler) retireChild(tx *repository.ContentStore, childID uint, status model.ResponseStatus) (childStats, error) {
	choice, err := tx.Variants.FindChoice(childID)
	if err != nil {
		return childStats{}, err
	}
	return retireChoice(tx, choice, status)
}

func (mcqHandler) restoreChildren(tx *repository.ContentStore, questionID uint) (int64, error) {
	return tx.Variants.RestoreChoices(questionID)
}

func retireChoice(tx *repository.ContentStore, c *model.Choice, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: c.QuestionID}
	n, err := tx.Responses.MarkChoiceResponses(c.ID, c.Text, status)
	if err != nil {
		return stats, err
	}
	stats.Responses = n
	if stats.Children, err = tx.Variants.SoftDeleteChoice(c.ID); err != nil {
		return stats, err
	}
	return stats, nil
}

type saqHandler struct{}

func (saqHandler) retireChildren(tx *repository.ContentStore, questionID uint, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: questionID}
	parts, err := tx.Variants.ListActiveParts(questionID)
	if err != nil {
		return stats, err
	}
	for i := range parts {
		s, err := retirePart(tx, &parts[i], status)
		if err != nil {
			return stats, err
		}
		stats.add(s)
	}
	return stats, nil
}

func (saqHandler) retireChild(tx *repository.ContentStore, childID uint, status model.ResponseStatus) (childStats, error) {
	part, err := tx.Variants.FindPart(childID)
	if err != nil {
		return childStats{}, err
	}
	return retirePart(tx, part, status)
}

func (saqHandler) restoreChildren(tx *repository.ContentStore, questionID uint) (int64, error) {
	return tx.Variants.RestoreParts(questionID)
}

func retirePart(tx *repository.ContentStore, p *model.Part, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: p.QuestionID}
	n, err := tx.Responses.MarkPartResponses(p.ID, p.Text, status)
	if err != nil {
		return stats, err
	}
	stats.Responses = n
	if stats.Children, err = tx.Variants.SoftDeletePart(p.ID); err != nil {
		return stats, err
	}
	return stats, nil
}

// stationHandler serves both OSCE and SPOT questions.
type stationHandler struct{}

func (stationHandler) retireChildren(tx *repository.ContentStore, questionID uint, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: questionID}
	stations, err := tx.Variants.ListActiveStations(questionID)
	if err != nil {
		return stats, err
	}
	for i := range stations {
		s, err := retireStation(tx, &stations[i], status)
		if err != nil {
			return stats, err
		}
		stats.add(s)
	}
	return stats, nil
}

func (stationHandler) retireChild(tx *repository.ContentStore, childID uint, status model.ResponseStatus) (childStats, error) {
	station, err := tx.Variants.FindStation(childID)
	if err != nil {
		return childStats{}, err
	}
	return retireStation(tx, station, status)
}

func (stationHandler) restoreChildren(tx *repository.ContentStore, questionID uint) (int64, error) {
	return tx.Variants.RestoreStations(questionID)
}

func retireStation(tx *repository.ContentStore, s *model.Station, status model.ResponseStatus) (childStats, error) {
	stats := childStats{QuestionID: s.QuestionID}
	n, err := tx.Responses.MarkStationResponses(s.ID, s.Text, status)
	if err != nil {
		return stats, err
	}
	stats.Responses = n
	if stats.Children, err = tx.Variants.SoftDeleteStation(s.ID); err != nil {
		return stats, err
	}
	return stats, nil
}
