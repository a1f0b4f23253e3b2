package repository

import (
	"context"

	"gorm.io/gorm"
)

// ContentStore is the unit of work over the content tables. Every repository
// it holds shares the same gorm handle, so a store returned by Transaction
// keeps all nested writes on one transaction.
type ContentStore struct {
	DB        *gorm.DB
	Papers    *PaperRepository
	Questions *QuestionRepository
	Variants  *VariantRepository
	Responses *ResponseRepository
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{
		DB:        db,
		Papers:    NewPaperRepository(db),
		Questions: NewQuestionRepository(db),
		Variants:  NewVariantRepository(db),
		Responses: NewResponseRepository(db),
	}
}

// Transaction runs fn inside a single database transaction. fn must only use
// the store it is handed; returning an error rolls everything back.
func (s *ContentStore) Transaction(ctx context.Context, fn func(tx *ContentStore) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewContentStore(tx))
	})
}
