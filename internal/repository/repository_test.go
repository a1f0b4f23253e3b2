package repository

import (
	"context"
	"errors"
	"testing"

	"medexam_backend/internal/model"
	"medexam_backend/internal/util"
	"medexam_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *ContentStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewContentStore(db)
}

func TestMarkChoiceResponses(t *testing.T) {
	s := newTestStore(t)
	q := &model.Question{Type: model.QuestionMCQ, Text: "Q"}
	if err := s.Questions.Create(q); err != nil {
		t.Fatal(err)
	}
	c := &model.Choice{QuestionID: q.ID, Text: "Paris"}
	if err := s.Variants.CreateChoice(c); err != nil {
		t.Fatal(err)
	}
	old := "Old Paris"
	rows := []*model.UserMcqResponse{
		{UserID: 1, QuestionID: q.ID, ChoiceID: c.ID, Status: model.ResponseActive},
		{UserID: 2, QuestionID: q.ID, ChoiceID: c.ID, Status: model.ResponseObsolete, OriginalChoiceText: &old},
		{UserID: 3, QuestionID: q.ID, ChoiceID: c.ID + 100, Status: model.ResponseActive},
	}
	for _, r := range rows {
		if err := s.Responses.CreateMcq(r); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.Responses.MarkChoiceResponses(c.ID, c.Text, model.ResponseDeleted)
	if err != nil {
		t.Fatalf("MarkChoiceResponses: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows matched, got %d", n)
	}

	var got []model.UserMcqResponse
	if err := s.DB.Order("user_id asc").Find(&got).Error; err != nil {
		t.Fatal(err)
	}
	if got[0].Status != model.ResponseDeleted || got[0].OriginalChoiceText == nil || *got[0].OriginalChoiceText != "Paris" {
		t.Errorf("active response not annotated: %+v", got[0])
	}
	if got[1].Status != model.ResponseObsolete || *got[1].OriginalChoiceText != "Old Paris" {
		t.Errorf("annotated response must be left alone: %+v", got[1])
	}
	if got[2].Status != model.ResponseActive || got[2].OriginalChoiceText != nil {
		t.Errorf("unrelated response changed: %+v", got[2])
	}
}

func TestSoftDeleteAndRestorePaper(t *testing.T) {
	s := newTestStore(t)
	p := &model.Paper{Title: "P", Type: model.PaperMCQ}
	if err := s.Papers.Create(p); err != nil {
		t.Fatal(err)
	}

	if n, err := s.Papers.SoftDelete(p.ID); err != nil || n != 1 {
		t.Fatalf("SoftDelete = %d, %v", n, err)
	}
	if n, err := s.Papers.SoftDelete(p.ID); err != nil || n != 0 {
		t.Fatalf("second SoftDelete = %d, %v; want 0 rows", n, err)
	}
	if _, err := s.Papers.FindByID(p.ID); !errors.Is(err, util.ErrPaperNotFound) {
		t.Fatalf("expected ErrPaperNotFound, got %v", err)
	}
	got, err := s.Papers.FindByIDUnscoped(p.ID)
	if err != nil {
		t.Fatalf("FindByIDUnscoped: %v", err)
	}
	if !got.IsDeleted() {
		t.Error("expected tombstone")
	}

	if n, err := s.Papers.Restore(p.ID); err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v", n, err)
	}
	if _, err := s.Papers.FindByID(p.ID); err != nil {
		t.Fatalf("FindByID after restore: %v", err)
	}
}

func TestListDeletedByPaper(t *testing.T) {
	s := newTestStore(t)
	p := &model.Paper{Title: "P", Type: model.PaperMixed}
	if err := s.Papers.Create(p); err != nil {
		t.Fatal(err)
	}
	live := &model.Question{PaperID: &p.ID, Type: model.QuestionMCQ}
	gone := &model.Question{PaperID: &p.ID, Type: model.QuestionSAQ}
	for _, q := range []*model.Question{live, gone} {
		if err := s.Questions.Create(q); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Questions.SoftDelete(gone.ID); err != nil {
		t.Fatal(err)
	}

	all, err := s.Questions.ListByPaperUnscoped(p.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("ListByPaperUnscoped = %d, %v", len(all), err)
	}
	deleted, err := s.Questions.ListDeletedByPaper(p.ID)
	if err != nil || len(deleted) != 1 || deleted[0].ID != gone.ID {
		t.Fatalf("ListDeletedByPaper = %+v, %v", deleted, err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Transaction(context.Background(), func(tx *ContentStore) error {
		if err := tx.Papers.Create(&model.Paper{Title: "tmp", Type: model.PaperMCQ}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var count int64
	s.DB.Unscoped().Model(&model.Paper{}).Count(&count)
	if count != 0 {
		t.Errorf("expected rollback, found %d papers", count)
	}
}

func TestContentCacheWithoutRedis(t *testing.T) {
	c := NewContentCacheRepository(nil)
	if err := c.InvalidatePaper(context.Background(), 1); err != nil {
		t.Errorf("InvalidatePaper: %v", err)
	}
	if err := c.InvalidateQuestions(context.Background(), 1, 2); err != nil {
		t.Errorf("InvalidateQuestions: %v", err)
	}
	if PaperCacheKey(7) != "medexam:paper:7" || QuestionCacheKey(8) != "medexam:question:8" {
		t.Errorf("unexpected keys %q %q", PaperCacheKey(7), QuestionCacheKey(8))
	}
}
