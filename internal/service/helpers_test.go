package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"medexam_backend/internal/model"
	"medexam_backend/internal/repository"
	"medexam_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fakeCache struct {
	mu        sync.Mutex
	papers    []uint
	questions []uint
	err       error
}

func (f *fakeCache) InvalidatePaper(_ context.Context, paperID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.papers = append(f.papers, paperID)
	return f.err
}

func (f *fakeCache) InvalidateQuestions(_ context.Context, questionIDs ...uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, questionIDs...)
	return f.err
}

type fixture struct {
	db        *gorm.DB
	store     *repository.ContentStore
	cache     *fakeCache
	questions *QuestionDeletionService
	papers    *PaperDeletionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	store := repository.NewContentStore(db)
	cache := &fakeCache{}
	qs := NewQuestionDeletionService(store, cache)
	return &fixture{
		db:        db,
		store:     store,
		cache:     cache,
		questions: qs,
		papers:    NewPaperDeletionService(store, qs, cache),
	}
}

func (f *fixture) insertPaper(t *testing.T, title string, typ model.PaperType) *model.Paper {
	t.Helper()
	p := &model.Paper{Title: title, Type: typ, ConceptID: 1}
	if err := f.store.Papers.Create(p); err != nil {
		t.Fatalf("insertPaper: %v", err)
	}
	return p
}

func (f *fixture) insertQuestion(t *testing.T, paper *model.Paper, typ model.QuestionType, text string) *model.Question {
	t.Helper()
	q := &model.Question{Type: typ, Text: text}
	if paper != nil {
		q.PaperID = &paper.ID
	}
	if err := f.store.Questions.Create(q); err != nil {
		t.Fatalf("insertQuestion: %v", err)
	}
	return q
}

func (f *fixture) insertChoice(t *testing.T, q *model.Question, text string) *model.Choice {
	t.Helper()
	c := &model.Choice{QuestionID: q.ID, Text: text}
	if err := f.store.Variants.CreateChoice(c); err != nil {
		t.Fatalf("insertChoice: %v", err)
	}
	return c
}

func (f *fixture) insertPart(t *testing.T, q *model.Question, text string) *model.Part {
	t.Helper()
	p := &model.Part{QuestionID: q.ID, Text: text, Answer: "answer for " + text}
	if err := f.store.Variants.CreatePart(p); err != nil {
		t.Fatalf("insertPart: %v", err)
	}
	return p
}

func (f *fixture) insertStation(t *testing.T, q *model.Question, text string) *model.Station {
	t.Helper()
	s := &model.Station{QuestionID: q.ID, Text: text}
	if err := f.store.Variants.CreateStation(s); err != nil {
		t.Fatalf("insertStation: %v", err)
	}
	return s
}

func (f *fixture) insertMcqResponse(t *testing.T, c *model.Choice, userID uint) *model.UserMcqResponse {
	t.Helper()
	r := &model.UserMcqResponse{UserID: userID, QuestionID: c.QuestionID, ChoiceID: c.ID, Status: model.ResponseActive}
	if err := f.store.Responses.CreateMcq(r); err != nil {
		t.Fatalf("insertMcqResponse: %v", err)
	}
	return r
}

func (f *fixture) insertSaqResponse(t *testing.T, p *model.Part, userID uint) *model.UserSaqResponse {
	t.Helper()
	r := &model.UserSaqResponse{UserID: userID, QuestionID: p.QuestionID, PartID: p.ID, Answer: "my answer", Status: model.ResponseActive}
	if err := f.store.Responses.CreateSaq(r); err != nil {
		t.Fatalf("insertSaqResponse: %v", err)
	}
	return r
}

func (f *fixture) insertStationResponse(t *testing.T, s *model.Station, userID uint) *model.UserStationResponse {
	t.Helper()
	r := &model.UserStationResponse{UserID: userID, QuestionID: s.QuestionID, StationID: s.ID, Status: model.ResponseActive}
	if err := f.store.Responses.CreateStation(r); err != nil {
		t.Fatalf("insertStationResponse: %v", err)
	}
	return r
}

// reload fetches dest by primary key, including soft-deleted rows.
func (f *fixture) reload(t *testing.T, dest interface{}, id uint) {
	t.Helper()
	if err := f.db.Unscoped().First(dest, id).Error; err != nil {
		t.Fatalf("reload %T %d: %v", dest, id, err)
	}
}

var errInjected = errors.New("injected write failure")

// failDeletesOn makes every gorm delete against table fail.
func (f *fixture) failDeletesOn(t *testing.T, table string) {
	t.Helper()
	err := f.db.Callback().Delete().Before("gorm:delete").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errInjected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
