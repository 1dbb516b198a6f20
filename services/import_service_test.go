package services

import (
	"context"
	"errors"
	"testing"

	"corpquiz/apperrors"
)

func importRows() []ImportRow {
	return []ImportRow{
		{QuizTitle: "Safety", FrequencyInDays: 7, QuestionText: "Q1", AnswerText: "right", IsCorrect: true},
		{QuizTitle: "Safety", FrequencyInDays: 7, QuestionText: "Q1", AnswerText: "wrong"},
		{QuizTitle: "Safety", FrequencyInDays: 7, QuestionText: "Q2", AnswerText: "right", IsCorrect: true},
		{QuizTitle: "Safety", FrequencyInDays: 7, QuestionText: "Q2", AnswerText: "wrong"},
	}
}

func TestImportCreatesQuiz(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(store, NewPermissionService())
	ctx := context.Background()

	owner := seedUser(store, "owner@example.com")
	company := seedCompany(store, owner.ID, "Acme")

	summary, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: importRows()})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(summary.Created) != 1 || summary.Created[0] != "Safety" {
		t.Errorf("created = %v", summary.Created)
	}
	if len(summary.Updated) != 0 {
		t.Errorf("updated = %v, want none", summary.Updated)
	}
	if len(store.data.quizzes) != 1 || len(store.data.questions) != 2 || len(store.data.answers) != 4 {
		t.Errorf("quizzes=%d questions=%d answers=%d",
			len(store.data.quizzes), len(store.data.questions), len(store.data.answers))
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(store, NewPermissionService())
	ctx := context.Background()

	owner := seedUser(store, "owner@example.com")
	company := seedCompany(store, owner.ID, "Acme")

	if _, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: importRows()}); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	summary, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: importRows()})
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if len(summary.Updated) != 1 || summary.Updated[0] != "Safety" {
		t.Errorf("updated = %v", summary.Updated)
	}
	if len(store.data.quizzes) != 1 || len(store.data.questions) != 2 || len(store.data.answers) != 4 {
		t.Errorf("re-import duplicated rows: quizzes=%d questions=%d answers=%d",
			len(store.data.quizzes), len(store.data.questions), len(store.data.answers))
	}
}

func TestImportUpdatesExistingQuiz(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(store, NewPermissionService())
	ctx := context.Background()

	owner := seedUser(store, "owner@example.com")
	company := seedCompany(store, owner.ID, "Acme")

	if _, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: importRows()}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	// Same title, new cadence, an extra question and a flipped answer.
	rows := importRows()
	for i := range rows {
		rows[i].FrequencyInDays = 30
	}
	rows[1].IsCorrect = true
	rows = append(rows,
		ImportRow{QuizTitle: "Safety", FrequencyInDays: 30, QuestionText: "Q3", AnswerText: "right", IsCorrect: true},
		ImportRow{QuizTitle: "Safety", FrequencyInDays: 30, QuestionText: "Q3", AnswerText: "wrong"},
	)
	if _, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: rows}); err != nil {
		t.Fatalf("re-import: %v", err)
	}

	quiz := store.data.quizzes[0]
	if quiz.FrequencyInDays != 30 {
		t.Errorf("frequency = %d, want 30", quiz.FrequencyInDays)
	}
	if len(store.data.questions) != 3 {
		t.Errorf("questions = %d, want 3", len(store.data.questions))
	}

	flipped, _ := (&fakeAnswerRepo{store.data}).FindByTextOrNone(ctx, store.data.questions[0].ID, "wrong")
	if flipped == nil || !flipped.IsCorrect {
		t.Errorf("answer flip not applied: %+v", flipped)
	}
}

func TestImportValidatesStructure(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(store, NewPermissionService())
	ctx := context.Background()

	owner := seedUser(store, "owner@example.com")
	company := seedCompany(store, owner.ID, "Acme")

	rows := importRows()[:2] // single question
	if _, err := svc.Import(ctx, owner.ID, company.ID, &ImportRequest{Rows: rows}); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
	if len(store.data.quizzes) != 0 {
		t.Errorf("quizzes = %d, want nothing persisted", len(store.data.quizzes))
	}
}

func TestImportAdminOnly(t *testing.T) {
	store := newFakeStore()
	svc := NewImportService(store, NewPermissionService())
	ctx := context.Background()

	owner := seedUser(store, "owner@example.com")
	member := seedUser(store, "member@example.com")
	company := seedCompany(store, owner.ID, "Acme")
	seedMember(store, company.ID, member.ID, false)

	if _, err := svc.Import(ctx, member.ID, company.ID, &ImportRequest{Rows: importRows()}); !errors.Is(err, apperrors.ErrCompanyPermission) {
		t.Errorf("err = %v, want ErrCompanyPermission", err)
	}
}

func TestGroupRowsPreservesOrder(t *testing.T) {
	rows := []ImportRow{
		{QuizTitle: "B", FrequencyInDays: 1, QuestionText: "Q2", AnswerText: "a", IsCorrect: true},
		{QuizTitle: "A", FrequencyInDays: 1, QuestionText: "Q1", AnswerText: "a", IsCorrect: true},
		{QuizTitle: "B", FrequencyInDays: 1, QuestionText: "Q1", AnswerText: "a", IsCorrect: true},
		{QuizTitle: "B", FrequencyInDays: 1, QuestionText: "Q2", AnswerText: "b"},
	}

	quizzes := groupRows(rows)
	if len(quizzes) != 2 || quizzes[0].title != "B" || quizzes[1].title != "A" {
		t.Fatalf("quiz order = %v", []string{quizzes[0].title, quizzes[1].title})
	}
	if got := quizzes[0].order; len(got) != 2 || got[0] != "Q2" || got[1] != "Q1" {
		t.Errorf("question order = %v, want input order", got)
	}
	if answers := quizzes[0].questions["Q2"]; len(answers) != 2 {
		t.Errorf("answers for Q2 = %d, want 2", len(answers))
	}
}
