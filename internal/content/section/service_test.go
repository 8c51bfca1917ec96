// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package section

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/apperr"
)

// # Test Doubles

// fakeRepository is an in-memory Repository honoring the visibility rules.
// Chapter ownership is modeled with a single known parent id per creator.
type fakeRepository struct {
	rows     map[string]*Section
	chapters map[string]string // chapter id -> owner
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		rows:     make(map[string]*Section),
		chapters: make(map[string]string),
	}
}

func (f *fakeRepository) visible(s *Section, actorID string) bool {
	if s.Status == lifecycle.StatusDeleted {
		return false
	}
	return s.Status == lifecycle.StatusPublic || s.Creator == actorID
}

func (f *fakeRepository) Create(_ context.Context, section *Section) error {
	owner, ok := f.chapters[section.Chapter]
	if !ok || owner != section.Creator {
		return apperr.NotFound("Chapter")
	}
	clone := *section
	f.rows[section.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id, actorID string) (*Section, error) {
	section, ok := f.rows[id]
	if !ok || !f.visible(section, actorID) {
		return nil, apperr.NotFound(Descriptor.Kind)
	}
	clone := *section
	return &clone, nil
}

func (f *fakeRepository) FindByIDs(_ context.Context, ids []string, actorID string) ([]*Section, error) {
	var out []*Section
	for _, id := range ids {
		if section, ok := f.rows[id]; ok && f.visible(section, actorID) {
			clone := *section
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOwned(_ context.Context, actorID string, limit, offset int) ([]*Section, int, error) {
	var out []*Section
	for _, section := range f.rows {
		if section.Creator == actorID && section.Status != lifecycle.StatusDeleted {
			clone := *section
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListPublic(_ context.Context, limit, offset int) ([]*Section, int, error) {
	var out []*Section
	for _, section := range f.rows {
		if section.Status == lifecycle.StatusPublic {
			clone := *section
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, id, actorID string, update Update) error {
	section, ok := f.rows[id]
	if !ok || section.Status == lifecycle.StatusDeleted || section.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	if update.Title != nil {
		section.Title = *update.Title
	}
	if update.Exercise != nil {
		if *update.Exercise == "" {
			section.Exercise = nil
		} else {
			value := *update.Exercise
			section.Exercise = &value
		}
	}
	return nil
}

type fakeEngine struct {
	repo *fakeRepository
}

func (f *fakeEngine) SetStatus(_ context.Context, _ lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error {
	section, ok := f.repo.rows[id]
	if !ok || section.Status == lifecycle.StatusDeleted || section.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	section.Status = target
	return nil
}

func (f *fakeEngine) Remove(_ context.Context, _ lifecycle.Descriptor, id, actorID string) error {
	section, ok := f.repo.rows[id]
	if !ok || section.Status == lifecycle.StatusDeleted || section.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	section.Status = lifecycle.StatusDeleted
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, &fakeEngine{repo: repo}, slog.Default()), repo
}

const (
	testChapterID = "01912f9e-0000-7000-8000-0000000000aa"
	testSuiteID   = "01912f9e-0000-7000-8000-0000000000bb"
)

// # Creation

/*
TestCreateSection verifies the defaults: type falls back to article, the
initial state is private, and the creator owns the row.
*/
func TestCreateSection(t *testing.T) {
	service, repo := newTestService()
	repo.chapters[testChapterID] = "owner-1"

	section := &Section{Title: "Joins and Indexes", Chapter: testChapterID}
	require.NoError(t, service.CreateSection(context.Background(), "owner-1", section))

	assert.Equal(t, TypeArticle, section.Type)
	assert.Equal(t, lifecycle.StatusPrivate, section.Status)
	assert.Equal(t, "owner-1", section.Creator)
	assert.NotEmpty(t, section.Slug)
}

/*
TestCreateSection_ExerciseRule verifies that only quiz sections may carry a
test-suite link.
*/
func TestCreateSection_ExerciseRule(t *testing.T) {
	service, repo := newTestService()
	repo.chapters[testChapterID] = "owner-1"
	ctx := context.Background()

	suiteID := testSuiteID

	// Article sections reject the link.
	err := service.CreateSection(ctx, "owner-1", &Section{
		Title:    "Reading Material",
		Chapter:  testChapterID,
		Type:     TypeArticle,
		Exercise: &suiteID,
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	// Quiz sections accept it.
	quiz := &Section{
		Title:    "Chapter Quiz",
		Chapter:  testChapterID,
		Type:     TypeQuiz,
		Exercise: &suiteID,
	}
	require.NoError(t, service.CreateSection(ctx, "owner-1", quiz))
	require.NotNil(t, quiz.Exercise)
	assert.Equal(t, suiteID, *quiz.Exercise)
}

/*
TestCreateSection_ForeignChapter verifies that creating under someone else's
chapter reports NotFound for the chapter, leaking nothing about it.
*/
func TestCreateSection_ForeignChapter(t *testing.T) {
	service, repo := newTestService()
	repo.chapters[testChapterID] = "owner-1"

	err := service.CreateSection(context.Background(), "intruder", &Section{
		Title:   "Sneaky Lesson",
		Chapter: testChapterID,
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Management

/*
TestUpdateSection_ClearExercise verifies that an empty string clears the
test-suite link while nil leaves it untouched.
*/
func TestUpdateSection_ClearExercise(t *testing.T) {
	service, repo := newTestService()
	repo.chapters[testChapterID] = "owner-1"
	ctx := context.Background()

	suiteID := testSuiteID
	quiz := &Section{Title: "Quiz", Chapter: testChapterID, Type: TypeQuiz, Exercise: &suiteID}
	require.NoError(t, service.CreateSection(ctx, "owner-1", quiz))

	// Untouched by an unrelated update.
	newTitle := "Final Quiz"
	updated, err := service.UpdateSection(ctx, quiz.ID, "owner-1", Update{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated.Exercise)

	// Cleared by the empty string.
	empty := ""
	updated, err = service.UpdateSection(ctx, quiz.ID, "owner-1", Update{Exercise: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.Exercise)
}

/*
TestDeleteSection_Terminal verifies the tombstone is invisible even to the
owner and cannot be republished.
*/
func TestDeleteSection_Terminal(t *testing.T) {
	service, repo := newTestService()
	repo.chapters[testChapterID] = "owner-1"
	ctx := context.Background()

	section := &Section{Title: "Doomed", Chapter: testChapterID}
	require.NoError(t, service.CreateSection(ctx, "owner-1", section))
	require.NoError(t, service.DeleteSection(ctx, section.ID, "owner-1"))

	_, err := service.GetSection(ctx, section.ID, "owner-1")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.PublishSection(ctx, section.ID, "owner-1")
	assert.True(t, apperr.IsNotFound(err))
}
