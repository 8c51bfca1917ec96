// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package course

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanvu/lectern/internal/content/lifecycle"
	"github.com/hanvu/lectern/internal/platform/apperr"
)

// # Test Doubles

// fakeRepository is an in-memory Repository honoring the visibility rules.
type fakeRepository struct {
	rows map[string]*Course
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: make(map[string]*Course)}
}

func (f *fakeRepository) visible(c *Course, actorID string) bool {
	if c.Status == lifecycle.StatusDeleted {
		return false
	}
	return c.Status == lifecycle.StatusPublic || c.Creator == actorID
}

func (f *fakeRepository) Create(_ context.Context, course *Course) error {
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	clone := *course
	f.rows[course.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id, actorID string) (*Course, error) {
	course, ok := f.rows[id]
	if !ok || !f.visible(course, actorID) {
		return nil, apperr.NotFound(Descriptor.Kind)
	}
	clone := *course
	return &clone, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slugValue, actorID string) (*Course, error) {
	for _, course := range f.rows {
		if course.Slug == slugValue && f.visible(course, actorID) {
			clone := *course
			return &clone, nil
		}
	}
	return nil, apperr.NotFound(Descriptor.Kind)
}

func (f *fakeRepository) FindByIDs(_ context.Context, ids []string, actorID string) ([]*Course, error) {
	var out []*Course
	for _, id := range ids {
		if course, ok := f.rows[id]; ok && f.visible(course, actorID) {
			clone := *course
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOwned(_ context.Context, actorID string, limit, offset int) ([]*Course, int, error) {
	var out []*Course
	for _, course := range f.rows {
		if course.Creator == actorID && course.Status != lifecycle.StatusDeleted {
			clone := *course
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListPublic(_ context.Context, limit, offset int) ([]*Course, int, error) {
	var out []*Course
	for _, course := range f.rows {
		if course.Status == lifecycle.StatusPublic {
			clone := *course
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, id, actorID string, update Update) error {
	course, ok := f.rows[id]
	if !ok || course.Status == lifecycle.StatusDeleted || course.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.ActualPrice != nil {
		course.ActualPrice = *update.ActualPrice
	}
	if update.Chapters != nil {
		course.Chapters = *update.Chapters
	}
	course.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepository) ChapterSummaries(_ context.Context, ids []string, _ string) ([]ChapterSummary, error) {
	return nil, nil
}

// fakeEngine records lifecycle calls and mutates the fake repository the way
// the real engine mutates the tables.
type fakeEngine struct {
	repo    *fakeRepository
	removed []string
}

func (f *fakeEngine) SetStatus(_ context.Context, _ lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error {
	course, ok := f.repo.rows[id]
	if !ok || course.Status == lifecycle.StatusDeleted || course.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	course.Status = target
	return nil
}

func (f *fakeEngine) Remove(_ context.Context, _ lifecycle.Descriptor, id, actorID string) error {
	course, ok := f.repo.rows[id]
	if !ok || course.Status == lifecycle.StatusDeleted || course.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	course.Status = lifecycle.StatusDeleted
	f.removed = append(f.removed, id)
	return nil
}

func newTestService() (*Service, *fakeRepository, *fakeEngine) {
	repo := newFakeRepository()
	engine := &fakeEngine{repo: repo}
	return NewService(repo, engine, slog.Default()), repo, engine
}

// # Creation

/*
TestCreateCourse verifies the creation path: private initial state, owner
assignment, and the slug shape (normalized title + id suffix).
*/
func TestCreateCourse(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	course := &Course{Title: "Practical PostgreSQL", ActualPrice: 49}
	require.NoError(t, service.CreateCourse(ctx, "owner-1", course))

	assert.NotEmpty(t, course.ID)
	assert.Equal(t, lifecycle.StatusPrivate, course.Status)
	assert.Equal(t, "owner-1", course.Creator)
	assert.True(t, strings.HasPrefix(course.Slug, "practical-postgresql-"))
	assert.True(t, strings.HasSuffix(course.Slug, course.ID))
	assert.Empty(t, course.Chapters)
	assert.NotNil(t, course.Requirements)
}

/*
TestCreateCourse_EmptyTitle verifies the untitled draft path: a course may
be created without a title, and the slug is then the bare id.
*/
func TestCreateCourse_EmptyTitle(t *testing.T) {
	service, _, _ := newTestService()

	course := &Course{}
	require.NoError(t, service.CreateCourse(context.Background(), "owner-1", course))

	assert.Equal(t, lifecycle.StatusPrivate, course.Status)
	assert.Equal(t, course.ID, course.Slug)
}

/*
TestCreateCourse_Validation verifies rejected inputs never reach storage.
*/
func TestCreateCourse_Validation(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		course *Course
	}{
		{"overlong_title", &Course{Title: strings.Repeat("x", 201)}},
		{"negative_price", &Course{Title: "x", ActualPrice: -5}},
		{"discount_above_price", &Course{Title: "x", ActualPrice: 10, DiscountedPrice: 20}},
		{"unknown_level", &Course{Title: "x", Level: Level("expert")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateCourse(ctx, "owner-1", tt.course)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
	assert.Empty(t, repo.rows)
}

// # Visibility

/*
TestGetCourse_Visibility verifies the fetch rules: owners always see their
live rows, others see public only, and every denial is the same NotFound.
*/
func TestGetCourse_Visibility(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	draft := &Course{Title: "Draft Course"}
	require.NoError(t, service.CreateCourse(ctx, "owner-1", draft))

	t.Run("owner_reads_private", func(t *testing.T) {
		got, _, err := service.GetCourse(ctx, draft.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, draft.ID, got.ID)
	})

	t.Run("stranger_gets_not_found", func(t *testing.T) {
		_, _, err := service.GetCourse(ctx, draft.ID, "stranger")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("anonymous_gets_not_found", func(t *testing.T) {
		_, _, err := service.GetCourse(ctx, draft.ID, "")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("everyone_reads_public", func(t *testing.T) {
		repo.rows[draft.ID].Status = lifecycle.StatusPublic
		_, _, err := service.GetCourse(ctx, draft.ID, "")
		assert.NoError(t, err)
	})

	t.Run("owner_cannot_read_deleted", func(t *testing.T) {
		repo.rows[draft.ID].Status = lifecycle.StatusDeleted
		_, _, err := service.GetCourse(ctx, draft.ID, "owner-1")
		assert.True(t, apperr.IsNotFound(err))
	})
}

// # Updates & Slug Stability

/*
TestUpdateCourse_SlugStable verifies that editing the title never touches
the slug: published links survive renames.
*/
func TestUpdateCourse_SlugStable(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	course := &Course{Title: "Original Title"}
	require.NoError(t, service.CreateCourse(ctx, "owner-1", course))
	originalSlug := course.Slug

	newTitle := "Completely Different Title"
	updated, err := service.UpdateCourse(ctx, course.ID, "owner-1", Update{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, originalSlug, updated.Slug)

	// The old slug still resolves to the renamed course.
	bySlug, _, err := service.GetCourseBySlug(ctx, originalSlug, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, course.ID, bySlug.ID)
}

/*
TestUpdateCourse_NotOwner verifies that a foreign update reports NotFound,
not Forbidden, hiding the row's existence.
*/
func TestUpdateCourse_NotOwner(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	course := &Course{Title: "Mine"}
	require.NoError(t, service.CreateCourse(ctx, "owner-1", course))

	title := "Hijacked"
	_, err := service.UpdateCourse(ctx, course.ID, "stranger", Update{Title: &title})
	assert.True(t, apperr.IsNotFound(err))
}

// # Lifecycle

/*
TestPublishUnpublishDelete verifies the lifecycle round trip and that delete
is terminal.
*/
func TestPublishUnpublishDelete(t *testing.T) {
	service, _, engine := newTestService()
	ctx := context.Background()

	course := &Course{Title: "Lifecycle"}
	require.NoError(t, service.CreateCourse(ctx, "owner-1", course))

	published, err := service.PublishCourse(ctx, course.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPublic, published.Status)

	private, err := service.UnpublishCourse(ctx, course.ID, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusPrivate, private.Status)

	require.NoError(t, service.DeleteCourse(ctx, course.ID, "owner-1"))
	assert.Equal(t, []string{course.ID}, engine.removed)

	// Terminal: no operation resurrects or even acknowledges the row.
	_, err = service.PublishCourse(ctx, course.ID, "owner-1")
	assert.True(t, apperr.IsNotFound(err))
	_, _, err = service.GetCourse(ctx, course.ID, "owner-1")
	assert.True(t, apperr.IsNotFound(err))
	err = service.DeleteCourse(ctx, course.ID, "owner-1")
	assert.True(t, apperr.IsNotFound(err))
}

// # Batch Lookup

/*
TestListCoursesByIDs verifies order preservation and silent dropping of
hidden entries.
*/
func TestListCoursesByIDs(t *testing.T) {
	service, repo, _ := newTestService()
	ctx := context.Background()

	a := &Course{Title: "A"}
	b := &Course{Title: "B"}
	c := &Course{Title: "C"}
	for _, course := range []*Course{a, b, c} {
		require.NoError(t, service.CreateCourse(ctx, "owner-1", course))
	}
	repo.rows[a.ID].Status = lifecycle.StatusPublic
	repo.rows[c.ID].Status = lifecycle.StatusPublic

	t.Run("anonymous_sees_public_in_order", func(t *testing.T) {
		got, err := service.ListCoursesByIDs(ctx, []string{c.ID, b.ID, a.ID}, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, c.ID, got[0].ID)
		assert.Equal(t, a.ID, got[1].ID)
	})

	t.Run("owner_sees_private_too", func(t *testing.T) {
		got, err := service.ListCoursesByIDs(ctx, []string{a.ID, b.ID, c.ID}, "owner-1")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("rejects_malformed_ids", func(t *testing.T) {
		_, err := service.ListCoursesByIDs(ctx, []string{"not-a-uuid"}, "")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

// # Deletion Wiring

/*
TestDescriptor_CascadeCoverage verifies the course delete reaches every
descendant level: chapters directly, then sections through chapters, in
that order, with no parent to unlink from.
*/
func TestDescriptor_CascadeCoverage(t *testing.T) {
	require.Len(t, Descriptor.Cascades, 2)
	assert.Nil(t, Descriptor.Parent)

	chapters := Descriptor.Cascades[0]
	assert.Equal(t, "chapters", chapters.Table)
	assert.Equal(t, "course", chapters.FKColumn)
	assert.Empty(t, chapters.ViaTable)

	sections := Descriptor.Cascades[1]
	assert.Equal(t, "sections", sections.Table)
	assert.Equal(t, "chapters", sections.ViaTable)
	assert.Equal(t, "course", sections.ViaFKColumn)
	assert.Contains(t, sections.Query(), "SELECT id FROM chapters WHERE course = $1")
}
