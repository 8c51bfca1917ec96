// Copyright (c) 2026 Lectern. All rights reserved.
// Author: han.vutran.dev@gmail.com

package playlist

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

// fakeRepository is an in-memory Repository. Course hydration is modeled
// with a fixed summary table keyed by course id.
type fakeRepository struct {
	rows      map[string]*Playlist
	summaries map[string]CourseSummary
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		rows:      make(map[string]*Playlist),
		summaries: make(map[string]CourseSummary),
	}
}

func (f *fakeRepository) visible(p *Playlist, actorID string) bool {
	if p.Status == lifecycle.StatusDeleted {
		return false
	}
	return p.Status == lifecycle.StatusPublic || p.Creator == actorID
}

func (f *fakeRepository) Create(_ context.Context, playlist *Playlist) error {
	clone := *playlist
	f.rows[playlist.ID] = &clone
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id, actorID string) (*Playlist, error) {
	playlist, ok := f.rows[id]
	if !ok || !f.visible(playlist, actorID) {
		return nil, apperr.NotFound(Descriptor.Kind)
	}
	clone := *playlist
	return &clone, nil
}

func (f *fakeRepository) FindByIDs(_ context.Context, ids []string, actorID string) ([]*Playlist, error) {
	var out []*Playlist
	for _, id := range ids {
		if playlist, ok := f.rows[id]; ok && f.visible(playlist, actorID) {
			clone := *playlist
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListOwned(_ context.Context, actorID string, limit, offset int) ([]*Playlist, int, error) {
	var out []*Playlist
	for _, playlist := range f.rows {
		if playlist.Creator == actorID && playlist.Status != lifecycle.StatusDeleted {
			clone := *playlist
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) ListPublic(_ context.Context, limit, offset int) ([]*Playlist, int, error) {
	var out []*Playlist
	for _, playlist := range f.rows {
		if playlist.Status == lifecycle.StatusPublic {
			clone := *playlist
			out = append(out, &clone)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) Update(_ context.Context, id, actorID string, update Update) error {
	playlist, ok := f.rows[id]
	if !ok || playlist.Status == lifecycle.StatusDeleted || playlist.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	if update.Title != nil {
		playlist.Title = *update.Title
	}
	if update.Courses != nil {
		playlist.Courses = *update.Courses
	}
	return nil
}

func (f *fakeRepository) CourseSummaries(_ context.Context, ids []string, _ string) ([]CourseSummary, error) {
	var out []CourseSummary
	for _, id := range ids {
		if summary, ok := f.summaries[id]; ok {
			out = append(out, summary)
		}
	}
	return out, nil
}

type fakeEngine struct {
	repo *fakeRepository
}

func (f *fakeEngine) SetStatus(_ context.Context, _ lifecycle.Descriptor, id, actorID string, target lifecycle.Status) error {
	playlist, ok := f.repo.rows[id]
	if !ok || playlist.Status == lifecycle.StatusDeleted || playlist.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	playlist.Status = target
	return nil
}

func (f *fakeEngine) Remove(_ context.Context, _ lifecycle.Descriptor, id, actorID string) error {
	playlist, ok := f.repo.rows[id]
	if !ok || playlist.Status == lifecycle.StatusDeleted || playlist.Creator != actorID {
		return apperr.NotFound(Descriptor.Kind)
	}
	playlist.Status = lifecycle.StatusDeleted
	return nil
}

func newTestService() (*Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, &fakeEngine{repo: repo}, slog.Default()), repo
}

// # Creation

/*
TestCreatePlaylist verifies the creation defaults: private state, empty but
non-nil course list, and the slug shape.
*/
func TestCreatePlaylist(t *testing.T) {
	service, _ := newTestService()

	playlist := &Playlist{Title: "Backend Basics"}
	require.NoError(t, service.CreatePlaylist(context.Background(), "owner-1", playlist))

	assert.Equal(t, lifecycle.StatusPrivate, playlist.Status)
	assert.Equal(t, "owner-1", playlist.Creator)
	assert.Equal(t, "backend-basics-"+playlist.ID, playlist.Slug)
	assert.NotNil(t, playlist.Courses)
}

/*
TestCreatePlaylist_EmptyTitle verifies the untitled draft path: a playlist
may be created without a title, and the slug is then the bare id.
*/
func TestCreatePlaylist_EmptyTitle(t *testing.T) {
	service, _ := newTestService()

	playlist := &Playlist{}
	require.NoError(t, service.CreatePlaylist(context.Background(), "owner-1", playlist))

	assert.Equal(t, playlist.ID, playlist.Slug)
}

// # Hydration

/*
TestGetPlaylist_Hydration verifies that course references resolve in list
order and hidden references drop out silently.
*/
func TestGetPlaylist_Hydration(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	const (
		courseA = "01912f9e-0000-7000-8000-0000000000a1"
		courseB = "01912f9e-0000-7000-8000-0000000000b2"
		gone    = "01912f9e-0000-7000-8000-0000000000c3"
	)
	repo.summaries[courseA] = CourseSummary{ID: courseA, Title: "A"}
	repo.summaries[courseB] = CourseSummary{ID: courseB, Title: "B"}

	playlist := &Playlist{Title: "Path", Courses: []string{courseB, gone, courseA}}
	require.NoError(t, service.CreatePlaylist(ctx, "owner-1", playlist))

	got, summaries, err := service.GetPlaylist(ctx, playlist.ID, "owner-1")
	require.NoError(t, err)

	// Reference list keeps the gap; the hydrated view drops it.
	assert.Len(t, got.Courses, 3)
	require.Len(t, summaries, 2)
	assert.Equal(t, courseB, summaries[0].ID)
	assert.Equal(t, courseA, summaries[1].ID)
}
