package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/abhismart8/resume-builder/internal/database"
	"github.com/abhismart8/resume-builder/internal/dbtest"
	"github.com/abhismart8/resume-builder/internal/resume"
)

func strPtr(s string) *string { return &s }

func seedResume(t *testing.T, s *ResumeStore, owner uint, title string) *database.Resume {
	t.Helper()
	r := &database.Resume{
		UserID:  owner,
		Title:   title,
		Content: datatypes.NewJSONType(resume.Content{Summary: title}),
	}
	require.NoError(t, s.Insert(context.Background(), r))
	return r
}

func TestResumeStore_InsertStripsShareFields(t *testing.T) {
	db := dbtest.Open(t)
	owner := dbtest.SeedUser(t, db, "a@example.com")
	s := NewResumeStore(db)

	r := &database.Resume{UserID: owner.ID, Title: "cv", ShareLinkToken: strPtr("x"), IsPublic: true}
	require.NoError(t, s.Insert(context.Background(), r))

	got, err := s.FindOne(context.Background(), Filter{ID: r.ID})
	require.NoError(t, err)
	assert.False(t, got.IsPublic)
	assert.Nil(t, got.ShareLinkToken)
}

func TestResumeStore_SparseUniqueToken(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	owner := dbtest.SeedUser(t, db, "a@example.com")
	s := NewResumeStore(db)

	a := seedResume(t, s, owner.ID, "a")
	b := seedResume(t, s, owner.ID, "b")
	seedResume(t, s, owner.ID, "c")

	_, err := s.UpdateOne(ctx, Filter{ID: a.ID}, ShareUpdate(strPtr("tok"), true))
	require.NoError(t, err)

	_, err = s.UpdateOne(ctx, Filter{ID: b.ID}, ShareUpdate(strPtr("tok"), true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	// 多条记录可以同时没有令牌。
	_, err = s.UpdateOne(ctx, Filter{ID: a.ID}, ShareUpdate(nil, false))
	require.NoError(t, err)
	all, err := s.Find(ctx, Filter{OwnerID: owner.ID})
	require.NoError(t, err)
	for _, r := range all {
		assert.Nil(t, r.ShareLinkToken)
	}
}

func TestResumeStore_UpdateOneConditionedOnOwner(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	owner := dbtest.SeedUser(t, db, "a@example.com")
	other := dbtest.SeedUser(t, db, "b@example.com")
	s := NewResumeStore(db)
	r := seedResume(t, s, owner.ID, "mine")

	_, err := s.UpdateOne(ctx, Filter{ID: r.ID, OwnerID: other.ID}, Patch{Title: strPtr("stolen")})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateOne(ctx, Filter{ID: r.ID, OwnerID: owner.ID}, Patch{
		Title:   strPtr("renamed"),
		Content: &resume.Content{Skills: []string{"go"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, []string{"go"}, updated.Content.Data().Skills)
}

func TestResumeStore_FindOneByTokenAndPublic(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	owner := dbtest.SeedUser(t, db, "a@example.com")
	s := NewResumeStore(db)
	r := seedResume(t, s, owner.ID, "cv")

	_, err := s.UpdateOne(ctx, Filter{ID: r.ID}, ShareUpdate(strPtr("abc"), true))
	require.NoError(t, err)
	got, err := s.FindOne(ctx, Filter{ShareToken: "abc", PublicOnly: true})
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	// 令牌仍在但已不公开。
	require.NoError(t, db.Model(&database.Resume{}).Where("id = ?", r.ID).Update("is_public", false).Error)
	_, err = s.FindOne(ctx, Filter{ShareToken: "abc", PublicOnly: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumeStore_DeleteOne(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	owner := dbtest.SeedUser(t, db, "a@example.com")
	other := dbtest.SeedUser(t, db, "b@example.com")
	s := NewResumeStore(db)
	r := seedResume(t, s, owner.ID, "cv")

	ok, err := s.DeleteOne(ctx, Filter{ID: r.ID, OwnerID: other.ID})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DeleteOne(ctx, Filter{ID: r.ID, OwnerID: owner.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.FindOne(ctx, Filter{ID: r.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumeStore_EmptyFilterRejected(t *testing.T) {
	s := NewResumeStore(dbtest.Open(t))
	_, err := s.UpdateOne(context.Background(), Filter{}, Patch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrEmptyFilter)
	_, err = s.DeleteOne(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrEmptyFilter)
}
