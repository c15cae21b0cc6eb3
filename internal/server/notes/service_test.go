package notes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jojiiikol/notes-backend/internal/common"
)

// fakeRepo keeps notes in memory and assigns sequential ids.
type fakeRepo struct {
	nextID int64
	byID   map[int64]*Note
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, byID: make(map[int64]*Note)}
}

func (f *fakeRepo) Create(ctx context.Context, note *Note) (*Note, error) {
	note.ID = f.nextID
	f.nextID++
	f.byID[note.ID] = note
	return note, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Note, error) {
	if n, ok := f.byID[id]; ok {
		return n, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeRepo) GetByOwner(ctx context.Context, ownerID int64) ([]*Note, error) {
	var result []*Note
	for _, n := range f.byID {
		if n.OwnerID == ownerID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]*Note, error) {
	var result []*Note
	for _, n := range f.byID {
		result = append(result, n)
	}
	return result, nil
}

func (f *fakeRepo) Update(ctx context.Context, note *Note) (*Note, error) {
	if _, ok := f.byID[note.ID]; !ok {
		return nil, common.ErrNotFound
	}
	f.byID[note.ID] = note
	return note, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func TestCreate_SetsOwnerAndTimestamps(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	note, err := svc.Create(context.Background(), 1, "title", "description")
	require.NoError(t, err)
	require.NotZero(t, note.ID)
	require.Equal(t, int64(1), note.OwnerID)
	require.False(t, note.CreatedAt.IsZero())
	require.True(t, note.UpdatedAt.Equal(note.CreatedAt))
}

func TestUpdate_PatchSemantics(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	note, err := svc.Create(context.Background(), 1, "title", "description")
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	title := "new title"
	updated, err := svc.Update(context.Background(), note.ID, Patch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "description", updated.Description, "description untouched when not patched")
	require.Equal(t, int64(1), updated.OwnerID, "owner never changes")
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdate_MissingNote(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	title := "new title"
	_, err := svc.Update(context.Background(), 42, Patch{Title: &title})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete_ThenGetFails(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo())

	note, err := svc.Create(context.Background(), 1, "title", "description")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), note.ID))

	_, err = svc.GetByID(context.Background(), note.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}
