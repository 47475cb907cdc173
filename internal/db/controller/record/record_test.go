package record

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephleon/leonweb/internal/db/dbtest"
	"github.com/josephleon/leonweb/internal/db/models"
)

func TestNilDatabase(t *testing.T) {
	ctx := context.Background()
	s := New[models.ContactMessage](nil, "")

	_, err := s.Count(ctx)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = s.List(ctx, 1, 10)
	require.ErrorIs(t, err, ErrDBNil)

	_, err = s.Get(ctx, 1)
	require.ErrorIs(t, err, ErrDBNil)

	require.ErrorIs(t, s.Create(ctx, &models.ContactMessage{}), ErrDBNil)
	require.ErrorIs(t, s.Update(ctx, &models.ContactMessage{}), ErrDBNil)
	require.ErrorIs(t, s.Delete(ctx, 1), ErrDBNil)
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	s := New[models.ContactMessage](dbtest.New(t), "")

	msg := &models.ContactMessage{FullName: "Jo Lee", Email: "jo@example.com", Message: "Hi"}
	require.NoError(t, s.Create(ctx, msg))
	require.NotZero(t, msg.ID)

	got, err := s.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jo Lee", got.FullName)
	assert.Equal(t, "jo@example.com", got.Email)
	assert.Equal(t, "Hi", got.Message)

	got.Message = "Hello again"
	require.NoError(t, s.Update(ctx, got))

	got, err = s.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", got.Message)

	require.NoError(t, s.Delete(ctx, msg.ID))

	_, err = s.Get(ctx, msg.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, msg.ID), ErrNotFound)
	require.ErrorIs(t, s.Create(ctx, nil), ErrNilRecord)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := New[models.BlogPost](dbtest.New(t), "created_at DESC")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Create(ctx, &models.BlogPost{
			Title:     fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	testCases := []struct {
		name      string
		page      int
		pageSize  int
		wantPage  int
		wantTitle []string
		wantPages int
	}{
		{name: "first page newest first", page: 1, pageSize: 2, wantPage: 1, wantTitle: []string{"post 4", "post 3"}, wantPages: 3},
		{name: "last page partial", page: 3, pageSize: 2, wantPage: 3, wantTitle: []string{"post 0"}, wantPages: 3},
		{name: "page clamped high", page: 9, pageSize: 2, wantPage: 3, wantTitle: []string{"post 0"}, wantPages: 3},
		{name: "page clamped low", page: 0, pageSize: 5, wantPage: 1, wantTitle: []string{"post 4", "post 3", "post 2", "post 1", "post 0"}, wantPages: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := s.List(ctx, tc.page, tc.pageSize)
			require.NoError(t, err)

			titles := make([]string, 0, len(p.Items))
			for _, item := range p.Items {
				titles = append(titles, item.Title)
			}

			assert.Equal(t, tc.wantTitle, titles)
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.EqualValues(t, 5, p.TotalItems)
			assert.Equal(t, p.Page > 1, p.HasPrev())
			assert.Equal(t, p.Page < p.TotalPages, p.HasNext())
		})
	}
}

func TestListEmpty(t *testing.T) {
	p, err := New[models.BlogPost](dbtest.New(t), "").List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext())
}

func TestCreateFailsOnClosedDatabase(t *testing.T) {
	conn := dbtest.New(t)
	s := New[models.ContactMessage](conn, "")

	dbtest.Break(t, conn)

	err := s.Create(context.Background(), &models.ContactMessage{FullName: "a", Email: "b", Message: "c"})
	require.Error(t, err)
}
