package blogservice

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/currytech/internal/common"
	"github.com/sushihentaime/currytech/internal/userservice"
)

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := common.TestDB(t)
	return NewBlogService(db), db
}

// createTestUser inserts a user row directly, bypassing registration.
func createTestUser(t *testing.T, db *sql.DB, name string, role userservice.Role) *userservice.User {
	t.Helper()

	u := &userservice.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Role:  role,
	}

	_, err := db.Exec(`INSERT INTO users (id, name, email, password, role) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Name, u.Email, []byte("not-a-hash"), u.Role)
	require.NoError(t, err)

	return u
}

func createTestBlog(t *testing.T, s *BlogService, author *userservice.User, title string) *Blog {
	t.Helper()

	b, err := s.CreateBlog(context.Background(), author, CreateBlogRequest{Title: title, Content: "Body of " + title, Tags: []string{"cloud"}})
	require.NoError(t, err)

	return b
}

func TestCreateBlog(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)
	user := createTestUser(t, db, "user", userservice.RoleUser)

	testCases := []struct {
		name        string
		user        *userservice.User
		req         CreateBlogRequest
		expectedErr error
	}{
		{
			name: "Admin",
			user: admin,
			req:  CreateBlogRequest{Title: "Test Blog", Content: "This is a test blog.<script>alert(1)</script>"},
		},
		{
			name:        "Non Admin",
			user:        user,
			req:         CreateBlogRequest{Title: "Test Blog", Content: "This is a test blog."},
			expectedErr: common.ErrForbidden,
		},
		{
			name:        "Empty Title",
			user:        admin,
			req:         CreateBlogRequest{Content: "This is a test blog."},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := s.CreateBlog(context.Background(), tc.user, tc.req)
			assert.Equal(t, tc.expectedErr, err)

			if tc.expectedErr == nil {
				require.NotNil(t, b)
				assert.Equal(t, tc.user.ID, b.Author.ID)
				assert.Equal(t, tc.user.Name, b.Author.Name)
				assert.Equal(t, "This is a test blog.", b.Content)
				assert.Equal(t, 0, b.Views)
				assert.Equal(t, 0, b.Likes)
				assert.Empty(t, b.LikedBy)
				assert.Empty(t, b.Comments)
			}
		})
	}
}

func TestListBlogs(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)

	for i := 1; i <= 12; i++ {
		createTestBlog(t, s, admin, fmt.Sprintf("Blog %d", i))
	}

	ctx := context.Background()

	t.Run("Second Page", func(t *testing.T) {
		list, err := s.ListBlogs(ctx, 2, 5, "")
		require.NoError(t, err)

		assert.Equal(t, 12, list.Total)
		require.Len(t, list.Blogs, 5)
		assert.Equal(t, "Blog 7", list.Blogs[0].Title)
		assert.Equal(t, &PageRef{Page: 3, Limit: 5}, list.Pagination.Next)
		assert.Equal(t, &PageRef{Page: 1, Limit: 5}, list.Pagination.Prev)
	})

	t.Run("Defaults", func(t *testing.T) {
		list, err := s.ListBlogs(ctx, 0, 0, "")
		require.NoError(t, err)

		assert.Len(t, list.Blogs, 10)
		assert.Equal(t, "Blog 12", list.Blogs[0].Title)
		assert.Equal(t, &PageRef{Page: 2, Limit: 10}, list.Pagination.Next)
		assert.Nil(t, list.Pagination.Prev)
	})

	t.Run("Tag Filter", func(t *testing.T) {
		list, err := s.ListBlogs(ctx, 1, 10, "missing")
		require.NoError(t, err)

		assert.Equal(t, 0, list.Total)
		assert.Empty(t, list.Blogs)
	})
}

func TestGetBlogCountsViews(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)
	created := createTestBlog(t, s, admin, "Viewed")

	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		b, err := s.GetBlog(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, want, b.Views)
	}

	_, err := s.GetBlog(ctx, uuid.NewString())
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestUpdateAndDeleteBlogOwnership(t *testing.T) {
	s, db := setupTestEnvironment(t)
	author := createTestUser(t, db, "author", userservice.RoleAdmin)
	otherAdmin := createTestUser(t, db, "other", userservice.RoleAdmin)
	stranger := createTestUser(t, db, "stranger", userservice.RoleUser)
	b := createTestBlog(t, s, author, "Owned")

	ctx := context.Background()
	title := "Renamed"

	testCases := []struct {
		name        string
		user        *userservice.User
		id          string
		expectedErr error
	}{
		{name: "Stranger", user: stranger, id: b.ID, expectedErr: common.ErrForbidden},
		{name: "Missing", user: stranger, id: uuid.NewString(), expectedErr: common.ErrRecordNotFound},
		{name: "Author", user: author, id: b.ID},
		{name: "Other Admin", user: otherAdmin, id: b.ID},
	}

	for _, tc := range testCases {
		t.Run("Update "+tc.name, func(t *testing.T) {
			updated, err := s.UpdateBlog(ctx, tc.user, tc.id, UpdateBlogRequest{Title: &title})
			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedErr == nil {
				assert.Equal(t, title, updated.Title)
				assert.Equal(t, b.Content, updated.Content)
			}
		})
	}

	empty := ""
	_, err := s.UpdateBlog(ctx, author, b.ID, UpdateBlogRequest{Content: &empty})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"content": "must be provided"}}, err)

	assert.ErrorIs(t, s.DeleteBlog(ctx, stranger, b.ID), common.ErrForbidden)
	assert.NoError(t, s.DeleteBlog(ctx, otherAdmin, b.ID))
	assert.ErrorIs(t, s.DeleteBlog(ctx, author, b.ID), common.ErrRecordNotFound)
}

func TestAddComment(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)
	user := createTestUser(t, db, "reader", userservice.RoleUser)
	b := createTestBlog(t, s, admin, "Discussed")

	ctx := context.Background()

	_, err := s.AddComment(ctx, user, b.ID, CommentRequest{Comment: "first"})
	require.NoError(t, err)

	comments, err := s.AddComment(ctx, admin, b.ID, CommentRequest{Comment: "second"})
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Comment)
	assert.Equal(t, "admin", comments[0].Name)
	assert.Equal(t, "first", comments[1].Comment)
	assert.Equal(t, user.ID, comments[1].User.ID)

	_, err = s.AddComment(ctx, user, b.ID, CommentRequest{Comment: "  "})
	assert.Equal(t, common.ValidationError{Errors: map[string]string{"comment": "must be provided"}}, err)

	_, err = s.AddComment(ctx, user, uuid.NewString(), CommentRequest{Comment: "lost"})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestToggleLike(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)
	user := createTestUser(t, db, "reader", userservice.RoleUser)
	b := createTestBlog(t, s, admin, "Liked")

	ctx := context.Background()

	res, err := s.ToggleLike(ctx, user, b.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.Likes)
	assert.Equal(t, []string{user.ID}, res.Blog.LikedBy)

	res, err = s.ToggleLike(ctx, user, b.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.Likes)
	assert.Empty(t, res.Blog.LikedBy)
}

func TestToggleLikeConcurrent(t *testing.T) {
	s, db := setupTestEnvironment(t)
	admin := createTestUser(t, db, "admin", userservice.RoleAdmin)
	b := createTestBlog(t, s, admin, "Popular")

	users := make([]*userservice.User, 10)
	for i := range users {
		users[i] = createTestUser(t, db, fmt.Sprintf("fan%d", i), userservice.RoleUser)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(users))
	for _, u := range users {
		wg.Add(1)
		go func(u *userservice.User) {
			defer wg.Done()
			_, err := s.ToggleLike(context.Background(), u, b.ID)
			errs <- err
		}(u)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	got, err := s.GetBlog(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, len(users), got.Likes)
	assert.Len(t, got.LikedBy, len(users))
}
