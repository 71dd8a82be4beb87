package feeds

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
)

// fakePostRepo serves slices out of an in-memory, pre-sorted store so
// the service's offset math can be checked end to end.
type fakePostRepo struct {
	posts []*posts.Post
}

func (f *fakePostRepo) Create(ctx context.Context, post *posts.Post) (*posts.Post, error) {
	return post, nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (f *fakePostRepo) Update(ctx context.Context, id int64, text string, groupID *int64) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (f *fakePostRepo) matches(p *posts.Post, filter posts.ListFilter) bool {
	if filter.GroupID != nil && (p.GroupID == nil || *p.GroupID != *filter.GroupID) {
		return false
	}
	if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
		return false
	}
	return true
}

func (f *fakePostRepo) List(ctx context.Context, filter posts.ListFilter, limit, offset int) ([]*posts.Post, error) {
	var filtered []*posts.Post
	for _, p := range f.posts {
		if f.matches(p, filter) {
			filtered = append(filtered, p)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakePostRepo) Count(ctx context.Context, filter posts.ListFilter) (int, error) {
	count := 0
	for _, p := range f.posts {
		if f.matches(p, filter) {
			count++
		}
	}
	return count, nil
}

type fakeGroupService struct {
	groups map[string]*groups.Group
}

func (f *fakeGroupService) Create(ctx context.Context, req groups.CreateGroupRequest) (*groups.Group, error) {
	return nil, nil
}

func (f *fakeGroupService) GetByID(ctx context.Context, id int64) (*groups.Group, error) {
	for _, g := range f.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, groups.ErrGroupNotFound
}

func (f *fakeGroupService) GetBySlug(ctx context.Context, slug string) (*groups.Group, error) {
	if g, ok := f.groups[slug]; ok {
		return g, nil
	}
	return nil, groups.ErrGroupNotFound
}

func (f *fakeGroupService) List(ctx context.Context) ([]*groups.Group, error) {
	return nil, nil
}

type fakeUserService struct {
	users map[string]*users.User
}

func (f *fakeUserService) Register(ctx context.Context, req users.RegisterRequest) (*users.User, error) {
	return nil, nil
}

func (f *fakeUserService) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	return nil, users.ErrBadCredentials
}

func (f *fakeUserService) GetByID(ctx context.Context, id int64) (*users.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (f *fakeUserService) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, users.ErrUserNotFound
}

// seedPosts builds n posts by authorID, newest first, with distinct
// pub_dates so ordering is unambiguous.
func seedPosts(n int, authorID int64, groupID *int64) []*posts.Post {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	result := make([]*posts.Post, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, &posts.Post{
			ID:       int64(n - i),
			Text:     fmt.Sprintf("post %d", n-i),
			PubDate:  base.Add(-time.Duration(i) * time.Minute),
			AuthorID: authorID,
			GroupID:  groupID,
			Author:   &posts.AuthorRef{ID: authorID, Username: "alice"},
		})
	}
	return result
}

func newTestService(repo *fakePostRepo) Service {
	return NewFeedService(repo,
		&fakeGroupService{groups: map[string]*groups.Group{
			"go": {ID: 1, Slug: "go", Title: "Go"},
		}},
		&fakeUserService{users: map[string]*users.User{
			"alice": {ID: 1, Username: "alice"},
		}},
		10,
	)
}

func TestGlobalFeedPagination(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(13, 1, nil)}
	svc := newTestService(repo)
	ctx := context.Background()

	tests := []struct {
		name       string
		page       int
		wantCount  int
		wantNumber int
		wantNext   bool
		wantPrev   bool
	}{
		{name: "page 1 is full", page: 1, wantCount: 10, wantNumber: 1, wantNext: true, wantPrev: false},
		{name: "page 2 holds the remainder", page: 2, wantCount: 3, wantNumber: 2, wantNext: false, wantPrev: true},
		{name: "page past the end clamps to last", page: 3, wantCount: 3, wantNumber: 2, wantNext: false, wantPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Global(ctx, tt.page)
			if err != nil {
				t.Fatalf("Global(%d) error = %v", tt.page, err)
			}
			if len(page.Posts) != tt.wantCount {
				t.Errorf("got %d posts, want %d", len(page.Posts), tt.wantCount)
			}
			if page.Number != tt.wantNumber {
				t.Errorf("got page number %d, want %d", page.Number, tt.wantNumber)
			}
			if page.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", page.HasNext, tt.wantNext)
			}
			if page.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", page.HasPrev, tt.wantPrev)
			}
			if page.TotalPosts != 13 || page.TotalPages != 2 {
				t.Errorf("totals = (%d posts, %d pages), want (13, 2)", page.TotalPosts, page.TotalPages)
			}
		})
	}
}

func TestGlobalFeedOrdering(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(13, 1, nil)}
	svc := newTestService(repo)

	page, err := svc.Global(context.Background(), 1)
	if err != nil {
		t.Fatalf("Global(1) error = %v", err)
	}

	for i := 1; i < len(page.Posts); i++ {
		if page.Posts[i].PubDate.After(page.Posts[i-1].PubDate) {
			t.Errorf("posts out of order at index %d: %v after %v",
				i, page.Posts[i-1].PubDate, page.Posts[i].PubDate)
		}
	}
}

func TestEmptyFeed(t *testing.T) {
	svc := newTestService(&fakePostRepo{})

	page, err := svc.Global(context.Background(), 1)
	if err != nil {
		t.Fatalf("Global(1) error = %v", err)
	}
	if len(page.Posts) != 0 {
		t.Errorf("got %d posts, want 0", len(page.Posts))
	}
	if page.Number != 1 || page.TotalPages != 1 {
		t.Errorf("empty feed should be page 1 of 1, got page %d of %d", page.Number, page.TotalPages)
	}
	if page.HasNext || page.HasPrev {
		t.Error("empty feed should have no neighboring pages")
	}
}

func TestGroupFeedFilters(t *testing.T) {
	goID := int64(1)
	all := append(seedPosts(3, 1, &goID), seedPosts(2, 1, nil)...)
	repo := &fakePostRepo{posts: all}
	svc := newTestService(repo)

	group, page, err := svc.Group(context.Background(), "go", 1)
	if err != nil {
		t.Fatalf("Group(go) error = %v", err)
	}
	if group.Slug != "go" {
		t.Errorf("got group %q, want %q", group.Slug, "go")
	}
	if len(page.Posts) != 3 {
		t.Errorf("got %d posts in group feed, want 3", len(page.Posts))
	}
	for _, p := range page.Posts {
		if p.GroupID == nil || *p.GroupID != goID {
			t.Errorf("post %d does not belong to the group", p.ID)
		}
	}
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	svc := newTestService(&fakePostRepo{})

	_, _, err := svc.Group(context.Background(), "nope", 1)
	if !groups.IsNotFound(err) {
		t.Errorf("Group(nope) error = %v, want group not found", err)
	}
}

func TestAuthorFeed(t *testing.T) {
	repo := &fakePostRepo{posts: seedPosts(4, 1, nil)}
	svc := newTestService(repo)

	author, page, err := svc.Author(context.Background(), "alice", 1)
	if err != nil {
		t.Fatalf("Author(alice) error = %v", err)
	}
	if author.Username != "alice" {
		t.Errorf("got author %q, want %q", author.Username, "alice")
	}
	if len(page.Posts) != 4 {
		t.Errorf("got %d posts, want 4", len(page.Posts))
	}
}

func TestAuthorFeedUnknownUser(t *testing.T) {
	svc := newTestService(&fakePostRepo{})

	_, _, err := svc.Author(context.Background(), "nobody", 1)
	if !users.IsNotFound(err) {
		t.Errorf("Author(nobody) error = %v, want user not found", err)
	}
}
