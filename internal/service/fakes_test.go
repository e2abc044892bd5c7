package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/database/dbtest"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	deleteErr error
	uploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = data
	return objectName, nil
}

func (s *fakeStorage) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, objectName)
	s.deleted = append(s.deleted, objectName)
	return nil
}

func (s *fakeStorage) PublicURL(objectName string) string {
	return "http://cdn.test/" + objectName
}

func (s *fakeStorage) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

type fakePending struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newFakePending() *fakePending {
	return &fakePending{keys: make(map[string]struct{})}
}

func (p *fakePending) Add(_ context.Context, keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, k := range keys {
		p.keys[k] = struct{}{}
	}
	return nil
}

func (p *fakePending) Members(_ context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.keys))
	for k := range p.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (p *fakePending) Remove(_ context.Context, keys ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, k := range keys {
		delete(p.keys, k)
	}
	return nil
}

type fakeTokenStore struct {
	revoked map[string]time.Duration
}

func (f *fakeTokenStore) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	f.revoked[signature] = ttl
	return nil
}

func (f *fakeTokenStore) IsRevoked(_ context.Context, signature string) (bool, error) {
	_, ok := f.revoked[signature]
	return ok, nil
}

// stepClock 每次调用前进一秒
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	db      *gorm.DB
	jwt     *security.JWTManager
	tokens  *fakeTokenStore
	storage *fakeStorage
	pending *fakePending
	users   *UserServiceImpl
	posts   *BlogPostServiceImpl
	media   *MediaServiceImpl
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		db:      db,
		jwt:     security.NewJWTManager("test-secret", "inkstone-test", time.Hour),
		tokens:  &fakeTokenStore{revoked: make(map[string]time.Duration)},
		storage: newFakeStorage(),
		pending: newFakePending(),
	}

	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewBlogPostRepo(db)
	mediaRepo := repository.NewMediaFileRepo(db)
	releaser := NewObjectReleaser(f.storage, f.pending, mediaRepo)
	clock := &stepClock{now: time.Now().Add(-time.Hour).Truncate(time.Second)}

	f.users = NewUserService(userRepo, f.jwt, f.tokens).(*UserServiceImpl)
	f.posts = NewBlogPostService(postRepo, userRepo, releaser).(*BlogPostServiceImpl)
	f.posts.now = clock.Now
	f.media = NewMediaService(mediaRepo, postRepo, f.storage, releaser).(*MediaServiceImpl)
	f.media.now = clock.Now
	return f
}

func (f *fixture) createUser(t *testing.T, username string) *dto.UserDTO {
	t.Helper()
	user, err := f.users.CreateUser(context.Background(), &dto.CreateUserDTO{
		Username: username,
		Email:    username + "@example.com",
		Password: "password-" + username,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) createPost(t *testing.T, authorID uint64, slug string, published bool) *dto.BlogPostDTO {
	t.Helper()
	post, err := f.posts.CreateBlogPost(context.Background(), &dto.CreateBlogPostDTO{
		Title:       "Title " + slug,
		Content:     "Content " + slug,
		Slug:        slug,
		AuthorID:    authorID,
		IsPublished: published,
	})
	require.NoError(t, err)
	return post
}

func (f *fixture) addMedia(t *testing.T, postID *uint64, key string) *dto.MediaFileDTO {
	t.Helper()
	size := int64(4)
	f.storage.objects[key] = []byte("data")
	media, err := f.media.UploadMedia(context.Background(), &dto.UploadMediaDTO{
		Filename:     key,
		OriginalName: "original-" + key,
		MimeType:     "image/png",
		FileSize:     &size,
		FilePath:     key,
		PostID:       postID,
	})
	require.NoError(t, err)
	return media
}

func ptr[T any](v T) *T {
	return &v
}

var errBoom = errors.New("boom")

// hookedPostRepo 第一次读取文章后执行 afterFirstGet，用于模拟读写之间的并发修改
type hookedPostRepo struct {
	repository.BlogPostRepo
	afterFirstGet func()
	done          bool
}

func (r *hookedPostRepo) GetBlogPost(ctx context.Context, id uint64) (*model.BlogPost, error) {
	post, err := r.BlogPostRepo.GetBlogPost(ctx, id)
	if !r.done {
		r.done = true
		r.afterFirstGet()
	}
	return post, err
}

// racingPostRepo 在下一次写入前执行 beforeWrite，模拟预检之后的并发写入
type racingPostRepo struct {
	repository.BlogPostRepo
	beforeWrite func()
}

func (r *racingPostRepo) CreateBlogPost(ctx context.Context, post *model.BlogPost) error {
	r.fire()
	return r.BlogPostRepo.CreateBlogPost(ctx, post)
}

func (r *racingPostRepo) UpdateBlogPost(ctx context.Context, id uint64, fields map[string]interface{}) error {
	r.fire()
	return r.BlogPostRepo.UpdateBlogPost(ctx, id, fields)
}

func (r *racingPostRepo) fire() {
	if r.beforeWrite != nil {
		hook := r.beforeWrite
		r.beforeWrite = nil
		hook()
	}
}

// racingUserRepo 写入前先插入 competitor
type racingUserRepo struct {
	repository.UserRepo
	competitor *model.User
}

func (r *racingUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	if r.competitor != nil {
		competitor := r.competitor
		r.competitor = nil
		if err := r.UserRepo.CreateUser(ctx, competitor); err != nil {
			return err
		}
	}
	return r.UserRepo.CreateUser(ctx, user)
}
