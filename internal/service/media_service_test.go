package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaService_UploadMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.createUser(t, "alice")
	post := f.createPost(t, author.ID, "hello", false)

	attached := f.addMedia(t, &post.ID, "a.png")
	assert.NotZero(t, attached.ID)
	require.NotNil(t, attached.PostID)
	assert.Equal(t, post.ID, *attached.PostID)
	assert.Equal(t, int64(4), attached.FileSize)
	assert.Equal(t, "http://cdn.test/a.png", attached.URL)

	loose := f.addMedia(t, nil, "b.png")
	assert.Nil(t, loose.PostID)

	filtered, err := f.media.GetMediaFiles(ctx, &post.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, attached.ID, filtered[0].ID)

	all, err := f.media.GetMediaFiles(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := f.media.GetMediaFiles(ctx, ptr(uint64(9999)))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMediaService_UploadMediaMissingPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.media.UploadMedia(ctx, &dto.UploadMediaDTO{
		Filename:     "a.png",
		OriginalName: "a.png",
		MimeType:     "image/png",
		FileSize:     ptr(int64(1)),
		FilePath:     "a.png",
		PostID:       ptr(uint64(9999)),
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "blog_post", notFound.Resource)

	var count int64
	require.NoError(t, f.db.Model(&model.MediaFile{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMediaService_DeleteMediaFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := f.addMedia(t, nil, "a.png")

	require.NoError(t, f.media.DeleteMediaFile(ctx, media.ID))
	assert.False(t, f.storage.has("a.png"))

	all, err := f.media.GetMediaFiles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	var notFound *NotFoundError
	assert.ErrorAs(t, f.media.DeleteMediaFile(ctx, media.ID), &notFound)
}

func TestMediaService_DeleteMediaFileKeepsSharedObject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.addMedia(t, nil, "shared.png")
	second := f.addMedia(t, nil, "shared.png")

	require.NoError(t, f.media.DeleteMediaFile(ctx, first.ID))
	assert.True(t, f.storage.has("shared.png"))
	assert.Empty(t, f.storage.deleted)

	require.NoError(t, f.media.DeleteMediaFile(ctx, second.ID))
	assert.False(t, f.storage.has("shared.png"))
	assert.Equal(t, []string{"shared.png"}, f.storage.deleted)
}

func TestBlogPostService_DeleteKeepsObjectSharedWithOtherPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.createUser(t, "alice")
	post := f.createPost(t, author.ID, "hello", false)
	other := f.createPost(t, author.ID, "other", false)
	f.addMedia(t, &post.ID, "shared.png")
	f.addMedia(t, &post.ID, "own.png")
	kept := f.addMedia(t, &other.ID, "shared.png")

	require.NoError(t, f.posts.DeleteBlogPost(ctx, post.ID))
	assert.True(t, f.storage.has("shared.png"))
	assert.False(t, f.storage.has("own.png"))

	remaining, err := f.media.GetMediaFiles(ctx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestMediaService_StoreMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.createUser(t, "alice")
	post := f.createPost(t, author.ID, "hello", false)

	content := []byte("fake image bytes")
	media, err := f.media.StoreMedia(ctx, &MediaUpload{
		Reader:       bytes.NewReader(content),
		OriginalName: "Cat.PNG",
		ContentType:  "image/png",
		Size:         int64(len(content)),
		PostID:       &post.ID,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(media.FilePath, ".png"))
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.png$`, media.FilePath)
	assert.Equal(t, "Cat.PNG", media.OriginalName)
	assert.Equal(t, "image/png", media.MimeType)
	assert.Equal(t, int64(len(content)), media.FileSize)
	assert.True(t, f.storage.has(media.FilePath))
}

func TestMediaService_StoreMediaCompensates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.createUser(t, "alice")
	post := f.createPost(t, author.ID, "hello", false)

	// 文章在写入对象后被删除，登记失败时对象需要被清理
	f.media.postRepo = &hookedPostRepo{BlogPostRepo: f.media.postRepo, afterFirstGet: func() {
		require.NoError(t, f.posts.DeleteBlogPost(ctx, post.ID))
	}}

	_, err := f.media.StoreMedia(ctx, &MediaUpload{
		Reader:       bytes.NewReader([]byte("x")),
		OriginalName: "a.png",
		ContentType:  "image/png",
		Size:         1,
		PostID:       &post.ID,
	})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	assert.Empty(t, f.storage.objects)
	require.Len(t, f.storage.deleted, 1)
}

func TestMediaService_StoreMediaWithoutStorage(t *testing.T) {
	f := newFixture(t)
	f.media.storage = nil

	_, err := f.media.StoreMedia(context.Background(), &MediaUpload{Reader: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestObjectReleaser_Retry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	releaser := NewObjectReleaser(f.storage, f.pending, nil)

	f.storage.objects["a"] = []byte("a")
	f.storage.objects["b"] = []byte("b")
	f.storage.deleteErr = errBoom
	releaser.Release(ctx, "a", "b", "")

	keys, err := f.pending.Members(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	n, err := releaser.Retry(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.storage.deleteErr = nil
	n, err = releaser.Retry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, f.storage.objects)

	keys, err = f.pending.Members(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestObjectReleaser_RetrySkipsReRegisteredPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.pending.Add(ctx, "reused.png", "gone.png"))
	f.storage.objects["gone.png"] = []byte("x")
	f.addMedia(t, nil, "reused.png")

	n, err := f.media.releaser.Retry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, f.storage.has("reused.png"))
	assert.False(t, f.storage.has("gone.png"))

	keys, err := f.pending.Members(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestObjectReleaser_NilStorageIsNoop(t *testing.T) {
	releaser := NewObjectReleaser(nil, nil, nil)
	releaser.Release(context.Background(), "a")

	n, err := releaser.Retry(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
