package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

// ObjectReleaser 媒体记录删除后释放存储对象，失败的 key 进入重试集合
type ObjectReleaser struct {
	storage ObjectStorage
	pending PendingDeletes
	refs    FileReferences
}

// NewObjectReleaser storage 为空时只维护元数据
func NewObjectReleaser(storage ObjectStorage, pending PendingDeletes, refs FileReferences) *ObjectReleaser {
	return &ObjectReleaser{storage: storage, pending: pending, refs: refs}
}

// Release 删除已无记录引用的对象，不返回错误：对象残留交给定时任务
func (r *ObjectReleaser) Release(ctx context.Context, keys ...string) {
	if r == nil || r.storage == nil {
		return
	}
	failed := make([]string, 0)
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := r.storage.Delete(ctx, key); err != nil {
			log.WarnContext(ctx, "delete stored object failed, queued for retry", "key", key, "err", err)
			failed = append(failed, key)
		}
	}
	if len(failed) == 0 || r.pending == nil {
		return
	}
	if err := r.pending.Add(context.WithoutCancel(ctx), failed...); err != nil {
		log.ErrorContext(ctx, "queue stored object deletion failed", "keys", failed, "err", err)
	}
}

// Retry 重试队列中的删除，返回成功删除的数量
func (r *ObjectReleaser) Retry(ctx context.Context) (int, error) {
	if r == nil || r.storage == nil || r.pending == nil {
		return 0, nil
	}
	keys, err := r.pending.Members(ctx)
	if err != nil {
		return 0, err
	}
	done := make([]string, 0, len(keys))
	cleaned := 0
	for _, key := range keys {
		// 入队后又被重新登记的路径不再删除
		if r.refs != nil {
			referenced, err := r.refs.IsFilePathReferenced(ctx, key)
			if err != nil {
				log.WarnContext(ctx, "check stored object references failed", "key", key, "err", err)
				continue
			}
			if referenced {
				done = append(done, key)
				continue
			}
		}
		if err = r.storage.Delete(ctx, key); err != nil {
			log.WarnContext(ctx, "retry delete stored object failed", "key", key, "err", err)
			continue
		}
		done = append(done, key)
		cleaned++
	}
	if len(done) == 0 {
		return 0, nil
	}
	if err = r.pending.Remove(ctx, done...); err != nil {
		return 0, err
	}
	return cleaned, nil
}

func (r *ObjectReleaser) toMediaFileDTO(media *model.MediaFile) (*dto.MediaFileDTO, error) {
	mediaDTO := &dto.MediaFileDTO{}
	if err := copier.Copy(mediaDTO, media); err != nil {
		return nil, err
	}
	if r != nil && r.storage != nil && media.FilePath != "" {
		mediaDTO.URL = r.storage.PublicURL(media.FilePath)
	}
	return mediaDTO, nil
}
