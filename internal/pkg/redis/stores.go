package redis

import (
	"Inkstone/internal/pkg/consts"
	"context"
	"time"
)

// TokenBlacklist 已注销 Token 的签名
type TokenBlacklist struct {
	client *Client
}

func NewTokenBlacklist(client *Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func (s *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	return s.client.SetWithExpiration(ctx, consts.TokenRevokedKey+signature, "1", ttl)
}

func (s *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	return s.client.Exists(ctx, consts.TokenRevokedKey+signature)
}

// KeySet 以 Redis Set 保存的一组 key
type KeySet struct {
	client *Client
	key    string
}

func NewPendingDeleteSet(client *Client) *KeySet {
	return &KeySet{client: client, key: consts.MediaPendingDeleteKey}
}

func (s *KeySet) Add(ctx context.Context, keys ...string) error {
	return s.client.SAdd(ctx, s.key, keys...)
}

func (s *KeySet) Members(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, s.key)
}

func (s *KeySet) Remove(ctx context.Context, keys ...string) error {
	return s.client.SRem(ctx, s.key, keys...)
}
