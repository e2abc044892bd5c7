package consts

const (
	// TokenRevokedKey 已注销 Token 的签名，过期时间与 Token 一致
	TokenRevokedKey = "auth:revoked:"
	// MediaPendingDeleteKey 删除失败、等待重试的对象存储 key 集合
	MediaPendingDeleteKey = "media:pending_delete"
)
