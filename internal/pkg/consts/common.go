package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
	MimeTypePDF     = "application/pdf"
)

// gin.Context / context.Context 中的身份键
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

const (
	ResourceUser      = "user"
	ResourceBlogPost  = "blog_post"
	ResourceMediaFile = "media_file"
)
