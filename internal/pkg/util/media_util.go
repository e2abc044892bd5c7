package util

import (
	"Inkstone/internal/pkg/consts"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// GetSafeContentType 根据文件内容识别 MIME 类型，读取后将 reader 复位
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	mt, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}

// IsAllowedMediaType 图片、视频、音频与 PDF
func IsAllowedMediaType(contentType string) bool {
	base, _, _ := strings.Cut(contentType, ";")
	base = strings.TrimSpace(base)
	return strings.HasPrefix(base, consts.MimePrefixImage+"/") ||
		strings.HasPrefix(base, consts.MimePrefixVideo+"/") ||
		strings.HasPrefix(base, consts.MimePrefixAudio+"/") ||
		base == consts.MimeTypePDF
}
