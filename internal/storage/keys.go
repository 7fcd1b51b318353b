package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ExportPrefix 返回某份简历全部导出文件的前缀。
func ExportPrefix(userID, resumeID uint) string {
	return fmt.Sprintf("exports/%d/%d/", userID, resumeID)
}

// NewExportKey 为一次 PDF 导出生成对象名。
func NewExportKey(userID, resumeID uint) string {
	return ExportPrefix(userID, resumeID) + uuid.NewString() + ".pdf"
}

// ThumbnailKey 返回模板缩略图的对象名。
func ThumbnailKey(slug string) string {
	return "templates/" + slug + "/thumbnail.jpg"
}

// OwnsExportKey 判断对象名是否落在该用户该简历的导出前缀下。
func OwnsExportKey(key string, userID, resumeID uint) bool {
	prefix := ExportPrefix(userID, resumeID)
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	rest := strings.TrimPrefix(key, prefix)
	return rest != "" && !strings.Contains(rest, "/") && !strings.Contains(rest, "..")
}
