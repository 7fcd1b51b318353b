package export

import (
	"github.com/abhismart8/resume-builder/internal/render"
	"github.com/abhismart8/resume-builder/internal/resume"
	"github.com/abhismart8/resume-builder/internal/style"
)

// Build 以 Static 模式规范化样式、渲染文档并序列化为可打印的 HTML。
func Build(c resume.Content, cfg style.Config) (Artifact, error) {
	safe := style.Normalize(cfg, style.Static)
	return Serialize(render.Render(c, safe), safe)
}
