package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const pageTimeout = 30 * time.Second

// A4 纸张尺寸（英寸），边距由导出的 HTML 自身控制。
const (
	a4WidthInch  = 8.27
	a4HeightInch = 11.69
)

// Printer 在无头 Chromium 中加载自包含的 HTML，输出 PDF 或截图。
// 每次调用独立启动浏览器，任务之间不共享状态。
type Printer struct {
	bin string
}

// NewPrinter 查找本机 Chromium，找不到时由 launcher 自动下载。
func NewPrinter() *Printer {
	p := &Printer{}
	if path, ok := launcher.LookPath(); ok {
		p.bin = path
	}
	return p
}

// PDF 将 HTML 打印为 A4 PDF。
func (p *Printer) PDF(ctx context.Context, html []byte) ([]byte, error) {
	var out []byte
	err := p.withPage(ctx, html, func(page *rod.Page) error {
		if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
			return fmt.Errorf("set emulated media to print: %w", err)
		}
		reader, err := page.PDF(&proto.PagePrintToPDF{
			PrintBackground:   true,
			PaperWidth:        float64Ptr(a4WidthInch),
			PaperHeight:       float64Ptr(a4HeightInch),
			MarginTop:         float64Ptr(0),
			MarginBottom:      float64Ptr(0),
			MarginLeft:        float64Ptr(0),
			MarginRight:       float64Ptr(0),
			PreferCSSPageSize: true,
		})
		if err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		defer func() {
			_ = reader.Close()
		}()

		out, err = io.ReadAll(reader)
		if err != nil {
			return fmt.Errorf("read pdf bytes: %w", err)
		}
		return nil
	})
	return out, err
}

// Screenshot 截取 .resume-container 的 JPEG，找不到该元素时截整页。
func (p *Printer) Screenshot(ctx context.Context, html []byte, quality int) ([]byte, error) {
	var out []byte
	err := p.withPage(ctx, html, func(page *rod.Page) error {
		if el, err := page.Timeout(5 * time.Second).Element(".resume-container"); err == nil {
			if data, shotErr := el.Screenshot(proto.PageCaptureScreenshotFormatJpeg, quality); shotErr == nil {
				out = data
				return nil
			}
		}
		data, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
			Format:  proto.PageCaptureScreenshotFormatJpeg,
			Quality: intPtr(quality),
		})
		if err != nil {
			return fmt.Errorf("page screenshot: %w", err)
		}
		out = data
		return nil
	})
	return out, err
}

func (p *Printer) withPage(ctx context.Context, html []byte, fn func(*rod.Page) error) error {
	launch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if p.bin != "" {
		launch = launch.Bin(p.bin)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().Context(ctx).ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(pageTimeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(pageTimeout)
	if err := page.SetDocumentContent(string(html)); err != nil {
		return fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return fn(page)
}

func float64Ptr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}
