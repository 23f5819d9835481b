package render

import (
	"regexp"

	"github.com/ziadkadry99/folio/internal/content"
)

// cjkRun matches maximal runs of CJK Unified Ideographs (Extension A
// through the main block).
var cjkRun = regexp.MustCompile(`[\x{3400}-\x{9FFF}]+`)

// WrapCJK wraps every CJK run of s in a zh-font span.
func WrapCJK(s content.Text) string {
	return cjkRun.ReplaceAllString(string(s), `<span class="zh-font">$0</span>`)
}
