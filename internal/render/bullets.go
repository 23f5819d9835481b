package render

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/folio/internal/content"
)

// bulletFrame is a list level waiting to be written.
type bulletFrame struct {
	items []content.Bullet
	next  int
	level int
}

// BulletList renders a bullet tree as nested <ul class="scholar-bullets
// level-N"> lists, depth first. It walks an explicit stack, so input depth
// does not grow the call stack.
func BulletList(items []content.Bullet) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	openList(&b, 0)
	stack := []bulletFrame{{items: items}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.items) {
			b.WriteString("</ul>")
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				// Closes the object item that owned this nested list.
				b.WriteString("</li>")
			}
			continue
		}

		item := top.items[top.next]
		top.next++
		if item.Plain {
			fmt.Fprintf(&b, "<li>%s</li>", item.Text)
			continue
		}

		fmt.Fprintf(&b, "<li>%s", item.Text)
		if len(item.Children) == 0 {
			b.WriteString("</li>")
			continue
		}
		level := top.level + 1
		openList(&b, level)
		stack = append(stack, bulletFrame{items: item.Children, level: level})
	}
	return b.String()
}

func openList(b *strings.Builder, level int) {
	fmt.Fprintf(b, `<ul class="scholar-bullets level-%d">`, level)
}
