// Package markdown converts between the todo collection and GitHub-style
// markdown task lists ("- [ ] item", "- [x] done").
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"todo/pkg/task"
)

// ParseFile reads the markdown file at path and extracts its task list
// items.
func ParseFile(path string) ([]task.Task, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}
	return Parse(src)
}

// Parse extracts every task list item in src in document order, nested
// items included. Inline markup is reduced to its text; items whose text
// is empty are skipped. Plain list items without a checkbox are ignored.
func Parse(src []byte) ([]task.Task, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(src))

	var tasks []task.Task
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, ok := n.(*extast.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}

		// The checkbox is the first inline of the item's paragraph; the
		// title is whatever follows it on that paragraph.
		var b strings.Builder
		for sib := box.NextSibling(); sib != nil; sib = sib.NextSibling() {
			writeInline(&b, sib, src)
		}
		if title := strings.Join(strings.Fields(b.String()), " "); title != "" {
			tasks = append(tasks, task.Task{Title: title, Complete: box.IsChecked})
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}
	return tasks, nil
}

// writeInline appends the plain text of an inline node and its children.
func writeInline(b *strings.Builder, n ast.Node, src []byte) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(src))
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.WriteByte(' ')
		}
		return
	case *ast.String:
		b.Write(n.Value)
		return
	case *ast.AutoLink:
		b.Write(n.URL(src))
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeInline(b, c, src)
	}
}

// Render writes tasks as a markdown checklist, one item per line.
func Render(w io.Writer, tasks []task.Task) error {
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := fmt.Fprintln(bw, t.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
