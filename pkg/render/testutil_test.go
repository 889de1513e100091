package render

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// snap is a comparable picture of a host subtree.
type snap struct {
	Tag      string
	Text     string
	Attrs    map[string]string
	Handlers []string
	Children []snap
}

func snapshot(el *host.Element) snap {
	if el.IsText() {
		return snap{Text: el.Text()}
	}
	s := snap{Tag: el.Tag(), Attrs: el.Attrs(), Handlers: el.Handlers()}
	for _, c := range el.Children() {
		s.Children = append(s.Children, snapshot(c))
	}
	return s
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func newTestRenderer(t *testing.T) (*Renderer, *host.Document) {
	t.Helper()
	doc := host.NewDocument()
	return New(doc, WithLogger(quietLogger())), doc
}

// mountAll mounts nodes into a fresh container on doc.Body().
func mountAll(r *Renderer, doc *host.Document, nodes []*vdom.VNode) host.Node {
	container := doc.CreateElement("section")
	doc.AppendChild(doc.Body(), container)
	for _, n := range nodes {
		r.Mount(n, container)
	}
	return container
}

func assertSameTree(t *testing.T, got, want *host.Element) {
	t.Helper()
	if diff := cmp.Diff(snapshot(want), snapshot(got)); diff != "" {
		t.Errorf("host tree mismatch (-want +got):\n%s", diff)
	}
}
