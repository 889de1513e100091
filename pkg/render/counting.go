package render

import (
	"github.com/vango-dev/minifw/internal/errors"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/vdom"
)

// countingTree counts host mutations by operation.
type countingTree struct {
	host.Tree
	metrics *metrics.Collector
}

func (t *countingTree) AppendChild(parent, child host.Node) {
	t.metrics.HostMutation("append")
	t.Tree.AppendChild(parent, child)
}

func (t *countingTree) InsertBefore(parent, child, ref host.Node) {
	t.metrics.HostMutation("insert")
	t.Tree.InsertBefore(parent, child, ref)
}

func (t *countingTree) RemoveChild(parent, child host.Node) {
	t.metrics.HostMutation("remove")
	t.Tree.RemoveChild(parent, child)
}

func (t *countingTree) SetAttribute(node host.Node, key, value string) {
	t.metrics.HostMutation("setAttr")
	t.Tree.SetAttribute(node, key, value)
}

func (t *countingTree) RemoveAttribute(node host.Node, key string) {
	t.metrics.HostMutation("removeAttr")
	t.Tree.RemoveAttribute(node, key)
}

func (t *countingTree) SetText(node host.Node, text string) {
	t.metrics.HostMutation("setText")
	t.Tree.SetText(node, text)
}

func (t *countingTree) SetHandler(node host.Node, event string, h vdom.Handler) {
	t.metrics.HostMutation("setHandler")
	t.Tree.SetHandler(node, event, h)
}

func (t *countingTree) RemoveHandler(node host.Node, event string) {
	t.metrics.HostMutation("removeHandler")
	t.Tree.RemoveHandler(node, event)
}

func errorCode(err error) string {
	if code := errors.Code(err); code != "" {
		return code
	}
	return "unknown"
}
