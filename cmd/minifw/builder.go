package main

import (
	"log/slog"

	"github.com/vango-dev/minifw/internal/config"
	"github.com/vango-dev/minifw/internal/todo"
	"github.com/vango-dev/minifw/pkg/app"
	"github.com/vango-dev/minifw/pkg/events"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/persist"
	"github.com/vango-dev/minifw/pkg/router"
	"github.com/vango-dev/minifw/pkg/server"
	"github.com/vango-dev/minifw/pkg/store"
)

// builder assembles todo app instances from the loaded configuration.
type builder struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	snap    *persist.Snapshotter
}

// build mounts a todo app into a section.todoapp under the document body.
// Each client restores and saves its own snapshot; an empty client uses the
// default key.
func (b *builder) build(doc *host.Document, browser *router.Browser, client string) (*app.Instance, *todo.Todo, error) {
	container := doc.CreateElement("section")
	doc.SetAttribute(container, "class", "todoapp")
	doc.AppendChild(doc.Body(), container)

	st := store.New(todo.InitialState(),
		store.WithLogger(b.logger.With("component", "store")),
		store.WithMetrics(b.metrics))
	snap := b.snap
	if snap != nil && client != "" {
		snap = snap.Keyed("client/" + client)
	}
	if snap != nil {
		saved, ok, err := snap.Load()
		if err != nil {
			return nil, nil, err
		}
		if ok {
			st.SetState(todo.Restore(saved))
		}
	}

	var (
		loc    router.Location
		prefix string
	)
	if b.cfg.RouterMode == config.RouterHistory {
		loc = router.NewHistoryLocation(browser)
	} else {
		loc = router.NewHashLocation(browser)
		prefix = "#"
	}
	rt := router.New(loc,
		router.WithLogger(b.logger.With("component", "router")),
		router.WithMetrics(b.metrics))

	bus := events.NewBus()
	bus.On(todo.EventAdded, func(data any) { b.logger.Debug("todo added", "item", data) })
	bus.On(todo.EventRemoved, func(data any) { b.logger.Debug("todo removed", "id", data) })

	td, err := todo.New(st, rt,
		todo.WithBus(bus),
		todo.WithLinkPrefix(prefix),
		todo.WithFocus(func(node any) { host.FocusAfter(doc, node, 0) }))
	if err != nil {
		return nil, nil, err
	}

	inst, err := app.Create(app.Options{
		Render:    td.View,
		Container: container,
		Tree:      doc,
		Store:     st,
		Router:    rt,
		Logger:    b.logger,
		Metrics:   b.metrics,
	})
	if err != nil {
		return nil, nil, err
	}
	if snap != nil {
		inst.OnDestroy(snap.Attach(st))
	}
	return inst, td, nil
}

// factory adapts build for the server.
func (b *builder) factory() server.Factory {
	return func(doc *host.Document, browser *router.Browser, client string) (*app.Instance, error) {
		inst, _, err := b.build(doc, browser, client)
		return inst, err
	}
}

// url turns a route path into a browser URL for the configured mode.
func (b *builder) url(path string) string {
	if b.cfg.RouterMode == config.RouterHistory {
		return path
	}
	return "/#" + path
}
