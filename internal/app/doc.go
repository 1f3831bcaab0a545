// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app composes the HTTP application: global middleware, routes and
// plugins are collected by a [Builder] and frozen into an immutable [Config]
// that the server package runs.
//
// A typical composition:
//
//	b := app.New()
//	b.Use(middleware.Recoverer)
//	b.Install(authAdapter, docsPlugin)
//	b.Get("/", greeting, app.WithAuth())
//	cfg, err := b.Build()
package app
