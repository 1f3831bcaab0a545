// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package docs serves the OpenAPI description of the application.
//
// [Plugin] is an app finalizer: it reads the complete route table when the
// application is built and contributes three read-only routes under its
// prefix:
//
//	GET {prefix}       HTML API reference
//	GET {prefix}/json  OpenAPI 3 document as JSON
//	GET {prefix}/yaml  OpenAPI 3 document as YAML
package docs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/internal/config"
	"github.com/MKhiriev/hello-auth/internal/logger"
)

// Security scheme names used by protected operations.
const (
	BearerAuth = "bearerAuth"
	CookieAuth = "cookieAuth"
)

// Plugin is the API documentation plugin.
type Plugin struct {
	prefix     string
	title      string
	version    string
	cookieName string

	logger *logger.Logger
}

// New returns the documentation plugin. title and version go to the
// document's info block; cookieName documents the session cookie security
// scheme.
func New(cfg config.Docs, title, version, cookieName string, logger *logger.Logger) *Plugin {
	return &Plugin{
		prefix:     cfg.Path,
		title:      title,
		version:    version,
		cookieName: cookieName,
		logger:     logger,
	}
}

// Install validates the prefix. The routes are added by Finalize.
func (p *Plugin) Install(b *app.Builder) error {
	if !strings.HasPrefix(p.prefix, "/") || p.prefix == "/" || strings.HasSuffix(p.prefix, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, p.prefix)
	}
	return nil
}

// Finalize builds the document from routes and returns the documentation
// routes.
func (p *Plugin) Finalize(routes []app.Route) ([]app.Route, error) {
	doc, err := p.Document(routes)
	if err != nil {
		return nil, err
	}

	jsonDoc, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderingDocument, err)
	}

	yamlDoc, err := jsonToYAML(jsonDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderingDocument, err)
	}

	page, err := p.referencePage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderingDocument, err)
	}

	p.logger.Info().
		Str("prefix", p.prefix).
		Int("operations", len(routes)).
		Msg("API documentation is ready")

	return []app.Route{
		{
			Method:      http.MethodGet,
			Path:        p.prefix,
			Handler:     static("text/html; charset=utf-8", page),
			ContentType: "text/html",
		},
		{
			Method:      http.MethodGet,
			Path:        p.prefix + "/json",
			Handler:     static("application/json", jsonDoc),
			ContentType: "application/json",
		},
		{
			Method:      http.MethodGet,
			Path:        p.prefix + "/yaml",
			Handler:     static("application/yaml", yamlDoc),
			ContentType: "application/yaml",
		},
	}, nil
}

// Document builds and validates the OpenAPI document for routes.
func (p *Plugin) Document(routes []app.Route) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   p.title,
			Version: p.version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				BearerAuth: &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
				CookieAuth: &openapi3.SecuritySchemeRef{Value: &openapi3.SecurityScheme{
					Type: "apiKey",
					In:   "cookie",
					Name: p.cookieName,
				}},
			},
		},
	}

	for _, route := range routes {
		op, err := operation(route)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrBuildingDocument, route.Method, route.Path, err)
		}

		path := openAPIPath(route.Path)
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}
		item.SetOperation(route.Method, op)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingDocument, err)
	}

	return doc, nil
}

var referenceTemplate = template.Must(template.New("reference").Parse(`<!doctype html>
<html>
  <head>
    <title>{{ .Title }}</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>
  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>
`))

func (p *Plugin) referencePage() ([]byte, error) {
	var buf bytes.Buffer
	err := referenceTemplate.Execute(&buf, struct {
		Title   string
		SpecURL string
	}{
		Title:   p.title,
		SpecURL: p.prefix + "/json",
	})
	return buf.Bytes(), err
}

func static(contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping the key
// order.
func jsonToYAML(doc []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, err
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
