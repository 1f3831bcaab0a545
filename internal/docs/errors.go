// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package docs

import "errors"

var (
	ErrInvalidPrefix     = errors.New("docs prefix must start with '/' and must not end with '/'")
	ErrBuildingDocument  = errors.New("error building OpenAPI document")
	ErrRenderingDocument = errors.New("error rendering OpenAPI document")
)
