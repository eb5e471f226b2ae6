// Package mcp provides an MCP (Model Context Protocol) server adapter
// for beacon. It lets AI assistants run hybrid retrieval queries and
// receive token-budgeted context bundles.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
