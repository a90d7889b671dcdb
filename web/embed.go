// Package web embeds the browser client served next to the API.
package web

import "embed"

// StaticFS embeds the client UI assets (html/css/js).
//
//go:embed static/*
var StaticFS embed.FS

// IndexHTML is the single page of the client UI.
//
//go:embed static/index.html
var IndexHTML []byte
