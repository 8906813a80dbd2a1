package inkwell

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// toc.js drives the table of contents in the browser.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
