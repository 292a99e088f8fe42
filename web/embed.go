// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web embeds the static assets served under /static.
package web

import (
	"embed"
	"net/http"
)

//go:embed static
var files embed.FS

// Static returns a handler that serves the embedded assets. The embedded
// tree already starts at "static/", matching the URL prefix.
func Static() http.Handler {
	return http.FileServer(http.FS(files))
}
