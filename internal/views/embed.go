// Package views holds the embedded server-rendered templates.
package views

import (
	"embed"
)

//go:embed *.html
var FS embed.FS
