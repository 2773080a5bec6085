// Package assets встраивает данные игры в бинарник.
package assets

import "embed"

// Species - описания видов монстров (species/*.yaml).
//
//go:embed species/*.yaml
var Species embed.FS
