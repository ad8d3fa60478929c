// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/holiman/uint256"
)

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler {
	return slog.DiscardHandler
}

// JSONHandler prints every record, trace included, as a JSON line.
func JSONHandler(wr io.Writer) slog.Handler {
	var lvl slog.LevelVar
	lvl.Set(LevelTrace)
	return JSONHandlerWithLevel(wr, &lvl)
}

// JSONHandlerWithLevel prints records at or above lvl as JSON lines.
// lvl may be changed while the handler is in use.
func JSONHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceJSON,
	})
}

// replaceJSON shortens the builtin keys and renders amounts and
// addresses as strings.
func replaceJSON(_ []string, attr slog.Attr) slog.Attr {
	switch attr.Key {
	case slog.TimeKey:
		return slog.Attr{Key: "t", Value: attr.Value}
	case slog.LevelKey:
		if l, ok := attr.Value.Any().(slog.Level); ok {
			return slog.String("lvl", LevelString(l))
		}
	}
	return renderValue(attr)
}

func renderValue(attr slog.Attr) slog.Attr {
	switch v := attr.Value.Any().(type) {
	case *uint256.Int:
		if v == nil {
			return slog.String(attr.Key, "<nil>")
		}
		return slog.String(attr.Key, v.Dec())
	case fmt.Stringer:
		if v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil()) {
			return slog.String(attr.Key, "<nil>")
		}
		return slog.String(attr.Key, v.String())
	}
	return attr
}
