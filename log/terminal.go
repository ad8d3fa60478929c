// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

const (
	termTimeFormat = "01-02|15:04:05.000"
	termMsgJust    = 40
)

// TerminalHandler writes one human readable line per record:
//
//	LEVEL [01-02|15:04:05.000] message                                  key=value key=value
//
// The level is read from lvl on every record.
type TerminalHandler struct {
	mu       *sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr
	buf      []byte
}

// NewTerminalHandlerWithLevel returns a terminal handler filtering below lvl.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		mu:       new(sync.Mutex),
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.format(h.buf[:0], r)
	_, err := h.wr.Write(buf)
	h.buf = buf
	return err
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	return &TerminalHandler{
		mu:       h.mu,
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(merged, attrs...),
	}
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) format(buf []byte, r slog.Record) []byte {
	lvl := strings.ToUpper(LevelString(r.Level))
	if len(lvl) < 5 {
		lvl += strings.Repeat(" ", 5-len(lvl))
	}
	if color := levelColor(r.Level); h.useColor && color != "" {
		buf = append(buf, "\x1b["+color+"m"...)
		buf = append(buf, lvl...)
		buf = append(buf, "\x1b[0m"...)
	} else {
		buf = append(buf, lvl...)
	}

	buf = append(buf, " ["...)
	buf = r.Time.AppendFormat(buf, termTimeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		if pad := termMsgJust - len(r.Message); pad > 0 {
			buf = append(buf, strings.Repeat(" ", pad)...)
		}
	}
	for _, a := range h.attrs {
		buf = h.appendAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		buf = h.appendAttr(buf, a)
		return true
	})
	return append(buf, '\n')
}

func (h *TerminalHandler) appendAttr(buf []byte, attr slog.Attr) []byte {
	attr = renderValue(attr)
	buf = append(buf, ' ')
	if h.useColor {
		buf = append(buf, "\x1b[32m"...)
		buf = append(buf, attr.Key...)
		buf = append(buf, "\x1b[0m"...)
	} else {
		buf = append(buf, attr.Key...)
	}
	buf = append(buf, '=')

	v := attr.Value.Resolve().String()
	if v == "" || strings.ContainsAny(v, " =\"\t\n") {
		return strconv.AppendQuote(buf, v)
	}
	return append(buf, v...)
}

func levelColor(l slog.Level) string {
	switch {
	case l >= LevelCrit:
		return "35"
	case l >= LevelError:
		return "31"
	case l >= LevelWarn:
		return "33"
	case l >= LevelInfo:
		return "32"
	case l >= LevelDebug:
		return "36"
	default:
		return "34"
	}
}
