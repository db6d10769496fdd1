// Package models defines data structures for tabular chart editing.
package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a chart type.
type Kind string

const (
	KindLine          Kind = "line"
	KindSmoothedLine  Kind = "smoothed_line"
	KindBar           Kind = "bar"
	KindHorizontalBar Kind = "horizontal_bar"
	KindPie           Kind = "pie"
	KindDoughnut      Kind = "doughnut"
	KindRadar         Kind = "radar"
	KindScatter       Kind = "scatter"
	KindBubble        Kind = "bubble"
	KindCandlestick   Kind = "candlestick"
	KindBarLine       Kind = "bar_line"
)

// AllKinds lists every kind in navigation order.
var AllKinds = []Kind{
	KindLine,
	KindSmoothedLine,
	KindBar,
	KindHorizontalBar,
	KindPie,
	KindDoughnut,
	KindRadar,
	KindScatter,
	KindBubble,
	KindCandlestick,
	KindBarLine,
}

// ParseKind resolves a kind name. Dashes and case are ignored.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range AllKinds {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Title returns a human readable name such as "Horizontal Bar Chart".
func (k Kind) Title() string {
	c := cases.Title(language.English)
	return c.String(strings.ReplaceAll(string(k), "_", " ")) + " Chart"
}

func (k Kind) String() string {
	return string(k)
}
