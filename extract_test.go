package catalog

import (
	"testing"

	"github.com/tunefeed/catalog/tree"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"3:25", 205, true},
		{"0:59", 59, true},
		{"1:02:03", 3723, true},
		{" 2:10 ", 130, true},
		{"205", 0, false},
		{"1:2:3:4", 0, false},
		{"-1:20", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseClock(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseClock(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRunTextLayouts(t *testing.T) {
	cases := []struct {
		src  string
		want string
		ok   bool
	}{
		{`{"v": "plain"}`, "plain", true},
		{`{"v": {"simpleText": "simple"}}`, "simple", true},
		{`{"v": {"runs": [{"text": "a"}, {"text": "b"}]}}`, "ab", true},
		{`{"v": {"runs": []}}`, "", false},
		{`{"v": 42}`, "", false},
	}
	for _, tt := range cases {
		doc, err := tree.Decode([]byte(tt.src))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got, ok := runText(doc.Key("v"))
		if got != tt.want || ok != tt.ok {
			t.Errorf("runText(%s) = (%q, %v), want (%q, %v)", tt.src, got, ok, tt.want, tt.ok)
		}
	}
}

func TestThumbnailPriorityOrder(t *testing.T) {
	// Both the renderer-wrapped and the flat layout are present; the wrapped
	// layout is probed first.
	doc, err := tree.Decode([]byte(`{
		"thumbnail": {
			"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [{"url": "wrapped-lo"}, {"url": "wrapped-hi"}]}},
			"thumbnails": [{"url": "flat"}]
		}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	u, ok := thumbnailURL(doc)
	if !ok || u != "wrapped-hi" {
		t.Fatalf("thumbnailURL = (%q, %v), want wrapped-hi", u, ok)
	}
}

func TestDurationPriorityOrder(t *testing.T) {
	// Numeric lengthSeconds beats any textual clock.
	doc, err := tree.Decode([]byte(`{
		"lengthSeconds": 200,
		"fixedColumns": [{"musicResponsiveListItemFixedColumnRenderer": {"text": {"simpleText": "9:59"}}}]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := durationSec(doc); got != 200 {
		t.Fatalf("durationSec = %d, want 200", got)
	}
}
