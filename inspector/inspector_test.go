package inspector

import (
	"image/color"
	"testing"
)

type sample struct {
	Name    string
	Angle   float32 `inspect:"angle"`
	Count   int     `inspect:"bar,max:200"`
	Enabled bool
	Tint    color.RGBA
	Hidden  float32 `inspect:"skip"`
	private int
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar", WidgetBar, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label, fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"swatch", WidgetSwatch, map[string]string{}},
		{"unknown", WidgetAuto, map[string]string{}},
	}

	for _, tc := range tests {
		w, opts := ParseTag(tc.tag)
		if w != tc.widget {
			t.Errorf("ParseTag(%q) widget = %v, expected %v", tc.tag, w, tc.widget)
		}
		if len(opts) != len(tc.opts) {
			t.Errorf("ParseTag(%q) options = %v, expected %v", tc.tag, opts, tc.opts)
			continue
		}
		for k, v := range tc.opts {
			if opts[k] != v {
				t.Errorf("ParseTag(%q) option %s = %q, expected %q", tc.tag, k, opts[k], v)
			}
		}
	}
}

func TestExtractFields(t *testing.T) {
	fields := ExtractFields(&sample{Name: "a", Count: 50})

	want := []struct {
		name   string
		widget Widget
	}{
		{"Name", WidgetLabel},
		{"Angle", WidgetAngle},
		{"Count", WidgetBar},
		{"Enabled", WidgetBool},
		{"Tint", WidgetSwatch},
	}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d: %+v", len(want), len(fields), fields)
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d = %s/%v, expected %s/%v", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}
	if GetMax(fields[2].Options) != 200 {
		t.Errorf("expected max 200, got %v", GetMax(fields[2].Options))
	}

	if ExtractFields(42) != nil {
		t.Error("expected nil for non-struct")
	}
	var nilPtr *sample
	if ExtractFields(nilPtr) != nil {
		t.Error("expected nil for nil pointer")
	}
}

func TestPanelHeight(t *testing.T) {
	empty := PanelHeight(nil)
	if empty != HeaderHeight+2*PanelPadding {
		t.Errorf("unexpected empty height %d", empty)
	}

	// Label 20 + angle 44 + bar 18 + bool 18 + swatch 18
	got := PanelHeight([]Section{{Title: "Sample", Component: sample{}}})
	if want := empty + 22 + 20 + 44 + 18 + 18 + 18 + sectionGap; got != want {
		t.Errorf("expected height %d, got %d", want, got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value interface{}
		fmt   string
		want  string
	}{
		{float32(1.5), "", "1.500"},
		{42, "", "42"},
		{float32(0.26), "%.1f", "0.3"},
	}
	for _, tc := range tests {
		if got := FormatValue(tc.value, tc.fmt); got != tc.want {
			t.Errorf("FormatValue(%v, %q) = %q, expected %q", tc.value, tc.fmt, got, tc.want)
		}
	}
}
