package contract

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
)

// TestMeasureCodec 验证无限哨兵与有限值的文本往返。
func TestMeasureCodec(t *testing.T) {
	tests := []struct {
		name string
		in   Measure
		text string
	}{
		{"零", 0, "0"},
		{"整数", 100, "100"},
		{"无限", Infinite, "inf"},
		{"圆周率", Measure(math.Pi), "3.141592653589793"},
		{"负数", -2.5, "-2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMeasure(tt.in); got != tt.text {
				t.Fatalf("format %v -> %q, 预期 %q", float64(tt.in), got, tt.text)
			}
			back, err := ParseMeasure(tt.text)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.text, err)
			}
			if back != tt.in {
				t.Fatalf("往返不一致: %v != %v", back, tt.in)
			}
		})
	}
}

func TestParseMeasureAliases(t *testing.T) {
	for _, s := range []string{"inf", "+inf", "Inf", "+Inf", "Infinity", " INF "} {
		m, err := ParseMeasure(s)
		if err != nil || !m.IsInfinite() {
			t.Fatalf("%q 应解析为无限: %v %v", s, m, err)
		}
	}
	for _, s := range []string{"", "abc", "1,5"} {
		if _, err := ParseMeasure(s); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q 应报 ErrInvalidInput, got %v", s, err)
		}
	}
}

func TestRangeValid(t *testing.T) {
	cases := map[Range]bool{
		{Lo: -5, Hi: 5}:           true,
		{Lo: 1, Hi: 1}:            false,
		{Lo: 2, Hi: 1}:            false,
		{Lo: math.NaN(), Hi: 1}:   false,
		{Lo: 0, Hi: math.Inf(1)}:  false,
		{Lo: -0.5, Hi: -0.25}:     true,
	}
	for r, want := range cases {
		if got := r.Valid(); got != want {
			t.Fatalf("%v.Valid()=%v, 预期 %v", r, got, want)
		}
	}
}

// TestReportJSONOrder 报告的 JSON 形式保持键序，解码后值类型不变。
func TestReportJSONOrder(t *testing.T) {
	rep := NewReport(Esfera, DefaultDomain(), []Param{{Key: "radio", Value: 1.5}})
	b, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"x_range":[-5,5],"y_range":[-5,5],"radio":1.5,"tipo_superficie":"Esfera"}`
	if string(b) != want {
		t.Fatalf("json=%s\n预期 %s", b, want)
	}
	var back ParameterReport
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, rep) {
		t.Fatalf("往返不一致: %#v", back)
	}
	if back.Variant() != Esfera {
		t.Fatalf("variant=%q", back.Variant())
	}
	if r, ok := back.Float("radio"); !ok || r != 1.5 {
		t.Fatalf("radio=%v %v", r, ok)
	}
}

func TestReportDecodeErrors(t *testing.T) {
	bad := []string{
		`[1,2]`,
		`{"x_range":[1]}`,
		`{"a":true}`,
		`{"a":null}`,
	}
	for _, s := range bad {
		var r ParameterReport
		if err := json.Unmarshal([]byte(s), &r); err == nil {
			t.Fatalf("%s 应报错", s)
		}
	}
	if _, err := json.Marshal(ParameterReport{{Key: "x", Value: 1}}); err == nil {
		t.Fatalf("int 值应被拒绝")
	}
}

func TestReportClone(t *testing.T) {
	rep := NewReport(Plano, DefaultDomain(), []Param{{Key: "pendiente", Value: 2.0}})
	c := rep.Clone()
	c[2].Value = 3.0
	if v, _ := rep.Float("pendiente"); v != 2.0 {
		t.Fatalf("Clone 未复制")
	}
	if ParameterReport(nil).Clone() != nil {
		t.Fatalf("nil clone")
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange(" -2.5 , 4")
	if err != nil || r != (Range{Lo: -2.5, Hi: 4}) {
		t.Fatalf("got %v %v", r, err)
	}
	for _, in := range []string{"", "1", "a,2", "1,b"} {
		if _, err := ParseRange(in); !errors.Is(err, ErrInvalidDomain) {
			t.Fatalf("%q: expect ErrInvalidDomain, got %v", in, err)
		}
	}
	// 语法合法但 lo>=hi 交由 Valid 判定
	r, err = ParseRange("3,3")
	if err != nil || r.Valid() {
		t.Fatalf("3,3: %v %v", r, err)
	}
}
