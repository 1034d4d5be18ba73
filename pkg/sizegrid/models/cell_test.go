package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValueJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{`"1.5"`, Text("1.5")},
		{`1.5`, Number(1.5)},
		{`-3`, Number(-3)},
		{`null`, Value{}},
		{`""`, Value{}},
		{`true`, Text("true")},
		{`{"Rule":"+2cm"}`, Text("+2cm")},
		{`{"Rule":2}`, Number(2)},
		{`{"a":1}`, Text(`{"a":1}`)},
	}

	for _, tt := range tests {
		var v Value
		if err := json.Unmarshal([]byte(tt.input), &v); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", tt.input, err)
			continue
		}
		if v != tt.expected {
			t.Errorf("Unmarshal(%s) = %#v, expected %#v", tt.input, v, tt.expected)
		}
	}
}

func TestValueJSON_RejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := json.Marshal(Number(f)); err == nil {
			t.Errorf("Marshal(Number(%v)) should fail", f)
		}
	}

	tbl := Table{Rows: []Row{{Key: "chest", Cells: []Cell{{Column: "M", Value: Number(math.NaN())}}}}}
	if _, err := json.Marshal(tbl); err == nil {
		t.Error("Marshal of a table holding NaN should fail")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"123", Number(123)},
		{"123.45", Number(123.45)},
		{"-100", Number(-100)},
		{"0", Number(0)},
		{"hello", Text("hello")},
		{"", Value{}},
		// kept as typed
		{"1.50", Text("1.50")},
		{"07", Text("07")},
		{"1.", Text("1.")},
		{"+5", Text("+5")},
		{"1e3", Text("1e3")},
		{"0x1p-2", Text("0x1p-2")},
		{"nan", Text("nan")},
		{"NaN", Text("NaN")},
		{"inf", Text("inf")},
		{"-Infinity", Text("-Infinity")},
	}

	for _, tt := range tests {
		result := ParseValue(tt.input)
		if result != tt.expected {
			t.Errorf("ParseValue(%q) = %#v, expected %#v", tt.input, result, tt.expected)
		}
	}
}

func TestParseValue_NumbersEncode(t *testing.T) {
	for _, s := range []string{"96", "72.5", "-3", "nan", "inf", "1.50"} {
		data, err := json.Marshal(ParseValue(s))
		if err != nil {
			t.Errorf("Marshal(ParseValue(%q)) failed: %v", s, err)
			continue
		}
		var back Value
		if err := json.Unmarshal(data, &back); err != nil {
			t.Errorf("Unmarshal(%s) failed: %v", data, err)
			continue
		}
		if back.String() != s {
			t.Errorf("ParseValue(%q) round-tripped as %q", s, back.String())
		}
	}
}
