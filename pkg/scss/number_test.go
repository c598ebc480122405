// Golang port of Overleaf
// Copyright (C) 2026 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package scss

import (
	"testing"
)

func mustNumber(t *testing.T, s string) Number {
	t.Helper()
	n, err := parseNumber(s)
	if err != nil {
		t.Fatalf("parseNumber(%q) error = %v", s, err)
	}
	return n
}

func TestNumberFormat(t *testing.T) {
	tests := []struct {
		name       string
		n          Number
		compressed bool
		want       string
	}{
		{name: "zero value", n: Number{}, want: "0"},
		{name: "integer", n: newNumber(42), want: "42"},
		{name: "decimal", n: newNumberFrac(3, 2), want: "1.5"},
		{name: "repeating", n: newNumberFrac(2, 3), want: "0.6666666667"},
		{name: "negative zero", n: newNumberFrac(-1, 100000000000), want: "0"},
		{name: "compressed", n: newNumberFrac(1, 2), compressed: true, want: ".5"},
		{name: "compressed negative", n: newNumberFrac(-1, 4), compressed: true, want: "-.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.format(tt.compressed); got != tt.want {
				t.Errorf("format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberArithmetic(t *testing.T) {
	if got := mustNumber(t, ".1").Add(mustNumber(t, ".2")); !got.Eq(mustNumber(t, "0.3")) {
		t.Errorf(".1 + .2 = %s, want 0.3", got)
	}
	if _, ok := newNumber(1).Quo(Number{}); ok {
		t.Errorf("1 / 0 ok = true, want false")
	}
	if got, _ := newNumber(-1).Mod(newNumber(3)); !got.Eq(newNumber(2)) {
		t.Errorf("-1 %% 3 = %s, want 2", got)
	}
	if got, _ := newNumber(1).Mod(newNumber(-3)); !got.Eq(newNumber(-2)) {
		t.Errorf("1 %% -3 = %s, want -2", got)
	}
}

func TestNumberRounding(t *testing.T) {
	tests := []struct {
		in    string
		round string
		floor string
		ceil  string
	}{
		{in: "1.5", round: "2", floor: "1", ceil: "2"},
		{in: "-1.5", round: "-2", floor: "-2", ceil: "-1"},
		{in: "2.4", round: "2", floor: "2", ceil: "3"},
		{in: "3", round: "3", floor: "3", ceil: "3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := mustNumber(t, tt.in)
			if got := n.Round().String(); got != tt.round {
				t.Errorf("Round() = %s, want %s", got, tt.round)
			}
			if got := n.Floor().String(); got != tt.floor {
				t.Errorf("Floor() = %s, want %s", got, tt.floor)
			}
			if got := n.Ceil().String(); got != tt.ceil {
				t.Errorf("Ceil() = %s, want %s", got, tt.ceil)
			}
		})
	}
}

func TestNumberInt(t *testing.T) {
	if i, ok := newNumber(7).Int(); !ok || i != 7 {
		t.Errorf("Int() = %d, %v, want 7, true", i, ok)
	}
	if _, ok := newNumberFrac(1, 2).Int(); ok {
		t.Errorf("Int() of 0.5 ok = true, want false")
	}
}

func TestConvertTo(t *testing.T) {
	tests := []struct {
		name   string
		n      Number
		from   string
		to     string
		want   string
		wantOk bool
	}{
		{name: "in to px", n: newNumber(1), from: "in", to: "px", want: "96", wantOk: true},
		{name: "pt to in", n: newNumber(72), from: "pt", to: "in", want: "1", wantOk: true},
		{name: "s to ms", n: newNumberFrac(3, 2), from: "s", to: "ms", want: "1500", wantOk: true},
		{name: "same unit", n: newNumber(3), from: "em", to: "em", want: "3", wantOk: true},
		{name: "both empty", n: newNumber(3), want: "3", wantOk: true},
		{name: "different groups", n: newNumber(1), from: "px", to: "s"},
		{name: "unknown units", n: newNumber(1), from: "em", to: "rem"},
		{name: "unitless to unit", n: newNumber(1), to: "px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertTo(tt.n, unitOf(tt.from), unitOf(tt.to))
			if ok != tt.wantOk {
				t.Fatalf("convertTo() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got.String() != tt.want {
				t.Errorf("convertTo() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMulUnits(t *testing.T) {
	u, factor := mulUnits(unitOf("in"), unitOf("px").invert())
	if !u.IsEmpty() {
		t.Errorf("in/px unit = %s, want none", u)
	}
	if !factor.Eq(newNumber(96)) {
		t.Errorf("in/px factor = %s, want 96", factor)
	}
	u, _ = mulUnits(unitOf("px"), unitOf("px"))
	if got := u.String(); got != "px*px" {
		t.Errorf("px*px unit = %s, want px*px", got)
	}
}
