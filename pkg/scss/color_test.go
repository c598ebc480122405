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

	"github.com/das7pad/scss-go/pkg/errors"
)

func TestColorChannels(t *testing.T) {
	tests := []struct {
		name  string
		c     *Color
		want  [3]int
		alpha string
	}{
		{
			name:  "black",
			c:     newColorRGBA(zero, zero, zero, alphaMax),
			want:  [3]int{0, 0, 0},
			alpha: "1",
		},
		{
			name:  "clamped",
			c:     newColorRGBA(newNumber(300), newNumber(-5), newNumber(10), newNumber(2)),
			want:  [3]int{255, 0, 10},
			alpha: "1",
		},
		{
			name:  "half channel rounds up",
			c:     newColorRGBA(newNumberFrac(255, 2), zero, zero, newNumberFrac(1, 2)),
			want:  [3]int{128, 0, 0},
			alpha: "0.5",
		},
		{
			name:  "hsl green",
			c:     newColorHSLA(newNumber(120), alphaMax, newNumberFrac(1, 2), alphaMax),
			want:  [3]int{0, 255, 0},
			alpha: "1",
		},
		{
			name:  "hsl wraps hue",
			c:     newColorHSLA(newNumber(480), alphaMax, newNumberFrac(1, 2), alphaMax),
			want:  [3]int{0, 255, 0},
			alpha: "1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := [3]int{tt.c.Red(), tt.c.Green(), tt.c.Blue()}
			if got != tt.want {
				t.Errorf("channels = %v, want %v", got, tt.want)
			}
			if a := tt.c.Alpha().String(); a != tt.alpha {
				t.Errorf("Alpha() = %s, want %s", a, tt.alpha)
			}
		})
	}
}

func TestColorHSLRoundTrip(t *testing.T) {
	c := newColorRGBA(newNumber(10), newNumber(20), newNumber(30), alphaMax)
	back := c.ToHSLA().ToRGBA()
	if back.Red() != 10 || back.Green() != 20 || back.Blue() != 30 {
		t.Errorf(
			"round trip = %d %d %d, want 10 20 30",
			back.Red(), back.Green(), back.Blue(),
		)
	}
}

func TestColorFormat(t *testing.T) {
	tests := []struct {
		name       string
		c          *Color
		compressed bool
		want       string
	}{
		{
			name: "named",
			c:    newColorRGBA(channelMax, zero, zero, alphaMax),
			want: "red",
		},
		{
			name: "hex",
			c:    newColorRGBA(newNumber(1), newNumber(2), newNumber(3), alphaMax),
			want: "#010203",
		},
		{
			name:       "short hex",
			c:          newColorRGBA(newNumber(0x11), newNumber(0x22), newNumber(0x33), alphaMax),
			compressed: true,
			want:       "#123",
		},
		{
			name: "translucent",
			c:    newColorRGBA(zero, zero, zero, newNumberFrac(1, 2)),
			want: "rgba(0, 0, 0, 0.5)",
		},
		{
			name:       "translucent compressed",
			c:          newColorRGBA(zero, zero, zero, newNumberFrac(1, 2)),
			compressed: true,
			want:       "rgba(0,0,0,.5)",
		},
		{
			name:       "transparent",
			c:          newColorRGBA(zero, zero, zero, zero),
			compressed: true,
			want:       "transparent",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.format(tt.compressed); got != tt.want {
				t.Errorf("format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColorFunctions(t *testing.T) {
	tests := []struct {
		src     string
		want    string
		wantErr bool
	}{
		{src: "rgb(0, 0, 0)", want: "black"},
		{src: "rgb(100%, 50%, 0%)", want: "#ff8000"},
		{src: "rgb(1 2 3)", want: "#010203"},
		{src: "rgba(0, 0, 0, 50%)", want: "rgba(0, 0, 0, 0.5)"},
		{src: "rgba(#fff, 0.5)", want: "rgba(255, 255, 255, 0.5)"},
		{src: "rgb($red: 1, $green: 2, $blue: 3)", want: "#010203"},
		{src: "green(hsl(120, 100%, 50%))", want: "255"},
		{src: "red(hsla(0, 100%, 50%, 0.5))", want: "255"},
		{src: "red(rgb(10, 20, 30))", want: "10"},
		{src: "blue(rgb(10, 20, 30))", want: "30"},
		{src: "alpha(rgba(0, 0, 0, 0.25))", want: "0.25"},
		{src: "opacity(rgba(0, 0, 0, 0.25))", want: "0.25"},
		{src: "opacity(50%)", want: "opacity(50%)"},
		{src: "hue(rgb(0, 255, 0))", want: "120deg"},
		{src: "saturation(hsl(0, 50%, 50%))", want: "50%"},
		{src: "lightness(hsl(0, 50%, 50%))", want: "50%"},
		{src: "red(lighten(#000, 50%))", want: "128"},
		{src: "red(darken(#fff, 100%))", want: "0"},
		{src: "transparentize(#000, 0.25)", want: "rgba(0, 0, 0, 0.75)"},
		{src: "opacify(rgba(0, 0, 0, 0.5), 0.25)", want: "rgba(0, 0, 0, 0.75)"},
		{src: "red(mix(#000, #fff))", want: "128"},
		{src: "red(mix(#000, #fff, 100%))", want: "0"},
		{src: "invert(#fff)", want: "black"},
		{src: "invert(10%)", want: "invert(10%)"},
		{src: "green(complement(red))", want: "255"},
		{src: "grayscale(50%)", want: "grayscale(50%)"},
		{src: "ie-hex-str(rgba(255, 0, 0, 0.5))", want: "#80FF0000"},
		{src: "red(adjust-color(#000, $red: 10))", want: "10"},
		{src: "change-color(#000, $alpha: 0.5)", want: "rgba(0, 0, 0, 0.5)"},
		{src: "red(scale-color(#000, $lightness: 50%))", want: "128"},
		{src: "rgb(1px, 0, 0)", wantErr: true},
		{src: "rgb(0, 0)", wantErr: true},
		{src: "red(1)", wantErr: true},
		{src: "adjust-color(#000, $red: 1, $hue: 1)", wantErr: true},
		{src: "adjust-color(#000, 1)", wantErr: true},
		{src: "mix(#000, #fff, 101%)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := evalString(newTestContext(t), tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("eval(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if s := inspect(got); s != tt.want {
				t.Errorf("eval(%q) = %s, want %s", tt.src, s, tt.want)
			}
		})
	}
}

func TestColorTypeError(t *testing.T) {
	_, err := evalString(newTestContext(t), "red(1)")
	want := "$color: 1 is not a color for `red'."
	var e *Error
	if !errors.As(err, &e) || e.Kind != TypeMismatch {
		t.Fatalf("red(1) error = %v, want TypeMismatch", err)
	}
	if got := e.Message; got != want {
		t.Errorf("red(1) message = %q, want %q", got, want)
	}
}
