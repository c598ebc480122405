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
	"strconv"
	"strings"
)

// Color keeps exact channels: red, green and blue in [0,255], alpha in [0,1].
type Color struct {
	r Number
	g Number
	b Number
	a Number

	// repr is the source spelling of a color literal, kept for output.
	repr string
}

var (
	channelMax = newNumber(255)
	alphaMax   = newNumber(1)
	zero       = newNumber(0)
)

func newColorRGBA(r, g, b, a Number) *Color {
	return &Color{
		r: r.Clamp(zero, channelMax),
		g: g.Clamp(zero, channelMax),
		b: b.Clamp(zero, channelMax),
		a: a.Clamp(zero, alphaMax),
	}
}

// hslaColor is the HSL view of a color, hue in degrees, saturation and
// lightness as fractions in [0,1].
type hslaColor struct {
	hue        Number
	saturation Number
	lightness  Number
	alpha      Number
}

// newColorHSLA converts using the standard piecewise hue function. The hue
// is taken modulo 360 here only.
func newColorHSLA(h, s, l, a Number) *Color {
	return hslaColor{hue: h, saturation: s, lightness: l, alpha: a}.ToRGBA()
}

func (s hslaColor) ToRGBA() *Color {
	h, _ := s.hue.Mod(newNumber(360))
	h, _ = h.Quo(newNumber(360))
	sat := s.saturation.Clamp(zero, alphaMax)
	l := s.lightness.Clamp(zero, alphaMax)
	one := newNumber(1)

	var m2 Number
	if l.Cmp(newNumberFrac(1, 2)) <= 0 {
		m2 = l.Mul(sat.Add(one))
	} else {
		m2 = l.Add(sat).Sub(l.Mul(sat))
	}
	m1 := l.Mul(newNumber(2)).Sub(m2)
	third := newNumberFrac(1, 3)
	return newColorRGBA(
		hueToRGB(m1, m2, h.Add(third)).Mul(channelMax),
		hueToRGB(m1, m2, h).Mul(channelMax),
		hueToRGB(m1, m2, h.Sub(third)).Mul(channelMax),
		s.alpha,
	)
}

func hueToRGB(m1, m2, h Number) Number {
	if h.Sign() < 0 {
		h = h.Add(newNumber(1))
	}
	if h.Cmp(newNumber(1)) > 0 {
		h = h.Sub(newNumber(1))
	}
	switch {
	case h.Mul(newNumber(6)).Cmp(newNumber(1)) < 0:
		return m1.Add(m2.Sub(m1).Mul(h).Mul(newNumber(6)))
	case h.Mul(newNumber(2)).Cmp(newNumber(1)) < 0:
		return m2
	case h.Mul(newNumber(3)).Cmp(newNumber(2)) < 0:
		return m1.Add(m2.Sub(m1).Mul(newNumberFrac(2, 3).Sub(h)).Mul(newNumber(6)))
	default:
		return m1
	}
}

func maxNumber(a Number, others ...Number) Number {
	for _, o := range others {
		if o.Cmp(a) > 0 {
			a = o
		}
	}
	return a
}

func minNumber(a Number, others ...Number) Number {
	for _, o := range others {
		if o.Cmp(a) < 0 {
			a = o
		}
	}
	return a
}

func (c *Color) ToHSLA() hslaColor {
	r, _ := c.r.Quo(channelMax)
	g, _ := c.g.Quo(channelMax)
	b, _ := c.b.Quo(channelMax)
	upper := maxNumber(r, g, b)
	lower := minNumber(r, g, b)
	d := upper.Sub(lower)
	l, _ := upper.Add(lower).Quo(newNumber(2))
	out := hslaColor{lightness: l, alpha: c.a}
	if d.Sign() == 0 {
		out.hue = newNumber(0)
		out.saturation = newNumber(0)
		return out
	}
	sixty := newNumber(60)
	var h Number
	switch {
	case upper.Eq(r):
		h, _ = g.Sub(b).Quo(d)
		h = h.Mul(sixty)
	case upper.Eq(g):
		h, _ = b.Sub(r).Quo(d)
		h = h.Mul(sixty).Add(newNumber(120))
	default:
		h, _ = r.Sub(g).Quo(d)
		h = h.Mul(sixty).Add(newNumber(240))
	}
	out.hue, _ = h.Mod(newNumber(360))
	if l.Cmp(newNumberFrac(1, 2)) > 0 {
		out.saturation, _ = d.Quo(newNumber(2).Sub(upper).Sub(lower))
	} else {
		out.saturation, _ = d.Quo(upper.Add(lower))
	}
	return out
}

// Red returns the rounded red channel.
func (c *Color) Red() int {
	v, _ := c.r.Round().Int()
	return v
}

func (c *Color) Green() int {
	v, _ := c.g.Round().Int()
	return v
}

func (c *Color) Blue() int {
	v, _ := c.b.Round().Int()
	return v
}

func (c *Color) Alpha() Number {
	return c.a
}

func (c *Color) withAlpha(a Number) *Color {
	return newColorRGBA(c.r, c.g, c.b, a)
}

func (c *Color) isOpaque() bool {
	return c.a.Eq(alphaMax)
}

func mixColors(c1, c2 *Color, weight Number) *Color {
	p, _ := weight.Quo(newNumber(100))
	one := newNumber(1)
	w := p.Mul(newNumber(2)).Sub(one)
	a := c1.a.Sub(c2.a)
	w1 := w
	if !w.Mul(a).Eq(one.Neg()) {
		w1, _ = w.Add(a).Quo(one.Add(w.Mul(a)))
	}
	w1, _ = w1.Add(one).Quo(newNumber(2))
	w2 := one.Sub(w1)
	return newColorRGBA(
		c1.r.Mul(w1).Add(c2.r.Mul(w2)),
		c1.g.Mul(w1).Add(c2.g.Mul(w2)),
		c1.b.Mul(w1).Add(c2.b.Mul(w2)),
		c1.a.Mul(p).Add(c2.a.Mul(one.Sub(p))),
	)
}

func hexByte(b *strings.Builder, v int) {
	s := strconv.FormatInt(int64(v), 16)
	if len(s) == 1 {
		b.WriteByte('0')
	}
	b.WriteString(s)
}

func (c *Color) hex() string {
	b := strings.Builder{}
	b.Grow(7)
	b.WriteByte('#')
	hexByte(&b, c.Red())
	hexByte(&b, c.Green())
	hexByte(&b, c.Blue())
	return b.String()
}

func shortHex(h string) string {
	if len(h) == 7 && h[1] == h[2] && h[3] == h[4] && h[5] == h[6] {
		return string([]byte{'#', h[1], h[3], h[5]})
	}
	return h
}

func (c *Color) format(compressed bool) string {
	if c.repr != "" && !compressed {
		return c.repr
	}
	if !c.isOpaque() {
		if c.a.Sign() == 0 && compressed {
			return "transparent"
		}
		sep := ", "
		if compressed {
			sep = ","
		}
		return "rgba(" +
			strconv.Itoa(c.Red()) + sep +
			strconv.Itoa(c.Green()) + sep +
			strconv.Itoa(c.Blue()) + sep +
			c.a.format(compressed) + ")"
	}
	h := c.hex()
	name, hasName := colorNamesByHex[h]
	if compressed {
		h = shortHex(h)
		if hasName && len(name) < len(h) {
			return name
		}
		return h
	}
	if hasName {
		return name
	}
	return h
}

// parseHexColor parses the digits of #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseHexColor(digits string) (*Color, bool) {
	switch len(digits) {
	case 3, 4:
		b := make([]byte, 0, 8)
		for i := 0; i < len(digits); i++ {
			b = append(b, digits[i], digits[i])
		}
		digits = string(b)
	case 6, 8:
	default:
		return nil, false
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return nil, false
	}
	a := newNumber(1)
	if len(digits) == 8 {
		a = newNumberFrac(int64(v&255), 255)
		v >>= 8
	}
	return newColorRGBA(
		newNumber(int64(v>>16)),
		newNumber(int64((v>>8)&255)),
		newNumber(int64(v&255)),
		a,
	), true
}

func lookupNamedColor(name string) (*Color, bool) {
	rgba, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return newColorRGBA(
		newNumber(int64(rgba[0])),
		newNumber(int64(rgba[1])),
		newNumber(int64(rgba[2])),
		newNumber(int64(rgba[3])),
	), true
}
