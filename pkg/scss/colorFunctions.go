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
	"strings"
)

var hundred = newNumber(100)

// channel converts a red, green or blue argument to [0,255].
func channel(v Value, param, fn string, t token) (Number, error) {
	d, ok := v.(Dimension)
	if !ok {
		return Number{}, typeError(t, param, fn, "number", v)
	}
	switch {
	case d.Unit.IsEmpty():
		return d.Num, nil
	case d.Unit.Is("%"):
		n, _ := d.Num.Quo(hundred)
		return n.Mul(channelMax), nil
	}
	return Number{}, errorf(
		TypeMismatch, t, "$%s: Expected %s to have unit \"%%\" or no units for `%s'.",
		param, inspect(d), fn,
	)
}

// alphaChannel converts an alpha argument to [0,1].
func alphaChannel(v Value, fn string, t token) (Number, error) {
	if isNull(v) {
		return alphaMax, nil
	}
	d, ok := v.(Dimension)
	if !ok {
		return Number{}, typeError(t, "alpha", fn, "number", v)
	}
	switch {
	case d.Unit.IsEmpty():
		return d.Num, nil
	case d.Unit.Is("%"):
		n, _ := d.Num.Quo(hundred)
		return n, nil
	}
	return Number{}, errorf(
		TypeMismatch, t, "$alpha: Expected %s to have unit \"%%\" or no units for `%s'.",
		inspect(d), fn,
	)
}

func hueOf(v Value, fn string, t token) (Number, error) {
	d, ok := v.(Dimension)
	if !ok {
		return Number{}, typeError(t, "hue", fn, "number", v)
	}
	if d.Unit.IsEmpty() || d.Unit.Is("%") || d.Unit.Is("deg") {
		return d.Num, nil
	}
	return Number{}, errorf(
		TypeMismatch, t, "$hue: Expected %s to have unit \"deg\" or no units for `%s'.",
		inspect(d), fn,
	)
}

// fraction converts a saturation or lightness argument to [0,1].
func fraction(v Value, param, fn string, t token) (Number, error) {
	d, ok := v.(Dimension)
	if !ok {
		return Number{}, typeError(t, param, fn, "number", v)
	}
	if !d.Unit.IsEmpty() && !d.Unit.Is("%") {
		return Number{}, errorf(
			TypeMismatch, t, "$%s: Expected %s to have unit \"%%\" or no units for `%s'.",
			param, inspect(d), fn,
		)
	}
	n, _ := d.Num.Quo(hundred)
	return n, nil
}

// spreadChannels supports the single argument form "rgb(1 2 3)".
func spreadChannels(a *frame, names ...string) {
	l, ok := a.vars[names[0]].(List)
	if !ok || l.Sep != sepSpace || l.Bracketed || len(l.Items) < 3 {
		return
	}
	for _, name := range names[1:] {
		if !isNull(a.vars[name]) {
			return
		}
	}
	for i, item := range l.Items {
		if i < len(names) {
			a.vars[names[i]] = item
		}
	}
}

func rgbFunction(name string) builtinFunc {
	return func(e *evalContext, a *frame, t token) (Value, error) {
		spreadChannels(a, "red", "green", "blue", "alpha")
		if c, ok := a.vars["red"].(*Color); ok {
			alpha := a.vars["green"]
			if isNull(alpha) {
				alpha = a.vars["alpha"]
			}
			if !isNull(a.vars["blue"]) {
				return nil, errorf(
					SurplusArgument, t,
					"Only 2 arguments allowed, but 3 were passed.",
				)
			}
			n, err := alphaChannel(alpha, name, t)
			if err != nil {
				return nil, err
			}
			return c.withAlpha(n), nil
		}
		var rgb [3]Number
		for i, param := range []string{"red", "green", "blue"} {
			v := a.vars[param]
			if isNull(v) && i > 0 {
				return nil, errorf(MissingArgument, t, "Missing argument $%s.", param)
			}
			n, err := channel(v, param, name, t)
			if err != nil {
				return nil, err
			}
			rgb[i] = n
		}
		alpha, err := alphaChannel(a.vars["alpha"], name, t)
		if err != nil {
			return nil, err
		}
		return newColorRGBA(rgb[0], rgb[1], rgb[2], alpha), nil
	}
}

func hslFunction(name string) builtinFunc {
	return func(e *evalContext, a *frame, t token) (Value, error) {
		spreadChannels(a, "hue", "saturation", "lightness", "alpha")
		for _, param := range []string{"saturation", "lightness"} {
			if isNull(a.vars[param]) {
				return nil, errorf(MissingArgument, t, "Missing argument $%s.", param)
			}
		}
		h, err := hueOf(a.vars["hue"], name, t)
		if err != nil {
			return nil, err
		}
		s, err := fraction(a.vars["saturation"], "saturation", name, t)
		if err != nil {
			return nil, err
		}
		l, err := fraction(a.vars["lightness"], "lightness", name, t)
		if err != nil {
			return nil, err
		}
		alpha, err := alphaChannel(a.vars["alpha"], name, t)
		if err != nil {
			return nil, err
		}
		return newColorHSLA(h, s, l, alpha), nil
	}
}

func channelAccessor(name string, get func(c *Color) int) {
	declare(name, "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", name, t)
		if err != nil {
			return nil, err
		}
		return unitless(newNumber(int64(get(c)))), nil
	})
}

// adjustHSL applies fn to the HSL view of the $color argument.
func adjustHSL(name, amountUnit string, fn func(h *hslaColor, amount Number)) {
	declare(name, "($color, $amount)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", name, t)
		if err != nil {
			return nil, err
		}
		var amount Number
		if amountUnit == "%" {
			amount, err = argPercentage(a, "amount", name, t)
			if err != nil {
				return nil, err
			}
			amount, _ = amount.Quo(hundred)
		} else {
			amount, err = argUnitless(a, "amount", name, t)
			if err != nil {
				return nil, err
			}
			amount, err = checkRange(amount, zero, alphaMax, "amount", a.vars["amount"], name, t)
			if err != nil {
				return nil, err
			}
		}
		h := c.ToHSLA()
		fn(&h, amount)
		if amountUnit == "%" {
			return h.ToRGBA(), nil
		}
		return c.withAlpha(h.alpha), nil
	})
}

func declareColorFunctions() {
	const rgbSignature = "($red, $green: null, $blue: null, $alpha: null)"
	declare("rgb", rgbSignature, rgbFunction("rgb"))
	declare("rgba", rgbSignature, rgbFunction("rgba"))
	const hslSignature = "($hue, $saturation: null, $lightness: null, $alpha: null)"
	declare("hsl", hslSignature, hslFunction("hsl"))
	declare("hsla", hslSignature, hslFunction("hsla"))

	channelAccessor("red", (*Color).Red)
	channelAccessor("green", (*Color).Green)
	channelAccessor("blue", (*Color).Blue)

	declare("opacity", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		if d, ok := a.vars["color"].(Dimension); ok {
			s, err := toCSS(d, e.compressed())
			if err != nil {
				return nil, newError(TypeMismatch, t, err.Error())
			}
			return ident("opacity(" + s + ")"), nil
		}
		c, err := argColor(a, "color", "opacity", t)
		if err != nil {
			return nil, err
		}
		return unitless(c.Alpha()), nil
	})
	declare("alpha", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", "alpha", t)
		if err != nil {
			return nil, err
		}
		return unitless(c.Alpha()), nil
	})

	declare("hue", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", "hue", t)
		if err != nil {
			return nil, err
		}
		return Dimension{Num: c.ToHSLA().hue, Unit: unitOf("deg")}, nil
	})
	hslComponent := func(name string, get func(h hslaColor) Number) {
		declare(name, "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
			c, err := argColor(a, "color", name, t)
			if err != nil {
				return nil, err
			}
			return Dimension{Num: get(c.ToHSLA()).Mul(hundred), Unit: unitOf("%")}, nil
		})
	}
	hslComponent("saturation", func(h hslaColor) Number { return h.saturation })
	hslComponent("lightness", func(h hslaColor) Number { return h.lightness })

	declare("adjust-hue", "($color, $degrees)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", "adjust-hue", t)
		if err != nil {
			return nil, err
		}
		d, err := argNumber(a, "degrees", "adjust-hue", t)
		if err != nil {
			return nil, err
		}
		h := c.ToHSLA()
		h.hue = h.hue.Add(d.Num)
		return h.ToRGBA(), nil
	})
	adjustHSL("lighten", "%", func(h *hslaColor, n Number) {
		h.lightness = h.lightness.Add(n).Clamp(zero, alphaMax)
	})
	adjustHSL("darken", "%", func(h *hslaColor, n Number) {
		h.lightness = h.lightness.Sub(n).Clamp(zero, alphaMax)
	})
	adjustHSL("desaturate", "%", func(h *hslaColor, n Number) {
		h.saturation = h.saturation.Sub(n).Clamp(zero, alphaMax)
	})
	adjustHSL("opacify", "", func(h *hslaColor, n Number) {
		h.alpha = h.alpha.Add(n).Clamp(zero, alphaMax)
	})
	builtins["fade-in"] = builtins["opacify"]
	adjustHSL("transparentize", "", func(h *hslaColor, n Number) {
		h.alpha = h.alpha.Sub(n).Clamp(zero, alphaMax)
	})
	builtins["fade-out"] = builtins["transparentize"]

	declare("saturate", "($color, $amount: null)", func(e *evalContext, a *frame, t token) (Value, error) {
		if isNull(a.vars["amount"]) {
			if d, ok := a.vars["color"].(Dimension); ok {
				return e.plainCSS("saturate", []Value{d})
			}
			return nil, newError(MissingArgument, t, "Missing argument $amount.")
		}
		c, err := argColor(a, "color", "saturate", t)
		if err != nil {
			return nil, err
		}
		amount, err := argPercentage(a, "amount", "saturate", t)
		if err != nil {
			return nil, err
		}
		amount, _ = amount.Quo(hundred)
		h := c.ToHSLA()
		h.saturation = h.saturation.Add(amount).Clamp(zero, alphaMax)
		return h.ToRGBA(), nil
	})
	declare("grayscale", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		if d, ok := a.vars["color"].(Dimension); ok {
			return e.plainCSS("grayscale", []Value{d})
		}
		c, err := argColor(a, "color", "grayscale", t)
		if err != nil {
			return nil, err
		}
		h := c.ToHSLA()
		h.saturation = zero
		return h.ToRGBA(), nil
	})
	declare("complement", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", "complement", t)
		if err != nil {
			return nil, err
		}
		h := c.ToHSLA()
		h.hue = h.hue.Add(newNumber(180))
		return h.ToRGBA(), nil
	})
	declare("invert", "($color, $weight: 100%)", func(e *evalContext, a *frame, t token) (Value, error) {
		if d, ok := a.vars["color"].(Dimension); ok {
			return e.plainCSS("invert", []Value{d})
		}
		c, err := argColor(a, "color", "invert", t)
		if err != nil {
			return nil, err
		}
		weight, err := argPercentage(a, "weight", "invert", t)
		if err != nil {
			return nil, err
		}
		inverse := newColorRGBA(
			channelMax.Sub(c.r), channelMax.Sub(c.g), channelMax.Sub(c.b), c.a,
		)
		return mixColors(inverse, c, weight), nil
	})
	declare("mix", "($color1, $color2, $weight: 50%)", func(e *evalContext, a *frame, t token) (Value, error) {
		c1, err := argColor(a, "color1", "mix", t)
		if err != nil {
			return nil, err
		}
		c2, err := argColor(a, "color2", "mix", t)
		if err != nil {
			return nil, err
		}
		weight, err := argPercentage(a, "weight", "mix", t)
		if err != nil {
			return nil, err
		}
		return mixColors(c1, c2, weight), nil
	})
	declare("ie-hex-str", "($color)", func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", "ie-hex-str", t)
		if err != nil {
			return nil, err
		}
		alpha, _ := c.a.Mul(channelMax).Round().Int()
		b := strings.Builder{}
		b.WriteByte('#')
		hexByte(&b, alpha)
		b.WriteString(c.hex()[1:])
		return ident(strings.ToUpper(b.String())), nil
	})

	declare("adjust-color", "($color, $kwargs...)", colorAdjuster("adjust-color", adjustChannel))
	declare("change-color", "($color, $kwargs...)", colorAdjuster("change-color", changeChannel))
	declare("scale-color", "($color, $kwargs...)", colorAdjuster("scale-color", scaleChannel))
}

type channelOp func(old, arg, limit Number) Number

func adjustChannel(old, arg, limit Number) Number {
	return old.Add(arg).Clamp(zero, limit)
}

func changeChannel(_, arg, limit Number) Number {
	return arg.Clamp(zero, limit)
}

// scaleChannel moves old towards 0 or max by arg, a fraction in [-1,1].
func scaleChannel(old, arg, limit Number) Number {
	if arg.Sign() > 0 {
		return old.Add(limit.Sub(old).Mul(arg))
	}
	return old.Add(old.Mul(arg))
}

var (
	rgbChannels = []string{"red", "green", "blue"}
	hslChannels = []string{"hue", "saturation", "lightness"}
)

func colorAdjuster(name string, op channelOp) builtinFunc {
	scale := name == "scale-color"
	return func(e *evalContext, a *frame, t token) (Value, error) {
		c, err := argColor(a, "color", name, t)
		if err != nil {
			return nil, err
		}
		kwargs := a.vars["kwargs"].(*ArgList)
		if kwargs.positionalCount() > 0 {
			return nil, errorf(
				SurplusArgument, t,
				"Only one positional argument is allowed. All other arguments must be passed by name.",
			)
		}
		args := make(map[string]Number, len(kwargs.Items))
		for i, v := range kwargs.Items {
			param := normalizeName(kwargs.name(i))
			d, ok := v.(Dimension)
			if !ok {
				return nil, typeError(t, param, name, "number", v)
			}
			n := d.Num
			switch {
			case scale:
				if !d.Unit.Is("%") {
					return nil, errorf(
						TypeMismatch, t, "$%s: Expected %s to have unit \"%%\" for `%s'.",
						param, inspect(d), name,
					)
				}
				n, _ = n.Quo(hundred)
			case param == "saturation" || param == "lightness":
				n, _ = n.Quo(hundred)
			}
			args[param] = n
		}
		hasRGB, hasHSL := false, false
		for _, ch := range rgbChannels {
			_, ok := args[ch]
			hasRGB = hasRGB || ok
		}
		for _, ch := range hslChannels {
			_, ok := args[ch]
			hasHSL = hasHSL || ok
		}
		for k := range args {
			if k != "alpha" && !contains(rgbChannels, k) && !contains(hslChannels, k) {
				return nil, errorf(SurplusArgument, t, "No argument named $%s.", k)
			}
		}
		if hasRGB && hasHSL {
			return nil, errorf(
				TypeMismatch, t,
				"RGB parameters may not be passed along with HSL parameters.",
			)
		}

		alpha := c.a
		if n, ok := args["alpha"]; ok {
			alpha = op(alpha, n, alphaMax)
		}
		if hasHSL {
			h := c.ToHSLA()
			if n, ok := args["hue"]; ok {
				if scale {
					return nil, errorf(SurplusArgument, t, "No argument named $hue.")
				}
				if name == "change-color" {
					h.hue = n
				} else {
					h.hue = h.hue.Add(n)
				}
			}
			if n, ok := args["saturation"]; ok {
				h.saturation = op(h.saturation, n, alphaMax)
			}
			if n, ok := args["lightness"]; ok {
				h.lightness = op(h.lightness, n, alphaMax)
			}
			h.alpha = alpha
			return h.ToRGBA(), nil
		}
		rgb := [3]Number{c.r, c.g, c.b}
		for i, ch := range rgbChannels {
			if n, ok := args[ch]; ok {
				rgb[i] = op(rgb[i], n, channelMax)
			}
		}
		return newColorRGBA(rgb[0], rgb[1], rgb[2], alpha), nil
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
