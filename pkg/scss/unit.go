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
	"math/big"
	"sort"
	"strings"
)

// Unit is a possibly compound unit like px or px*s/em.
type Unit struct {
	num []string
	den []string
}

var noUnit = Unit{}

func unitOf(u string) Unit {
	if u == "" {
		return noUnit
	}
	return Unit{num: []string{u}}
}

func (u Unit) IsEmpty() bool {
	return len(u.num) == 0 && len(u.den) == 0
}

// single returns the unit name of a simple unit.
func (u Unit) single() (string, bool) {
	if len(u.num) == 1 && len(u.den) == 0 {
		return u.num[0], true
	}
	return "", u.IsEmpty()
}

func (u Unit) Is(name string) bool {
	s, ok := u.single()
	return ok && strings.EqualFold(s, name)
}

func (u Unit) String() string {
	b := strings.Builder{}
	b.WriteString(strings.Join(u.num, "*"))
	if len(u.den) > 0 {
		b.WriteString("/")
		b.WriteString(strings.Join(u.den, "*"))
	}
	return b.String()
}

// isCSS reports whether the unit can be written to a stylesheet.
func (u Unit) isCSS() bool {
	return len(u.num) <= 1 && len(u.den) == 0
}

func sortedCopy(s []string) []string {
	o := append([]string(nil), s...)
	for i := range o {
		o[i] = strings.ToLower(o[i])
	}
	sort.Strings(o)
	return o
}

func (u Unit) Eq(o Unit) bool {
	a, b := sortedCopy(u.num), sortedCopy(o.num)
	c, d := sortedCopy(u.den), sortedCopy(o.den)
	if len(a) != len(b) || len(c) != len(d) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	for i := range c {
		if c[i] != d[i] {
			return false
		}
	}
	return true
}

type unitInfo struct {
	group  string
	factor *big.Rat
}

var unitTable = map[string]unitInfo{
	"px": {"length", big.NewRat(1, 1)},
	"in": {"length", big.NewRat(96, 1)},
	"cm": {"length", big.NewRat(9600, 254)},
	"mm": {"length", big.NewRat(960, 254)},
	"q":  {"length", big.NewRat(240, 254)},
	"pt": {"length", big.NewRat(4, 3)},
	"pc": {"length", big.NewRat(16, 1)},

	"deg":  {"angle", big.NewRat(1, 1)},
	"grad": {"angle", big.NewRat(9, 10)},
	"rad":  {"angle", new(big.Rat).SetFloat64(57.29577951308232)},
	"turn": {"angle", big.NewRat(360, 1)},

	"ms": {"time", big.NewRat(1, 1)},
	"s":  {"time", big.NewRat(1000, 1)},

	"hz":  {"frequency", big.NewRat(1, 1)},
	"khz": {"frequency", big.NewRat(1000, 1)},

	"dpi":  {"resolution", big.NewRat(1, 1)},
	"dpcm": {"resolution", big.NewRat(254, 100)},
	"dppx": {"resolution", big.NewRat(96, 1)},
	"x":    {"resolution", big.NewRat(96, 1)},
}

// conversionFactor returns the factor that converts a value in from into to.
func conversionFactor(from, to string) (*big.Rat, bool) {
	if strings.EqualFold(from, to) {
		return ratOne, true
	}
	a, ok := unitTable[strings.ToLower(from)]
	if !ok {
		return nil, false
	}
	b, ok := unitTable[strings.ToLower(to)]
	if !ok || a.group != b.group {
		return nil, false
	}
	return new(big.Rat).Quo(a.factor, b.factor), true
}

// convertTo expresses n in unit "to". Compound units must match exactly.
func convertTo(n Number, from, to Unit) (Number, bool) {
	if from.Eq(to) {
		return n, true
	}
	f, okF := from.single()
	t, okT := to.single()
	if !okF || !okT || f == "" || t == "" {
		return Number{}, false
	}
	factor, ok := conversionFactor(f, t)
	if !ok {
		return Number{}, false
	}
	return n.Mul(newNumberRat(factor)), true
}

// mulUnits combines the units of a product, cancelling where possible.
// The returned factor has to be applied to the numeric product.
func mulUnits(a, b Unit) (Unit, Number) {
	num := append(append([]string(nil), a.num...), b.num...)
	den := append(append([]string(nil), a.den...), b.den...)
	factor := newNumber(1)
	for i := 0; i < len(num); i++ {
		for j := 0; j < len(den); j++ {
			f, ok := conversionFactor(num[i], den[j])
			if !ok {
				continue
			}
			factor = factor.Mul(newNumberRat(f))
			num = append(num[:i], num[i+1:]...)
			den = append(den[:j], den[j+1:]...)
			i--
			break
		}
	}
	return Unit{num: num, den: den}, factor
}

func (u Unit) invert() Unit {
	return Unit{num: u.den, den: u.num}
}
