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
	"strings"

	"github.com/shopspring/decimal"
)

// Number is an exact rational. The zero value is 0.
type Number struct {
	r *big.Rat
}

const numberPrecision = 10

var (
	ratZero    = new(big.Rat)
	ratOne     = big.NewRat(1, 1)
	ratHalf    = big.NewRat(1, 2)
	ratHundred = big.NewRat(100, 1)
)

func newNumber(i int64) Number {
	return Number{r: new(big.Rat).SetInt64(i)}
}

func newNumberFrac(a, b int64) Number {
	return Number{r: big.NewRat(a, b)}
}

func newNumberRat(r *big.Rat) Number {
	return Number{r: r}
}

func parseNumber(s string) (Number, error) {
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, err
	}
	return Number{r: d.Rat()}, nil
}

func (n Number) rat() *big.Rat {
	if n.r == nil {
		return ratZero
	}
	return n.r
}

func (n Number) Add(o Number) Number {
	return Number{r: new(big.Rat).Add(n.rat(), o.rat())}
}

func (n Number) Sub(o Number) Number {
	return Number{r: new(big.Rat).Sub(n.rat(), o.rat())}
}

func (n Number) Mul(o Number) Number {
	return Number{r: new(big.Rat).Mul(n.rat(), o.rat())}
}

// Quo divides n by o, ok is false on division by zero.
func (n Number) Quo(o Number) (Number, bool) {
	if o.Sign() == 0 {
		return Number{}, false
	}
	return Number{r: new(big.Rat).Quo(n.rat(), o.rat())}, true
}

// Mod returns the remainder with the sign of the divisor.
func (n Number) Mod(o Number) (Number, bool) {
	q, ok := n.Quo(o)
	if !ok {
		return Number{}, false
	}
	return n.Sub(o.Mul(q.Floor())), true
}

func (n Number) Neg() Number {
	return Number{r: new(big.Rat).Neg(n.rat())}
}

func (n Number) Abs() Number {
	return Number{r: new(big.Rat).Abs(n.rat())}
}

func (n Number) Sign() int {
	return n.rat().Sign()
}

func (n Number) Cmp(o Number) int {
	return n.rat().Cmp(o.rat())
}

func (n Number) Eq(o Number) bool {
	return n.Cmp(o) == 0
}

func (n Number) IsInt() bool {
	return n.rat().IsInt()
}

// Int converts n for index and channel contexts, ok is false when n is not
// integral or out of range.
func (n Number) Int() (int, bool) {
	if !n.IsInt() {
		return 0, false
	}
	v := n.rat().Num()
	if !v.IsInt64() {
		return 0, false
	}
	i := v.Int64()
	if int64(int(i)) != i {
		return 0, false
	}
	return int(i), true
}

func (n Number) Floor() Number {
	r := n.rat()
	q := new(big.Int).Div(r.Num(), r.Denom())
	return Number{r: new(big.Rat).SetInt(q)}
}

func (n Number) Ceil() Number {
	if n.IsInt() {
		return n
	}
	return n.Floor().Add(newNumber(1))
}

// Round rounds half away from zero.
func (n Number) Round() Number {
	a := Number{r: new(big.Rat).Add(n.Abs().rat(), ratHalf)}.Floor()
	if n.Sign() < 0 {
		return a.Neg()
	}
	return a
}

// Clamp limits n to [lo, hi].
func (n Number) Clamp(lo, hi Number) Number {
	if n.Cmp(lo) < 0 {
		return lo
	}
	if n.Cmp(hi) > 0 {
		return hi
	}
	return n
}

func (n Number) Float64() float64 {
	f, _ := n.rat().Float64()
	return f
}

func (n Number) String() string {
	return n.format(false)
}

func (n Number) format(compressed bool) string {
	r := n.rat()
	var s string
	if r.IsInt() {
		s = r.Num().String()
	} else {
		s = decimal.NewFromBigInt(r.Num(), 0).
			DivRound(decimal.NewFromBigInt(r.Denom(), 0), numberPrecision).
			String()
	}
	if s == "-0" {
		s = "0"
	}
	if compressed {
		if strings.HasPrefix(s, "0.") {
			s = s[1:]
		} else if strings.HasPrefix(s, "-0.") {
			s = "-" + s[2:]
		}
	}
	return s
}
