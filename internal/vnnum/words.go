// Package vnnum renders monetary amounts as Vietnamese words for the
// "Bằng chữ" line of printed warehouse vouchers.
package vnnum

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrNotFinite is returned for NaN and infinite amounts.
var ErrNotFinite = errors.New("amount is not a finite number")

var (
	digitWords = []string{" không", " một", " hai", " ba", " bốn", " năm", " sáu", " bảy", " tám", " chín"}
	scaleWords = []string{"", " nghìn", " triệu", " tỷ", " nghìn tỷ", " triệu tỷ"}
)

// AmountToWords converts an amount of đồng into words, e.g.
// 1000000 -> "Một triệu đồng". The amount is rounded to a whole number
// first. Negative amounts are read as their absolute value prefixed with
// "Âm"; non-finite input is rejected.
func AmountToWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrNotFinite
	}

	negative := amount < 0
	n := math.Round(math.Abs(amount))
	if n == 0 {
		return "Không đồng", nil
	}

	str := strconv.FormatFloat(n, 'f', 0, 64)
	for len(str)%3 != 0 {
		str = "0" + str
	}

	var result string
	scale := 0
	for i := len(str); i > 0; i -= 3 {
		group := readGroup(str[i-3 : i])
		if group != "" {
			if scale >= len(scaleWords) {
				return "", fmt.Errorf("amount %v exceeds the supported scale", amount)
			}
			result = group + scaleWords[scale] + result
		}
		scale++
	}

	result = strings.TrimSpace(result)
	result = strings.TrimSpace(strings.TrimPrefix(result, "không trăm"))
	result = strings.TrimSpace(strings.TrimPrefix(result, "linh"))

	result = capitalize(result) + " đồng"
	if negative {
		result = "Âm " + lowerFirst(result)
	}
	return result, nil
}

// readGroup reads one base-1000 group of exactly three decimal digits,
// applying the positional irregulars: "mốt" for a trailing one after a
// tens digit above one, "lăm" for a trailing five after any tens digit,
// "linh" between an empty tens and a nonzero unit.
func readGroup(group string) string {
	if group == "000" {
		return ""
	}
	hundreds := int(group[0] - '0')
	tens := int(group[1] - '0')
	units := int(group[2] - '0')

	out := digitWords[hundreds] + " trăm"

	if tens == 0 && units == 0 {
		return out
	}
	if tens == 0 {
		return out + " linh" + digitWords[units]
	}

	if tens == 1 {
		out += " mười"
	} else {
		out += digitWords[tens] + " mươi"
	}

	switch {
	case units == 1:
		if tens > 1 {
			out += " mốt"
		} else {
			out += " một"
		}
	case units == 5:
		out += " lăm"
	case units != 0:
		out += digitWords[units]
	}
	return out
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
