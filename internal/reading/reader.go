// Package reading renders non-negative integers as spoken Japanese
// (hiragana) numerals, the form handed to the speech engine during a drill.
package reading

import (
	"math"
	"strings"
)

// Zero is the reading of 0.
const Zero = "ぜろ"

const (
	man = "まん" // 10^4
	oku = "おく" // 10^8
)

var (
	units     = [10]string{"", "いち", "に", "さん", "よん", "ご", "ろく", "なな", "はち", "きゅう"}
	tens      = [10]string{"", "じゅう", "にじゅう", "さんじゅう", "よんじゅう", "ごじゅう", "ろくじゅう", "ななじゅう", "はちじゅう", "きゅうじゅう"}
	hundreds  = [10]string{"", "ひゃく", "にひゃく", "さんびゃく", "よんひゃく", "ごひゃく", "ろっぴゃく", "ななひゃく", "はっぴゃく", "きゅうひゃく"}
	thousands = [10]string{"", "せん", "にせん", "さんぜん", "よんせん", "ごせん", "ろくせん", "ななせん", "はっせん", "きゅうせん"}
)

// Read returns the spoken reading of n. Values are grouped by powers of
// ten thousand (まん, おく); each group of up to four digits is rendered
// from the digit tables, which carry the rendaku and gemination forms
// (さんびゃく, ろっぴゃく, はっぴゃく, さんぜん, はっせん).
func Read(n uint32) string {
	if n == 0 {
		return Zero
	}

	var b strings.Builder
	if high := n / 100_000_000; high > 0 {
		b.WriteString(group(high))
		b.WriteString(oku)
		n %= 100_000_000
	}
	if mid := n / 10_000; mid > 0 {
		b.WriteString(group(mid))
		b.WriteString(man)
		n %= 10_000
	}
	if n > 0 {
		b.WriteString(group(n))
	}
	return b.String()
}

// ReadInt is Read for callers holding an int. Negative values are a caller
// error and read as zero; values above math.MaxUint32 read as math.MaxUint32.
func ReadInt(n int) string {
	if n <= 0 {
		return Zero
	}
	if uint64(n) > math.MaxUint32 {
		return Read(math.MaxUint32)
	}
	return Read(uint32(n))
}

// group renders 1..9999.
func group(x uint32) string {
	return thousands[x/1000] + hundreds[x%1000/100] + tens[x%100/10] + units[x%10]
}
