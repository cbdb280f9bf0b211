package types

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

const DifficultySize = 16

// Difficulty 128-bit target difficulty. A hash passes when, read as a little-endian
// 256-bit number, hash * difficulty < 2^256.
type Difficulty uint128.Uint128

var ZeroDifficulty = Difficulty(uint128.Zero)
var MaxDifficulty = Difficulty(uint128.Max)

func NewDifficulty(lo, hi uint64) Difficulty {
	return Difficulty{Lo: lo, Hi: hi}
}

func DifficultyFrom64(v uint64) Difficulty {
	return NewDifficulty(v, 0)
}

func (d Difficulty) IsZero() bool {
	return uint128.Uint128(d).IsZero()
}

func (d Difficulty) Equals(v Difficulty) bool {
	return uint128.Uint128(d).Equals(uint128.Uint128(v))
}

func (d Difficulty) Cmp(v Difficulty) int {
	return uint128.Uint128(d).Cmp(uint128.Uint128(v))
}

func (d Difficulty) Div(v Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Div(uint128.Uint128(v)))
}

func (d Difficulty) Div64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Div64(v))
}

// CheckPoW verifies pow against the difficulty, 256x128 bit multiply checking the upper 128 bits
func (d Difficulty) CheckPoW(pow Hash) bool {
	var w [4]uint64
	for i := range w {
		w[i] = binary.LittleEndian.Uint64(pow[i*8:])
	}

	var product [6]uint64
	for j, y := range [2]uint64{d.Lo, d.Hi} {
		var carry uint64
		for i, x := range w {
			hi, lo := bits.Mul64(x, y)
			var c uint64
			lo, c = bits.Add64(lo, product[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			product[i+j] = lo
			carry = hi
		}
		product[j+4] = carry
	}

	return product[4] == 0 && product[5] == 0
}

// String fixed width big-endian hex
func (d Difficulty) String() string {
	var buf [DifficultySize]byte
	binary.BigEndian.PutUint64(buf[:], d.Hi)
	binary.BigEndian.PutUint64(buf[8:], d.Lo)
	return fasthex.EncodeToString(buf[:])
}

// StringNumeric decimal representation
func (d Difficulty) StringNumeric() string {
	return uint128.Uint128(d).String()
}

// DifficultyFromString parses a decimal number, or big-endian hex when prefixed with 0x.
// Unprefixed input is always decimal, even at 32 digits.
func DifficultyFromString(s string) (Difficulty, error) {
	if hexStr, ok := strings.CutPrefix(s, "0x"); ok {
		return difficultyFromHex(hexStr)
	}

	v, err := uint128.FromString(s)
	if err != nil {
		return ZeroDifficulty, err
	}
	return Difficulty(v), nil
}

// DifficultyFromHex parses big-endian hex as produced by String, the 0x prefix is optional
func DifficultyFromHex(s string) (Difficulty, error) {
	return difficultyFromHex(strings.TrimPrefix(s, "0x"))
}

func difficultyFromHex(s string) (Difficulty, error) {
	if len(s) == 0 || len(s) > DifficultySize*2 {
		return ZeroDifficulty, errors.New("wrong difficulty size")
	}
	if len(s)%2 != 0 {
		s = "0" + s
	}

	var buf [DifficultySize]byte
	if _, err := fasthex.Decode(buf[DifficultySize-len(s)/2:], []byte(s)); err != nil {
		return ZeroDifficulty, err
	}
	return NewDifficulty(binary.BigEndian.Uint64(buf[8:]), binary.BigEndian.Uint64(buf[:])), nil
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	return []byte(d.StringNumeric()), nil
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty difficulty")
	}

	s := string(b)
	if s[0] == '"' {
		if len(s) < 2 || s[len(s)-1] != '"' {
			return errors.New("invalid difficulty")
		}
		s = s[1 : len(s)-1]
	}

	v, err := DifficultyFromString(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
