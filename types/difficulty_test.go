package types

import (
	"math"
	"runtime"
	"testing"
)

var (
	powHash             = MustHashFromString("abcf2c2ee4a64a683f24bedb2099dd16ae08c03a1ecc1208bf93a90200000000")
	sidechainDifficulty = DifficultyFrom64(2062136440)
	powDifficulty       = DifficultyFrom64(412975968250)
	moneroDifficulty    = DifficultyFrom64(229654626174)
)

func TestDifficulty(t *testing.T) {
	hexDiff := "000000000000000000000000683a8b1c"
	diff, err := DifficultyFromHex(hexDiff)
	if err != nil {
		t.Fatal(err)
	}

	if diff.String() != hexDiff {
		t.Fatalf("expected %s, got %s", hexDiff, diff)
	}

	if diff.StringNumeric() != "1748667164" {
		t.Fatalf("expected %s, got %s", "1748667164", diff.StringNumeric())
	}
}

func TestDifficultyFromString(t *testing.T) {
	for _, tc := range []struct {
		s        string
		expected Difficulty
	}{
		{"1748667164", DifficultyFrom64(1748667164)},
		{"0x683a8b1c", DifficultyFrom64(1748667164)},
		{"0x000000000000000000000000683a8b1c", DifficultyFrom64(1748667164)},
		// 10^31, 32 decimal digits
		{"10000000000000000000000000000000", NewDifficulty(13875954555633532928, 542101086242)},
		{"0xffffffffffffffffffffffffffffffff", MaxDifficulty},
	} {
		diff, err := DifficultyFromString(tc.s)
		if err != nil {
			t.Fatalf("%s: %s", tc.s, err)
		}
		if !diff.Equals(tc.expected) {
			t.Errorf("%s: expected %s, got %s", tc.s, tc.expected.StringNumeric(), diff.StringNumeric())
		}
	}

	for _, s := range []string{"", "0x", "abc", "0x1ffffffffffffffffffffffffffffffff", "-1"} {
		if _, err := DifficultyFromString(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestDifficulty_UnmarshalJSON(t *testing.T) {
	hexDiff := "\"0x4970d\""
	var diff Difficulty
	err := diff.UnmarshalJSON([]byte(hexDiff))
	if err != nil {
		t.Fatal(err)
	}

	if diff.Lo != 0x4970d {
		t.Fatalf("expected %d, got %d", 0x4970d, diff.Lo)
	}

	if err = diff.UnmarshalJSON([]byte("1000")); err != nil {
		t.Fatal(err)
	}
	if !diff.Equals(DifficultyFrom64(1000)) {
		t.Fatalf("expected %d, got %s", 1000, diff.StringNumeric())
	}

	buf, err := MaxDifficulty.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if err = diff.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if !diff.Equals(MaxDifficulty) {
		t.Fatalf("expected %s, got %s", MaxDifficulty, diff)
	}

	if err = diff.UnmarshalJSON([]byte("\"0x\"")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDifficulty_Convergence(t *testing.T) {
	t.Run("Division", func(t *testing.T) {
		check := func(a, b, expected Difficulty) {
			actual := a.Div(b)
			if !actual.Equals(expected) {
				t.Fatalf("expected %s, got %s", expected, actual)
			}
		}

		check(MaxDifficulty, MaxDifficulty, Difficulty{Lo: 1, Hi: 0})
		check(MaxDifficulty, Difficulty{Lo: 0, Hi: 1}, Difficulty{Lo: math.MaxUint64, Hi: 0})
		check(MaxDifficulty, Difficulty{Lo: 1, Hi: 1}, Difficulty{Lo: math.MaxUint64, Hi: 0})
		check(MaxDifficulty, Difficulty{Lo: 2, Hi: 1}, Difficulty{Lo: math.MaxUint64 - 1, Hi: 0})
		check(MaxDifficulty, Difficulty{Lo: 439125228929, Hi: 439125228929}, Difficulty{Lo: 42007935, Hi: 0})
		check(Difficulty{Lo: 0, Hi: math.MaxUint64}, Difficulty{Lo: math.MaxUint64, Hi: 0}, Difficulty{Lo: 0, Hi: 1})
	})
}

func TestDifficulty_CheckPoW(t *testing.T) {

	if !moneroDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, moneroDifficulty)
	}

	if !sidechainDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, sidechainDifficulty)
	}

	if !powDifficulty.CheckPoW(powHash) {
		t.Errorf("%s does not pass PoW %s", powHash, powDifficulty)
	}

	powHash2 := powHash
	powHash2[len(powHash2)-1]++

	if moneroDifficulty.CheckPoW(powHash2) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash2, moneroDifficulty)
	}

	if sidechainDifficulty.CheckPoW(powHash2) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash2, sidechainDifficulty)
	}

	powHash3 := powHash
	powHash3[len(powHash2)-9]++

	if powDifficulty.CheckPoW(powHash3) {
		t.Errorf("%s does pass PoW %s incorrectly", powHash3, powDifficulty)
	}

	if !ZeroDifficulty.CheckPoW(powHash2) || !DifficultyFrom64(1).CheckPoW(powHash2) {
		t.Errorf("difficulty 0 and 1 must accept every hash")
	}
}

func BenchmarkDifficulty_CheckPoW(b *testing.B) {
	b.ReportAllocs()
	var result bool
	for b.Loop() {
		result = moneroDifficulty.CheckPoW(powHash)
	}
	runtime.KeepAlive(result)
}

func FuzzDifficulty_CheckPoW(f *testing.F) {
	f.Add(powHash[:], sidechainDifficulty.Lo, sidechainDifficulty.Hi)
	f.Add(powHash[:], powDifficulty.Lo, powDifficulty.Hi)
	f.Add(ZeroHash[:], uint64(0), uint64(0))

	f.Fuzz(func(t *testing.T, hash []byte, lo, hi uint64) {
		if len(hash) != HashSize {
			t.SkipNow()
		}

		d := NewDifficulty(lo, hi)
		h := Hash(hash)

		if !d.CheckPoW(ZeroHash) {
			t.Fatalf("diff lo,hi = %d, %d: zero hash must always pass", lo, hi)
		}

		// lowering the difficulty can only make it easier to pass
		if d.CheckPoW(h) && !d.Div64(2).CheckPoW(h) {
			t.Fatalf("%s diff lo,hi = %d, %d: half difficulty must pass", h.String(), lo, hi)
		}
	})
}
