package bitindex

import (
	"fmt"
	"math/bits"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopcount(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Bitmap Bitmap
		Exp    int
	}{
		{0, 0},
		{1, 1},
		{0b_1011, 3},
		{1 << 63, 1},
		{0xFFFFFFFFFFFFFFFF, 64},
		{0xAAAAAAAAAAAAAAAA, 32},
		{0x8000000000000001, 2},
	} {
		tcase := tcase

		t.Run(fmt.Sprintf("%#x", uint64(tcase.Bitmap)), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tcase.Exp, Popcount(tcase.Bitmap))
		})
	}
}

func TestPopcount_Random(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(1234567890)

	for i := 0; i < 1000; i++ {
		b := faker.Uint64()

		require.Equal(t, bits.OnesCount64(b), Popcount(Bitmap(b)), "bitmap %#x", b)
	}
}

func TestHasHardwarePopcount(t *testing.T) {
	t.Parallel()

	// any answer is fine, Popcount must not depend on it
	t.Logf("hardware popcount: %v", HasHardwarePopcount())

	assert.Equal(t, 64, Popcount(^Bitmap(0)))
}

func TestIsSet(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(42)
	bitmaps := []Bitmap{0, ^Bitmap(0), 1, 1 << 63, 0x5555555555555555}

	for i := 0; i < 32; i++ {
		bitmaps = append(bitmaps, Bitmap(faker.Uint64()))
	}

	for _, b := range bitmaps {
		for s := Symbol(0); s <= MaxSymbol; s++ {
			ok, err := IsSet(b, s)

			require.NoError(t, err)
			require.Equal(t, (uint64(b)>>(63-s))&1 == 1, ok, "bitmap %v symbol %d", b, s)
		}
	}
}

func TestIsSet_InvalidSymbol(t *testing.T) {
	t.Parallel()

	for _, s := range []Symbol{64, 65, 128, 255} {
		ok, err := IsSet(^Bitmap(0), s)

		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidSymbol), "symbol %d: %v", s, err)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Bitmap(1<<63), Mask(0))
	assert.Equal(t, Bitmap(1<<61), Mask(2))
	assert.Equal(t, Bitmap(1), Mask(63))
	assert.Equal(t, Bitmap(0), Mask(64))
}

func TestCompactOffset(t *testing.T) {
	t.Parallel()

	// symbols 0, 2, 3 and 63
	b := Mask(0) | Mask(2) | Mask(3) | Mask(63)

	for _, tcase := range []*struct {
		Sym Symbol
		Exp int
	}{
		{0, 0},
		{2, 1},
		{3, 2},
		{63, 3},
	} {
		assert.Equal(t, tcase.Exp, CompactOffset(b, tcase.Sym), "symbol %d", tcase.Sym)
	}
}

func TestCompactOffset_MostSignificantSetBit(t *testing.T) {
	t.Parallel()

	// the highest present symbol always lands at offset 0
	for s := Symbol(0); s <= MaxSymbol; s++ {
		b := Mask(s) | Mask(MaxSymbol)

		assert.Equal(t, 0, CompactOffset(b, s), "symbol %d", s)
	}
}

func TestCompactOffset_Gapless(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(7)

	for i := 0; i < 256; i++ {
		var (
			b    = Bitmap(faker.Uint64())
			want = 0
		)

		if i == 0 {
			b = ^Bitmap(0)
		}

		for s := Symbol(0); s <= MaxSymbol; s++ {
			if ok, _ := IsSet(b, s); !ok {
				continue
			}

			require.Equal(t, want, CompactOffset(b, s), "bitmap %v symbol %d", b, s)

			want++
		}

		require.Equal(t, Popcount(b), want)
	}
}

func TestSymbols(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Symbols(0))
	assert.Equal(t, []Symbol{0, 2, 63}, Symbols(Mask(63)|Mask(0)|Mask(2)))
	assert.Len(t, Symbols(^Bitmap(0)), Fanout)
}

func TestWithWithout(t *testing.T) {
	t.Parallel()

	b := With(0, 5)
	b = With(b, 7)

	assert.Equal(t, []Symbol{5, 7}, Symbols(b))

	b = Without(b, 5)
	b = Without(b, 9) // not present

	assert.Equal(t, []Symbol{7}, Symbols(b))
}

func TestBitmap_String(t *testing.T) {
	t.Parallel()

	s := (Mask(0) | Mask(63)).String()

	assert.Len(t, s, 64)
	assert.Equal(t, byte('1'), s[0])
	assert.Equal(t, byte('1'), s[63])
	assert.Equal(t, byte('0'), s[1])
}
