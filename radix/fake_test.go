package radix

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aglyzov/go-lpm/prefix"
)

// fakePrefix returns a random prefix of fam. Addresses are drawn from a
// few /16 (or /32) blocks to get plenty of nesting and shared branches.
func fakePrefix(fake *gofakeit.Faker, fam prefix.Family) prefix.Prefix {
	var text string

	switch fam {
	case prefix.IPv4:
		text = fmt.Sprintf("10.%d.%d.%d/%d",
			fake.Number(0, 3), fake.Number(0, 255), fake.Number(0, 255), fake.Number(8, 32))
	default:
		text = fmt.Sprintf("2001:db8:%x:%x::/%d",
			fake.Number(0, 3), fake.Number(0, 0xffff), fake.Number(32, 64))
	}
	return prefix.MustParse(text)
}

func TestFakeData(t *testing.T) {
	t.Parallel()

	for _, fam := range []prefix.Family{prefix.IPv4, prefix.IPv6} {
		fam := fam

		t.Run(fam.String(), func(t *testing.T) {
			t.Parallel()

			const (
				total = 5_000
				seed  = 1234567890
			)

			var (
				tr   = New[string](fam)
				gold goldTrie[string]
				fake = gofakeit.New(seed)
				keys []prefix.Prefix
			)

			// insert fake data, with duplicates
			for i := 0; i < total; i++ {
				p := fakePrefix(fake, fam)
				val := fake.Name()

				n := tr.Insert(p, val)
				require.NotNil(t, n)
				gold.insert(p, val)
				keys = append(keys, p)
			}
			checkInvariants(t, tr)
			require.Equal(t, len(gold), tr.Len())

			// exact and longest-prefix lookups agree with the reference
			for i := 0; i < total; i++ {
				probe := fakePrefix(fake, fam)

				expVal, expOK := gold.get(probe)
				val, ok := tr.Get(probe)
				assert.Equal(t, expOK, ok, probe)
				assert.Equal(t, expVal, val, probe)

				expLPM, expVal, expOK := gold.match(probe)
				lpm, val, ok := tr.Lookup(probe)
				assert.Equal(t, expOK, ok, probe)
				assert.Equal(t, expLPM, lpm, probe)
				assert.Equal(t, expVal, val, probe)
			}

			// delete half of the keys, some of them twice
			for i, p := range keys {
				if i%2 == 1 {
					continue
				}
				_, ok := tr.Delete(p)
				assert.Equal(t, gold.delete(p), ok, p)
			}
			checkInvariants(t, tr)
			require.Equal(t, len(gold), tr.Len())

			for _, p := range keys {
				expVal, expOK := gold.get(p)
				val, ok := tr.Get(p)
				assert.Equal(t, expOK, ok, p)
				assert.Equal(t, expVal, val, p)
			}

			// pre-order: each stored prefix after all of its stored supernets
			seen := map[prefix.Prefix]bool{}
			for p := range tr.All() {
				for _, item := range gold {
					if item.Prefix != p && item.Prefix.Contains(p) {
						assert.True(t, seen[item.Prefix], "%v before %v", item.Prefix, p)
					}
				}
				seen[p] = true
			}
			assert.Len(t, seen, len(gold))

			// and everything can go away again
			for _, p := range keys {
				tr.Delete(p)
			}
			assert.True(t, tr.Empty())
			assert.Equal(t, 0, tr.NodeCount())
		})
	}
}
