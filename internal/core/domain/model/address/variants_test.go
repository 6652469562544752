package address_test

import (
	"testing"

	"dispatch/internal/core/domain/model/address"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const springfieldAddress = "123 Main Street Apt 4B, Springfield, VA 22150"

func TestNormalize(t *testing.T) {
	t.Run("should abbreviate street terms and title-case result", func(t *testing.T) {
		got := address.Normalize(springfieldAddress)

		assert.Equal(t, "123 Main St Apt 4b, Springfield, Va 22150", got)
	})

	t.Run("should abbreviate direction words", func(t *testing.T) {
		got := address.Normalize("500 Northwest Broad Street, Falls Church, VA")

		assert.Equal(t, "500 Nw Broad St, Falls Church, Va", got)
	})

	t.Run("should only match whole words", func(t *testing.T) {
		// "Streeter" must not become "Ster".
		got := address.Normalize("10 Streeter Court")

		assert.Equal(t, "10 Streeter Ct", got)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		inputs := []string{
			springfieldAddress,
			"500 Northwest Broad Street, Falls Church, VA",
			"1614 10th St S, Arlington, VA 22204",
			"",
		}

		for _, input := range inputs {
			once := address.Normalize(input)
			twice := address.Normalize(once)
			assert.Equal(t, once, twice, "input %q", input)
		}
	})

	t.Run("should return empty input unchanged", func(t *testing.T) {
		assert.Empty(t, address.Normalize(""))
	})
}

func TestRemoveUnit(t *testing.T) {
	t.Run("should strip apartment designator with token", func(t *testing.T) {
		got := address.RemoveUnit(springfieldAddress)

		assert.Equal(t, "123 Main Street, Springfield, VA 22150", got)
	})

	t.Run("should strip unit and suite markers case-insensitively", func(t *testing.T) {
		assert.Equal(t, "42 Oak Lane", address.RemoveUnit("42 Oak Lane unit 7"))
		assert.Equal(t, "42 Oak Lane", address.RemoveUnit("42 Oak Lane Ste B-2"))
	})

	t.Run("should drop trailing comma left by stripping", func(t *testing.T) {
		got := address.RemoveUnit("42 Oak Lane, Apt 9,")

		assert.Equal(t, "42 Oak Lane,", got)
	})

	t.Run("should leave addresses without units unchanged", func(t *testing.T) {
		got := address.RemoveUnit("42 Oak Lane, Springfield, VA")

		assert.Equal(t, "42 Oak Lane, Springfield, VA", got)
	})
}

func TestRemoveSecondary(t *testing.T) {
	assert.Equal(t, "123 Main Street Apt 4B", address.RemoveSecondary(springfieldAddress))
	assert.Equal(t, "42 Oak Lane", address.RemoveSecondary("42 Oak Lane"))
	assert.Empty(t, address.RemoveSecondary(""))
}

func TestStreetCityState(t *testing.T) {
	t.Run("should drop zip when pattern matches", func(t *testing.T) {
		got := address.StreetCityState(springfieldAddress)

		assert.Equal(t, "123 Main Street Apt 4B, Springfield, VA", got)
	})

	t.Run("should keep plus-four zips out of the result", func(t *testing.T) {
		got := address.StreetCityState("42 Oak Lane, Springfield, VA 22150-1234")

		assert.Equal(t, "42 Oak Lane, Springfield, VA", got)
	})

	t.Run("should return non-matching addresses unchanged", func(t *testing.T) {
		got := address.StreetCityState("42 Oak Lane")

		assert.Equal(t, "42 Oak Lane", got)
	})
}

func TestStreetZip(t *testing.T) {
	t.Run("should combine street with first zip", func(t *testing.T) {
		got := address.StreetZip(springfieldAddress)

		assert.Equal(t, "123 Main Street Apt 4B, 22150", got)
	})

	t.Run("should return address unchanged when zip is missing", func(t *testing.T) {
		got := address.StreetZip("42 Oak Lane, Springfield, VA")

		assert.Equal(t, "42 Oak Lane, Springfield, VA", got)
	})

	t.Run("should return address unchanged when no comma separates street", func(t *testing.T) {
		got := address.StreetZip("42 Oak Lane 22150")

		assert.Equal(t, "42 Oak Lane 22150", got)
	})
}

func TestVariants(t *testing.T) {
	t.Run("should produce all six kinds in fixed order", func(t *testing.T) {
		variants := address.Variants(springfieldAddress)

		require.Len(t, variants, 6)
		kinds := make([]address.VariantKind, 0, len(variants))
		for _, v := range variants {
			kinds = append(kinds, v.Kind)
		}
		assert.Equal(t, []address.VariantKind{
			address.VariantOriginal,
			address.VariantNormalized,
			address.VariantNoUnit,
			address.VariantNoSecondary,
			address.VariantStreetCityState,
			address.VariantStreetZip,
		}, kinds)
	})

	t.Run("should carry the original text as the first variant", func(t *testing.T) {
		variants := address.Variants(springfieldAddress)

		assert.Equal(t, springfieldAddress, variants[0].Value)
	})
}
