package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

func rawColorValue(t *testing.T, colors any) bson.RawValue {
	t.Helper()
	data, err := bson.Marshal(bson.M{"colors": colors})
	require.NoError(t, err)
	return bson.Raw(data).Lookup("colors")
}

func TestNormalizeColorJoin_Array(t *testing.T) {
	raw := rawColorValue(t, bson.A{
		bson.M{"name": "Black", "hex": "#000000", "selected_class": "ring-black"},
		bson.M{"name": "Beige", "hex": "#F5F5DC"},
	})

	variants, err := normalizeColorJoin(raw)

	require.NoError(t, err)
	assert.Equal(t, []domain.ColorVariant{
		{Name: "Black", Hex: "#000000", SelectedClass: "ring-black"},
		{Name: "Beige", Hex: "#F5F5DC"},
	}, variants)
}

func TestNormalizeColorJoin_SingleDocument(t *testing.T) {
	raw := rawColorValue(t, bson.M{"name": "White", "hex": "#FFFFFF"})

	variants, err := normalizeColorJoin(raw)

	require.NoError(t, err)
	assert.Equal(t, []domain.ColorVariant{{Name: "White", Hex: "#FFFFFF"}}, variants)
}

func TestNormalizeColorJoin_NullAndMissing(t *testing.T) {
	variants, err := normalizeColorJoin(rawColorValue(t, nil))
	require.NoError(t, err)
	assert.Nil(t, variants)

	variants, err = normalizeColorJoin(bson.RawValue{})
	require.NoError(t, err)
	assert.Nil(t, variants)
}

func TestNormalizeColorJoin_UnexpectedType(t *testing.T) {
	_, err := normalizeColorJoin(rawColorValue(t, "just a string"))
	assert.Error(t, err)
}
