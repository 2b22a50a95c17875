package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretJSONPayload(t *testing.T) {
	c := Interpret(`{"article":"A-100","name":"Дрель","price":"1999"}`)

	assert.Equal(t, "A-100", c.Article)
	assert.Equal(t, "Дрель", c.Name)
	assert.Equal(t, "1999", c.Price)
	assert.Equal(t, `{"article":"A-100","name":"Дрель","price":"1999"}`, c.QRContent)
	require.NotNil(t, c.Fields)
}

func TestInterpretJSONPreservesArbitraryKeys(t *testing.T) {
	c := Interpret(`{"article":"A-1","color":"red","weight":2.5}`)

	assert.Equal(t, "A-1", c.Article)
	assert.Equal(t, "red", c.Fields["color"])
	assert.Equal(t, 2.5, c.Fields["weight"])
}

func TestInterpretJSONNumericPrice(t *testing.T) {
	c := Interpret(`{"article":"A-1","price":99}`)
	assert.Equal(t, "99", c.Price)
}

func TestInterpretJSONMissingPriceDefaultsToZero(t *testing.T) {
	c := Interpret(`{"article":"A-1"}`)
	assert.Equal(t, "0", c.Price)
}

func TestInterpretOpaquePayload(t *testing.T) {
	c := Interpret("SKU-42-XYZ")

	assert.Equal(t, "SKU-42-XYZ", c.Article)
	assert.Equal(t, "Товар (QR: SKU-42-XYZ)", c.Name)
	assert.Equal(t, "0", c.Price)
	assert.Equal(t, "SKU-42-XYZ", c.QRContent)
	assert.Nil(t, c.Fields)
}

func TestInterpretJSONArrayIsOpaque(t *testing.T) {
	// Only JSON objects are structured payloads
	c := Interpret(`[1,2,3]`)
	assert.Equal(t, `[1,2,3]`, c.Article)
	assert.Equal(t, `[1,2,3]`, c.QRContent)
}

func TestInterpretMalformedJSONIsOpaque(t *testing.T) {
	c := Interpret(`{"article": `)
	assert.Equal(t, `{"article": `, c.Article)
	assert.Equal(t, "0", c.Price)
}
