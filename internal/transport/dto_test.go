package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/validation"
)

func TestDecodeCredentials(t *testing.T) {
	t.Parallel()

	creds, err := DecodeCredentials([]byte(`{"username":"bob","password":"pw"}`))
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "bob", Password: "pw"}, creds)

	bad := []string{
		``,
		`[]`,
		`{"username":"bob"}`,
		`{"username":"bob","password":"pw","extra":1}`,
		`{"username":"","password":"pw"}`,
		`{"username":"bob","password":5}`,
	}
	for _, body := range bad {
		_, err := DecodeCredentials([]byte(body))
		assert.ErrorIs(t, err, validation.ErrInvalid, body)
	}
}

func TestDecodePermissionChange(t *testing.T) {
	t.Parallel()

	req, err := DecodePermissionChange([]byte(`{"username":"bob","permission":"M"}`))
	require.NoError(t, err)
	assert.Equal(t, models.PermissionManager, req.Permission)

	for _, body := range []string{
		`{"username":"bob","permission":"A"}`,
		`{"username":"bob","permission":"X"}`,
		`{"username":"bob"}`,
		`{"username":1,"permission":"W"}`,
	} {
		_, err := DecodePermissionChange([]byte(body))
		assert.ErrorIs(t, err, validation.ErrInvalid, body)
	}
}

func TestDecodeCreateProduct(t *testing.T) {
	t.Parallel()

	req, err := DecodeCreateProduct([]byte(`{"name":"Mouse","category":"mug","description":"d","price":11.0,"stock":3,"unknown":true}`))
	require.NoError(t, err)
	assert.Equal(t, "Mouse", req.Name)
	assert.Equal(t, 11.0, req.Price)
	assert.Nil(t, req.Image)

	req, err = DecodeCreateProduct([]byte(`{"name":"Mouse","category":"MUG","description":"d","price":0,"stock":0,"image":"a.png"}`))
	require.NoError(t, err)
	require.NotNil(t, req.Image)
	assert.Equal(t, "a.png", *req.Image)

	bad := map[string]string{
		"id given":         `{"id":"x","name":"a","category":"mug","description":"d","price":1,"stock":1}`,
		"fractional price": `{"name":"a","category":"mug","description":"d","price":25.5,"stock":1}`,
		"price too high":   `{"name":"a","category":"mug","description":"d","price":1001,"stock":1}`,
		"negative stock":   `{"name":"a","category":"mug","description":"d","price":1,"stock":-1}`,
		"bad category":     `{"name":"a","category":"toaster","description":"d","price":1,"stock":1}`,
		"empty name":       `{"name":"","category":"mug","description":"d","price":1,"stock":1}`,
		"price as string":  `{"name":"a","category":"mug","description":"d","price":"1","stock":1}`,
		"image not string": `{"name":"a","category":"mug","description":"d","price":1,"stock":1,"image":7}`,
		"missing stock":    `{"name":"a","category":"mug","description":"d","price":1}`,
	}
	for name, body := range bad {
		_, err := DecodeCreateProduct([]byte(body))
		assert.ErrorIs(t, err, validation.ErrInvalid, name)
	}
}

func TestDecodePatchProduct(t *testing.T) {
	t.Parallel()

	req, err := DecodePatchProduct([]byte(`{"price":5000.5,"name":"New"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"price": 5000.5, "name": "New"}, req.Columns())

	bad := map[string]string{
		"empty object":   `{}`,
		"unknown key":    `{"name":"a","color":"red"}`,
		"negative price": `{"price":-1}`,
		"bad category":   `{"category":"toaster"}`,
		"empty name":     `{"name":""}`,
		"not an object":  `"name"`,
	}
	for name, body := range bad {
		_, err := DecodePatchProduct([]byte(body))
		assert.ErrorIs(t, err, validation.ErrInvalid, name)
	}
}

func TestRequireEmptyBody(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RequireEmptyBody(nil))
	assert.NoError(t, RequireEmptyBody([]byte("  \n")))
	assert.ErrorIs(t, RequireEmptyBody([]byte(`{}`)), validation.ErrInvalid)
}
