package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"username":"a","password":"b"}`},
		{name: "empty object", body: `{}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "whitespace", body: "  \n", wantErr: true},
		{name: "not json", body: `this is not a json`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
		{name: "array", body: `[1,2]`, wantErr: true},
		{name: "string", body: `"hello"`, wantErr: true},
		{name: "number", body: `42`, wantErr: true},
		{name: "truncated", body: `{"a":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ParseObject([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				assert.Nil(t, obj)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, obj)
		})
	}
}

func TestInteger(t *testing.T) {
	obj, err := ParseObject([]byte(`{"a":25,"b":11.0,"c":25.5,"d":"25","e":-3,"f":null}`))
	require.NoError(t, err)

	v, ok := Integer(obj["a"])
	assert.True(t, ok)
	assert.EqualValues(t, 25, v)

	v, ok = Integer(obj["b"])
	assert.True(t, ok)
	assert.EqualValues(t, 11, v)

	_, ok = Integer(obj["c"])
	assert.False(t, ok)

	_, ok = Integer(obj["d"])
	assert.False(t, ok)

	v, ok = Integer(obj["e"])
	assert.True(t, ok)
	assert.EqualValues(t, -3, v)

	_, ok = Integer(obj["f"])
	assert.False(t, ok)

	_, ok = Integer(obj["missing"])
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	_, ok := NonEmptyString("")
	assert.False(t, ok)
	_, ok = NonEmptyString(5.0)
	assert.False(t, ok)
	s, ok := NonEmptyString("frog")
	assert.True(t, ok)
	assert.Equal(t, "frog", s)

	s, ok = String("")
	assert.True(t, ok)
	assert.Equal(t, "", s)
	_, ok = String(nil)
	assert.False(t, ok)
}

func TestKeySets(t *testing.T) {
	obj := map[string]any{"username": "a", "password": "b"}

	assert.True(t, HasExactKeys(obj, "username", "password"))
	assert.False(t, HasExactKeys(obj, "username"))
	assert.False(t, HasExactKeys(obj, "username", "permission"))
	assert.False(t, HasExactKeys(map[string]any{"username": "a", "password": "b", "x": 1}, "username", "password"))

	assert.True(t, OnlyKeys(obj, []string{"username", "password", "other"}))
	assert.False(t, OnlyKeys(obj, []string{"username"}))
	assert.True(t, OnlyKeys(map[string]any{}, nil))
}
