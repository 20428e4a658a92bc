package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateUnmarshalNormalizes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"number", `33.3`, "33.30000000"},
		{"string", `"33.3"`, "33.30000000"},
		{"full precision", `44.12345678`, "44.12345678"},
		{"excess precision rounds", `"44.123456789"`, "44.12345679"},
		{"negative", `-7.5`, "-7.50000000"},
		{"integer", `36`, "36.00000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Coordinate
			require.NoError(t, json.Unmarshal([]byte(tc.input), &c))
			assert.Equal(t, tc.want, c.String())
		})
	}
}

func TestCoordinateUnmarshalRejectsGarbage(t *testing.T) {
	var c Coordinate
	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &c))
}

func TestCoordinateUnmarshalNull(t *testing.T) {
	var c Coordinate
	require.NoError(t, json.Unmarshal([]byte(`null`), &c))
	assert.Equal(t, "", c.String())
}

func TestCoordinateMarshal(t *testing.T) {
	c, err := NewCoordinate("33.3")
	require.NoError(t, err)

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"33.30000000"`, string(out))

	empty := Coordinate("")
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
