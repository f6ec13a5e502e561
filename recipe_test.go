package ricette_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/fwojciec/ricette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipe_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		r := &ricette.Recipe{Name: "carbonara", SourceURL: "https://example.com/carbonara"}
		assert.NoError(t, r.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		r := &ricette.Recipe{SourceURL: "https://example.com/carbonara"}
		assert.Equal(t, ricette.EINVALID, ricette.ErrorCode(r.Validate()))
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()

		r := &ricette.Recipe{Name: "carbonara"}
		assert.Equal(t, ricette.EINVALID, ricette.ErrorCode(r.Validate()))
	})
}

func TestSteps_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes steps keyed by position", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(ricette.Steps{"Bollire l'acqua.", "Scolare la \"pasta\"."})

		require.NoError(t, err)
		assert.JSONEq(t, `{"0":"Bollire l'acqua.","1":"Scolare la \"pasta\"."}`, string(b))
	})

	t.Run("empty steps encode as empty object", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(ricette.Steps{})

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	})

	t.Run("keeps page order beyond ten steps", func(t *testing.T) {
		t.Parallel()

		var steps ricette.Steps
		for i := range 12 {
			steps = append(steps, fmt.Sprintf("step %d", i))
		}

		b, err := json.Marshal(steps)
		require.NoError(t, err)

		var decoded ricette.Steps
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, steps, decoded)
	})
}

func TestSteps_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("null decodes to nil", func(t *testing.T) {
		t.Parallel()

		var steps ricette.Steps
		require.NoError(t, json.Unmarshal([]byte(`null`), &steps))
		assert.Nil(t, steps)
	})

	t.Run("rejects non-numeric keys", func(t *testing.T) {
		t.Parallel()

		var steps ricette.Steps
		assert.Error(t, json.Unmarshal([]byte(`{"first":"x"}`), &steps))
	})
}

func TestRecipe_JSONFieldNames(t *testing.T) {
	t.Parallel()

	servings := "4 persone"
	r := ricette.Recipe{
		Name:      "carbonara",
		Servings:  &servings,
		Steps:     ricette.Steps{"Mescolare."},
		SourceURL: "https://example.com/carbonara",
	}

	b, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))

	for _, key := range []string{"recipe", "ingredients", "category", "difficulty", "dosage_for", "price", "time", "steps", "link"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `"4 persone"`, string(raw["dosage_for"]))
	assert.JSONEq(t, `{"0":"Mescolare."}`, string(raw["steps"]))
}
