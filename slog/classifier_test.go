package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/ricette"
	"github.com/fwojciec/ricette/mock"
	ricetteslog "github.com/fwojciec/ricette/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.IngredientClassifier{
		ClassifyFn: func(ctx context.Context, names []string) ([]ricette.ClassifiedIngredient, error) {
			return []ricette.ClassifiedIngredient{{Name: "uova", Category: "Uova"}}, nil
		},
	}

	classifier := ricetteslog.NewLoggingClassifier(inner, logger)
	out, err := classifier.Classify(context.Background(), []string{"uova", "sale"})

	require.NoError(t, err)
	assert.Len(t, out, 1)
	output := buf.String()
	assert.Contains(t, output, "classify")
	assert.Contains(t, output, "names=2")
	assert.Contains(t, output, "count=1")
}
