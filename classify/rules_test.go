package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/radiolex/lexicon"
)

func TestRuleClassifier(t *testing.T) {
	c, err := NewRuleClassifier(lexicon.Default())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"Координаты цели квадрат 45, пеленг 270", "coordinates"},
		{"У нас трехсотый, нужен медик и эвакуация", "casualties"},
		{"Вижу два танка и бмп на опушке", "equipment"},
		{"Нужен подвоз, патроны на исходе", "supply"},
		{"Смени частоту, сильные помехи в эфире", "communication"},
		{"Погода ясная", "general"},
		{"", "general"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := c.Classify(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleClassifierPrefixAndTies(t *testing.T) {
	vocab, err := lexicon.New(lexicon.Definition{
		Categories: []lexicon.Category{
			{Name: "first", Markers: []string{"альфа"}},
			{Name: "second", Markers: []string{"бета", "ранен"}},
		},
		DefaultCategory: "none",
	})
	require.NoError(t, err)
	c, err := NewRuleClassifier(vocab)
	require.NoError(t, err)
	ctx := context.Background()

	got, err := c.Classify(ctx, "альфа бета")
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = c.Classify(ctx, "альфа раненый бета")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = c.Classify(ctx, "гамма")
	require.NoError(t, err)
	assert.Equal(t, "none", got)
}

func TestRuleClassifierErrors(t *testing.T) {
	_, err := NewRuleClassifier(nil)
	assert.ErrorIs(t, err, ErrVocabularyRequired)

	c, err := NewRuleClassifier(lexicon.Default())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Classify(ctx, "пеленг")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	var c Classifier = Func(func(ctx context.Context, text string) (string, error) {
		return "x:" + text, nil
	})
	got, err := c.Classify(context.Background(), "y")
	require.NoError(t, err)
	assert.Equal(t, "x:y", got)
}
