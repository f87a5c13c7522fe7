package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// fakeGenerator returns scripted responses in order and counts calls.
type fakeGenerator struct {
	responses []string
	err       error
	calls     int
	lastParts []Part
}

func (f *fakeGenerator) Generate(_ context.Context, parts []Part) (string, error) {
	f.lastParts = parts
	idx := f.calls
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func testImage() wines.Image {
	return wines.Image{Base64: "aGVsbG8=", Ext: "jpeg"}
}

func TestExtractWinesDirectArray(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`[{"name":"Comenda Grande","type":"red","year":"2021","price":"11.49"}]`,
	}}
	client := NewClient(gen)

	guesses, err := client.ExtractWines(context.Background(), testImage())
	require.NoError(t, err)
	require.Len(t, guesses, 1)
	assert.Equal(t, "Comenda Grande", guesses[0].Name)
	assert.Equal(t, "red", guesses[0].Type)
	assert.Equal(t, 1, gen.calls)
}

func TestExtractWinesWrappedObject(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"wines":[{"name":"Esporao","type":null,"year":null,"price":null}]}`,
	}}
	client := NewClient(gen)

	guesses, err := client.ExtractWines(context.Background(), testImage())
	require.NoError(t, err)
	require.Len(t, guesses, 1)
	assert.Equal(t, "Esporao", guesses[0].Name)
	assert.Empty(t, guesses[0].Year, "null fields decode to empty strings")
}

func TestExtractWinesFencedJSON(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		"```json\n[{\"name\":\"Cabriz\"}]\n```",
	}}
	client := NewClient(gen)

	guesses, err := client.ExtractWines(context.Background(), testImage())
	require.NoError(t, err)
	require.Len(t, guesses, 1)
	assert.Equal(t, "Cabriz", guesses[0].Name)
}

func TestExtractWinesRetriesOnceOnMalformedJSON(t *testing.T) {
	t.Run("second attempt succeeds", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{
			`here are your wines: Comenda Grande`,
			`[{"name":"Comenda Grande"}]`,
		}}
		client := NewClient(gen)

		guesses, err := client.ExtractWines(context.Background(), testImage())
		require.NoError(t, err)
		assert.Len(t, guesses, 1)
		assert.Equal(t, 2, gen.calls)
	})

	t.Run("persistently malformed propagates parse error", func(t *testing.T) {
		gen := &fakeGenerator{responses: []string{`not json`}}
		client := NewClient(gen)

		_, err := client.ExtractWines(context.Background(), testImage())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsUpstreamParse(err))
		assert.Equal(t, 2, gen.calls, "retry is bounded to one re-ask")
	})
}

func TestExtractWinesInvalidFormat(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[]`}}
	client := NewClient(gen)

	_, err := client.ExtractWines(context.Background(), wines.Image{Base64: "aGVsbG8=", Ext: "gif"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsInvalidFormat(err))
	assert.Zero(t, gen.calls, "no model call for rejected formats")
}

func TestCompareBottlesArray(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`[{"name":"Conventual Reserva","fileName":"Conventual Reserva","isPresent":true},
		  {"name":"Dona Ermelinda","fileName":"Dona Ermelinda","isPresent":false}]`,
	}}
	client := NewClient(gen)

	verdicts, err := client.CompareBottles(context.Background(), testImage(), []wines.LabeledImage{
		{Name: "Conventual Reserva", Base64: "aa==", Ext: "jpeg"},
		{Name: "Dona Ermelinda", Base64: "bb==", Ext: "png"},
	})
	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	assert.True(t, verdicts[0].IsPresent)
	assert.False(t, verdicts[1].IsPresent)

	// One joint call: original photo, prompt, and both candidates.
	require.Len(t, gen.lastParts, 4)
	assert.NotNil(t, gen.lastParts[0].Image)
	assert.Contains(t, gen.lastParts[1].Text, "Conventual Reserva")
	assert.Contains(t, gen.lastParts[1].Text, "Dona Ermelinda")
}

func TestCompareBottlesSingleObjectNormalized(t *testing.T) {
	gen := &fakeGenerator{responses: []string{
		`{"name":"Vila Santa","fileName":"Vila Santa","isPresent":true}`,
	}}
	client := NewClient(gen)

	verdicts, err := client.CompareBottles(context.Background(), testImage(), []wines.LabeledImage{
		{Name: "Vila Santa", Base64: "aa==", Ext: "jpeg"},
	})
	require.NoError(t, err)
	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].IsPresent)
}

func TestCompareBottlesMalformedResponse(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`I could not decide`}}
	client := NewClient(gen)

	_, err := client.CompareBottles(context.Background(), testImage(), []wines.LabeledImage{
		{Name: "Vila Santa", Base64: "aa==", Ext: "jpeg"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsUpstreamParse(err))
}

func TestCompareBottlesNoCandidates(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[]`}}
	client := NewClient(gen)

	verdicts, err := client.CompareBottles(context.Background(), testImage(), nil)
	require.NoError(t, err)
	assert.Empty(t, verdicts)
	assert.Zero(t, gen.calls)
}
