package generator

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"methods_book/book"
)

// countingClient wraps replies per prompt kind and counts Complete calls.
type countingClient struct {
	MockClient
	completeCalls int
	reply         string
	err           error
}

func (c *countingClient) Complete(ctx context.Context, model, prompt string, maxTokens int64) (string, error) {
	c.completeCalls++
	if c.err != nil {
		return "", c.err
	}
	if c.reply != "" {
		return c.reply, nil
	}
	return c.MockClient.Complete(ctx, model, prompt, maxTokens)
}

var plannerThemes = []book.ThemeSpec{
	{Filename: "demo.tex", ChapterTitle: "Demo Chapter", Subsections: []string{"Only Section"}},
}

func TestGeneratePlansWritesCache(t *testing.T) {
	root := t.TempDir()
	client := &countingClient{}
	p := &Planner{Client: client, Model: "test-model", Logger: log.Default()}

	plans, err := p.GeneratePlans(context.Background(), root, plannerThemes)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, 1, client.completeCalls)

	key := book.SectionKey{Chapter: "Demo Chapter", Section: "Only Section"}
	require.NotNil(t, plans[key])
	assert.Equal(t, "Mock Section", plans[key].SectionTitle)

	// Plan lands on disk under the slugged name.
	path := filepath.Join(root, "plans", "demo-chapter-only-section.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored book.SectionPlan
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, plans[key].SectionTitle, stored.SectionTitle)
}

func TestGeneratePlansUsesCacheWithoutClientCall(t *testing.T) {
	root := t.TempDir()
	plansDir := filepath.Join(root, "plans")
	require.NoError(t, os.MkdirAll(plansDir, 0o755))
	cached := book.SectionPlan{SectionTitle: "Cached", Narrative: "from disk"}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(plansDir, "demo-chapter-only-section.json"), data, 0o644))

	client := &countingClient{}
	p := &Planner{Client: client, Model: "test-model", Logger: log.Default()}

	plans, err := p.GeneratePlans(context.Background(), root, plannerThemes)
	require.NoError(t, err)
	assert.Equal(t, 0, client.completeCalls)
	assert.Equal(t, "Cached", plans[book.SectionKey{Chapter: "Demo Chapter", Section: "Only Section"}].SectionTitle)
}

func TestGeneratePlansSkipsInvalidJSON(t *testing.T) {
	root := t.TempDir()
	client := &countingClient{reply: "I cannot answer in JSON, sorry."}
	p := &Planner{Client: client, Model: "test-model", Logger: log.Default()}

	plans, err := p.GeneratePlans(context.Background(), root, plannerThemes)
	require.NoError(t, err)
	assert.Empty(t, plans)

	// Nothing cached for the failed section.
	_, statErr := os.Stat(filepath.Join(root, "plans", "demo-chapter-only-section.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGeneratePlansNilClientSkips(t *testing.T) {
	root := t.TempDir()
	p := &Planner{Model: "test-model", Logger: log.Default()}

	plans, err := p.GeneratePlans(context.Background(), root, plannerThemes)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
