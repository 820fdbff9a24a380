package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe/internal/model"
	"transcribe/internal/testsupport"
)

func TestItemRepository(t *testing.T) {
	env := testsupport.NewEnv(t)
	ctx := context.Background()
	id := env.AddItem(t, "")

	it, err := env.Store.Items.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, it.ID)
	assert.False(t, it.CreatedAt.IsZero())

	assert.NoError(t, env.Store.Items.Touch(ctx, id))

	_, err = env.Store.Items.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, env.Store.Items.Touch(ctx, "missing"), sql.ErrNoRows)
}

func TestFileRepository_ListByItemOrder(t *testing.T) {
	env := testsupport.NewEnv(t)
	ctx := context.Background()
	item := env.AddItem(t, "")

	env.AddFile(t, item, "f3", 3, "c.jpg")
	env.AddFile(t, item, "f1", 1, "a.jpg")
	env.AddFile(t, item, "f2b", 2, "b2.jpg")
	env.AddFile(t, item, "f2a", 2, "b1.jpg")

	files, err := env.Store.Files.ListByItem(ctx, item)
	require.NoError(t, err)

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"f1", "f2a", "f2b", "f3"}, ids)

	assert.Equal(t, "b1.jpg", files[1].OriginalFilename)
	assert.Equal(t, item, files[1].ItemID)
	assert.NoError(t, env.Store.Files.Touch(ctx, "f2a"))

	empty, err := env.Store.Files.ListByItem(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestElementRepository_SeededElements(t *testing.T) {
	env := testsupport.NewEnv(t)
	ctx := context.Background()
	b := model.DefaultFieldBindings()

	for _, ref := range []model.FieldRef{b.Title, b.Transcription, b.Status, b.PercentCompleted, b.PercentNeedsReview, b.SortWeight} {
		el, err := env.Store.Elements.FindByName(ctx, ref.Set, ref.Name)
		require.NoError(t, err, ref.String())
		assert.Equal(t, ref.Name, el.Name)
		assert.Equal(t, ref.Set, el.SetName)
	}

	_, err := env.Store.Elements.FindByName(ctx, "Dublin Core", "Transcription")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestElementTextRepository(t *testing.T) {
	env := testsupport.NewEnv(t)
	ctx := context.Background()
	item := env.AddItem(t, "")
	rec := model.ItemRecord(item)

	el, err := env.Store.Elements.FindByName(ctx, model.WorkflowSet, "Transcription")
	require.NoError(t, err)

	_, err = env.Store.ElementTexts.Add(ctx, rec, el.ID, "first", false)
	require.NoError(t, err)
	added, err := env.Store.ElementTexts.Add(ctx, rec, el.ID, "<p>second</p>", true)
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	texts, err := env.Store.ElementTexts.List(ctx, rec, el.ID)
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "first", texts[0].Text)
	assert.False(t, texts[0].HTML)
	assert.True(t, texts[1].HTML)
	assert.Equal(t, model.RecordItem, texts[1].RecordType)

	other, err := env.Store.ElementTexts.List(ctx, model.FileRecord(item), el.ID)
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, env.Store.ElementTexts.DeleteByElement(ctx, rec, el.ID))
	texts, err = env.Store.ElementTexts.List(ctx, rec, el.ID)
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestOptionRepository(t *testing.T) {
	env := testsupport.NewEnv(t)
	ctx := context.Background()

	_, ok, err := env.Store.Options.Get(ctx, model.ImportTypeOption)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, env.Store.Options.Set(ctx, model.ImportTypeOption, "plain"))
	require.NoError(t, env.Store.Options.Set(ctx, model.ImportTypeOption, "html"))

	v, ok, err := env.Store.Options.Get(ctx, model.ImportTypeOption)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "html", v)
}
