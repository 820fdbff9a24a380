package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"transcribe/internal/adapter"
	adapterMocks "transcribe/internal/adapter/mocks"
	"transcribe/internal/model"
)

func strPtr(s string) *string { return &s }

func TestTranscriptionService_Document(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *adapterMocks.MockAdapter)
		want       *DocumentView
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "d1",
			setupMocks: func(m *adapterMocks.MockAdapter) {
				m.On("DocumentExists", ctx, "d1").Return(true, nil)
				m.On("DocumentTitle", ctx, "d1").Return("Diary", nil)
				m.On("DocumentFirstPageID", ctx, "d1").Return("p1", nil)
				m.On("DocumentTranscription", ctx, "d1").Return(strPtr("text"), nil)
				m.On("DocumentTranscriptionIsImported", ctx, "d1").Return(true, nil)
			},
			want: &DocumentView{ID: "d1", Exists: true, Title: "Diary", FirstPageID: "p1", Transcription: strPtr("text"), TranscriptionImported: true},
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(m *adapterMocks.MockAdapter) {},
			wantErr:    adapter.ErrIDRequired,
		},
		{
			name: "invalid document",
			id:   "d2",
			setupMocks: func(m *adapterMocks.MockAdapter) {
				m.On("DocumentExists", ctx, "d2").Return(false, nil)
			},
			wantErr: adapter.ErrDocumentNotFound,
		},
		{
			name: "field resolution failure",
			id:   "d3",
			setupMocks: func(m *adapterMocks.MockAdapter) {
				m.On("DocumentExists", ctx, "d3").Return(true, nil)
				m.On("DocumentTitle", ctx, "d3").Return("", adapter.ErrFieldNotFound)
			},
			wantErr: adapter.ErrFieldNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(adapterMocks.MockAdapter)
			tt.setupMocks(m)
			s := NewTranscriptionService(m)

			got, err := s.Document(ctx, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestTranscriptionService_Page(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPageExists", ctx, "d1", "p1").Return(true, nil)
		m.On("DocumentPageName", ctx, "d1", "p1").Return("Page 1", nil)
		m.On("DocumentPageFileURL", ctx, "d1", "p1").Return("https://cdn/p1.jpg", nil)
		m.On("DocumentPageTranscription", ctx, "p1").Return(nil, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p1").Return(model.StatusNotStarted, nil)
		m.On("DocumentPageTranscriptionIsImported", ctx, "d1", "p1").Return(false, nil)

		got, err := NewTranscriptionService(m).Page(ctx, "d1", "p1")
		require.NoError(t, err)
		assert.Equal(t, &PageView{ID: "p1", Name: "Page 1", FileURL: "https://cdn/p1.jpg", Status: model.StatusNotStarted}, got)
	})

	t.Run("page not in document", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPageExists", ctx, "d1", "p9").Return(false, nil)

		_, err := NewTranscriptionService(m).Page(ctx, "d1", "p9")
		assert.ErrorIs(t, err, adapter.ErrPageNotFound)
	})
}

func TestTranscriptionService_RecalculateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("floors percentages", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPages", ctx, "d1").Return([]model.PageRef{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p1").Return(model.StatusCompleted, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p2").Return(model.StatusNeedsReview, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p3").Return(model.StatusNotStarted, nil)
		m.On("ImportDocumentTranscriptionProgress", ctx, "d1", "33", "33").Return(nil)

		got, err := NewTranscriptionService(m).RecalculateProgress(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, model.Progress{Completed: "33", NeedsReview: "33"}, got)
		m.AssertExpectations(t)
	})

	t.Run("nothing done", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPages", ctx, "d1").Return([]model.PageRef{{ID: "p1"}}, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p1").Return(model.StatusInProgress, nil)
		m.On("ImportDocumentTranscriptionProgress", ctx, "d1", "0", "0").Return(nil)

		got, err := NewTranscriptionService(m).RecalculateProgress(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, model.Progress{Completed: "0", NeedsReview: "0"}, got)
	})

	t.Run("import failure", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPages", ctx, "d1").Return([]model.PageRef{{ID: "p1"}}, nil)
		m.On("DocumentPageTranscriptionStatus", ctx, "p1").Return(model.StatusCompleted, nil)
		m.On("ImportDocumentTranscriptionProgress", ctx, "d1", "100", "0").Return(errors.New("db down"))

		_, err := NewTranscriptionService(m).RecalculateProgress(ctx, "d1")
		assert.EqualError(t, err, "import progress: db down")
	})

	t.Run("invalid document", func(t *testing.T) {
		m := new(adapterMocks.MockAdapter)
		m.On("DocumentPages", ctx, "d1").Return(nil, adapter.ErrDocumentNotFound)

		_, err := NewTranscriptionService(m).RecalculateProgress(ctx, "d1")
		assert.ErrorIs(t, err, adapter.ErrDocumentNotFound)
		m.AssertNotCalled(t, "ImportDocumentTranscriptionProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTranscriptionService_ExportDocument(t *testing.T) {
	ctx := context.Background()
	m := new(adapterMocks.MockAdapter)
	m.On("DocumentPages", ctx, "d1").Return([]model.PageRef{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, nil)
	m.On("DocumentPageTranscription", ctx, "p1").Return(strPtr("Dear Sir,"), nil)
	m.On("DocumentPageTranscription", ctx, "p2").Return(nil, nil)
	m.On("DocumentPageTranscription", ctx, "p3").Return(strPtr("Yours truly"), nil)
	m.On("ImportDocumentTranscription", ctx, "d1", "Dear Sir,\n\nYours truly").Return(nil)

	got, err := NewTranscriptionService(m).ExportDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Dear Sir,\n\nYours truly", got)
	m.AssertExpectations(t)
}
