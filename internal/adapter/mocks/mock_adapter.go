package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"transcribe/internal/model"
)

type MockAdapter struct {
	mock.Mock
}

func (m *MockAdapter) DocumentExists(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdapter) DocumentPageExists(ctx context.Context, documentID, pageID string) (bool, error) {
	args := m.Called(ctx, documentID, pageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdapter) DocumentPages(ctx context.Context, documentID string) ([]model.PageRef, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PageRef), args.Error(1)
}

func (m *MockAdapter) DocumentFirstPageID(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) DocumentTitle(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) DocumentPageName(ctx context.Context, documentID, pageID string) (string, error) {
	args := m.Called(ctx, documentID, pageID)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) DocumentPageFileURL(ctx context.Context, documentID, pageID string) (string, error) {
	args := m.Called(ctx, documentID, pageID)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) DocumentPageTranscription(ctx context.Context, pageID string) (*string, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockAdapter) DocumentTranscription(ctx context.Context, documentID string) (*string, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockAdapter) ImportDocumentPageTranscription(ctx context.Context, documentID, pageID, text string) error {
	args := m.Called(ctx, documentID, pageID, text)
	return args.Error(0)
}

func (m *MockAdapter) ImportDocumentTranscription(ctx context.Context, documentID, text string) error {
	args := m.Called(ctx, documentID, text)
	return args.Error(0)
}

func (m *MockAdapter) DocumentPageTranscriptionStatus(ctx context.Context, pageID string) (string, error) {
	args := m.Called(ctx, pageID)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) ImportPageTranscriptionStatus(ctx context.Context, documentID, pageID, status string) error {
	args := m.Called(ctx, documentID, pageID, status)
	return args.Error(0)
}

func (m *MockAdapter) ImportDocumentTranscriptionProgress(ctx context.Context, documentID, completed, needsReview string) error {
	args := m.Called(ctx, documentID, completed, needsReview)
	return args.Error(0)
}

func (m *MockAdapter) ImportItemSortWeight(ctx context.Context, documentID string, weight int) error {
	args := m.Called(ctx, documentID, weight)
	return args.Error(0)
}

func (m *MockAdapter) DocumentTranscriptionIsImported(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdapter) DocumentPageTranscriptionIsImported(ctx context.Context, documentID, pageID string) (bool, error) {
	args := m.Called(ctx, documentID, pageID)
	return args.Bool(0), args.Error(1)
}
