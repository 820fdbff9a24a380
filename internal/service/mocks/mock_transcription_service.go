package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"transcribe/internal/model"
	"transcribe/internal/service"
)

type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) Document(ctx context.Context, documentID string) (*service.DocumentView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentView), args.Error(1)
}

func (m *MockTranscriptionService) Page(ctx context.Context, documentID, pageID string) (*service.PageView, error) {
	args := m.Called(ctx, documentID, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PageView), args.Error(1)
}

func (m *MockTranscriptionService) RecalculateProgress(ctx context.Context, documentID string) (model.Progress, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(model.Progress), args.Error(1)
}

func (m *MockTranscriptionService) ExportDocument(ctx context.Context, documentID string) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}
