package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// NewStore bundles fresh mocks into a repository.Store and returns them for expectations.
func NewStore() (repository.Store, *MockItemRepository, *MockFileRepository, *MockElementRepository, *MockElementTextRepository, *MockOptionRepository) {
	items := &MockItemRepository{}
	files := &MockFileRepository{}
	elements := &MockElementRepository{}
	texts := &MockElementTextRepository{}
	options := &MockOptionRepository{}
	return repository.Store{
		Items:        items,
		Files:        files,
		Elements:     elements,
		ElementTexts: texts,
		Options:      options,
	}, items, files, elements, texts, options
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) ListByItem(ctx context.Context, itemID string) ([]model.File, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileRepository) Touch(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockElementRepository struct {
	mock.Mock
}

func (m *MockElementRepository) FindByName(ctx context.Context, setName, name string) (*model.Element, error) {
	args := m.Called(ctx, setName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Element), args.Error(1)
}

type MockElementTextRepository struct {
	mock.Mock
}

func (m *MockElementTextRepository) List(ctx context.Context, rec model.RecordRef, elementID int64) ([]model.ElementText, error) {
	args := m.Called(ctx, rec, elementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ElementText), args.Error(1)
}

func (m *MockElementTextRepository) DeleteByElement(ctx context.Context, rec model.RecordRef, elementID int64) error {
	args := m.Called(ctx, rec, elementID)
	return args.Error(0)
}

func (m *MockElementTextRepository) Add(ctx context.Context, rec model.RecordRef, elementID int64, text string, html bool) (*model.ElementText, error) {
	args := m.Called(ctx, rec, elementID, text, html)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ElementText), args.Error(1)
}

type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) Get(ctx context.Context, name string) (string, bool, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockOptionRepository) Set(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}
