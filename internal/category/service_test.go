// AngelaMos | 2026
// service_test.go

package category

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/core"
)

type fakeRepo struct {
	categories map[string]*Category
	counts     map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: make(map[string]*Category),
		counts:     make(map[string]int),
	}
}

func (f *fakeRepo) List(_ context.Context) ([]CategoryWithCount, error) {
	var out []CategoryWithCount
	for _, c := range f.categories {
		out = append(out, CategoryWithCount{
			Category:    *c,
			ReportCount: f.counts[c.Name],
		})
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range f.categories {
		if existing.Name == c.Name {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
	}
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeRepo) Update(_ context.Context, c *Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	copied := *c
	f.categories[c.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}
	delete(f.categories, id)
	return nil
}

func TestCreateCarriesDescription(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{
		Name:        "Pothole",
		Description: "Road potholes and damage",
		Icon:        "road",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Road potholes and damage", created.Description)

	stored := repo.categories[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "Road potholes and damage", stored.Description)
}

func TestCreateDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateCategoryRequest{
		Name: "Pothole",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCategoryRequest{
		Name: "Pothole",
	})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdateReplacesDescription(t *testing.T) {
	repo := newFakeRepo()
	repo.categories["cat-1"] = &Category{
		ID:          "cat-1",
		Name:        "Garbage",
		Description: "Garbage and waste management issues",
		Icon:        "trash",
	}
	svc := NewService(repo)

	updated, err := svc.Update(context.Background(), "cat-1", UpdateCategoryRequest{
		Name:        "Waste",
		Description: "Overflowing bins and missed collections",
		Icon:        "trash",
	})
	require.NoError(t, err)

	assert.Equal(t, "Waste", updated.Name)
	assert.Equal(t, "Overflowing bins and missed collections", updated.Description)
	assert.Equal(
		t,
		"Overflowing bins and missed collections",
		repo.categories["cat-1"].Description,
	)
}

func TestListIncludesDescriptionAndCount(t *testing.T) {
	repo := newFakeRepo()
	repo.categories["cat-1"] = &Category{
		ID:          "cat-1",
		Name:        "Streetlight",
		Description: "Broken or non-functional streetlights",
		Icon:        "lightbulb",
	}
	repo.counts["Streetlight"] = 7
	svc := NewService(repo)

	list, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "Broken or non-functional streetlights", list[0].Description)
	assert.Equal(t, 7, list[0].ReportCount)
}

func TestResponseMapping(t *testing.T) {
	c := &Category{
		ID:          "cat-1",
		Name:        "Water Issue",
		Description: "Water supply and drainage issues",
		Icon:        "droplet",
	}

	resp := ToCategoryResponse(c, 3)
	assert.Equal(t, "Water supply and drainage issues", resp.Description)
	assert.Equal(t, 3, resp.ReportCount)
}
