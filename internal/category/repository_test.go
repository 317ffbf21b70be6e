package category

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT c.id, c.name FROM categories c ORDER BY c.name ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(5, "Soft Drinks").
				AddRow(7, "Confectionery"))

		cats, err := repo.GetCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Soft Drinks", cats[0].Name)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectQuery(`SELECT .*`).WillReturnError(errors.New("db error"))
		_, err = repo.GetCategories(ctx)
		assert.Error(t, err)
	})
}

func TestRepository_GetSubcategoriesByCategoryIDs(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`(?s)SELECT s.id, s.category_id, s.name\s+FROM subcategories s\s+WHERE s.category_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name"}).
			AddRow(12, 5, "Cans").
			AddRow(13, 7, "Chocolate").
			AddRow(14, 5, "Bottles"))

	grouped, err := repo.GetSubcategoriesByCategoryIDs(ctx, []int{5, 7})
	require.NoError(t, err)
	assert.Len(t, grouped[5], 2)
	assert.Len(t, grouped[7], 1)
	assert.Equal(t, "Chocolate", grouped[7][0].Name)
}

func TestRepository_GetAllSubcategories(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT s.id, s.category_id, s.name FROM subcategories s ORDER BY s.name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name"}).
			AddRow(12, 5, "Cans"))

	subs, err := repo.GetAllSubcategories(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, 5, subs[0].CategoryID)
}
