package repo

import (
	"context"
	"testing"

	"simaset/internal/errs"
	"simaset/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoldaRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewPoldaRepository(db)
	ctx := context.Background()

	p := &model.Polda{Name: "Polda Metro Jaya", Address: "Jakarta", Phone: "021-1111"}
	require.NoError(t, r.Create(ctx, p))
	assert.NotEmpty(t, p.ID)

	got, err := r.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Polda Metro Jaya", got.Name)

	// несуществующий id — NotFound
	_, err = r.GetByID(ctx, "missing")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestPoldaRepository_UniqueName(t *testing.T) {
	db := newTestDB(t)
	r := NewPoldaRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &model.Polda{Name: "Polda Jatim"}))

	// pre-check по имени
	dup, err := r.FindByName(ctx, "Polda Jatim", "")
	require.NoError(t, err)
	assert.NotNil(t, dup)

	// ограничение на уровне БД тоже держит: вставка мимо pre-check падает конфликтом
	err = r.Create(ctx, &model.Polda{Name: "Polda Jatim"})
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestPoldaRepository_ListSearchAndPaginate(t *testing.T) {
	db := newTestDB(t)
	r := NewPoldaRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Polda Metro Jaya", "Polda Jawa Barat", "Polda Jawa Timur"} {
		require.NoError(t, r.Create(ctx, &model.Polda{Name: name}))
	}

	// регистронезависимый поиск
	rows, total, err := r.List(ctx, "jawa", Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, rows, 2)

	// пагинация: limit ограничивает размер страницы
	rows, total, err = r.List(ctx, "", Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, rows, 2)

	rows, _, err = r.List(ctx, "", Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPoldaRepository_CountPolres(t *testing.T) {
	db := newTestDB(t)
	r := NewPoldaRepository(db)
	ctx := context.Background()

	a := mustPolda(t, db, "Polda A")
	b := mustPolda(t, db, "Polda B")
	mustPolres(t, db, "Polres A1", a.ID)
	mustPolres(t, db, "Polres A2", a.ID)

	n, err := r.CountPolres(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = r.CountPolres(ctx, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestPagination_Invariants(t *testing.T) {
	pg := NewPagination(Page{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(Page{Page: 3, Limit: 10}, 25)
	assert.False(t, pg.HasNext)

	// нулевые параметры нормализуются
	pg = NewPagination(Page{}, 0)
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 10, pg.Limit)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}
