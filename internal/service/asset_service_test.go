package service

import (
	"context"
	"testing"

	"simaset/internal/errs"
	"simaset/internal/model"
	"simaset/internal/repo"
	"simaset/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест: дубль инвентарного номера отклоняется конфликтом
func TestAssetCreate_DuplicateInventoryNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	polda := env.mustPolda(t, "Polda Metro Jaya")
	polres := env.mustPolres(t, "Polres Jaksel", polda.ID)

	name := "Mobil Patroli"
	_, err := env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: &polres.ID, InventoryNumber: strptr("INV-001")})
	require.NoError(t, err)

	name2 := "Motor Patroli"
	_, err = env.Assets.Create(ctx, AssetInput{Name: &name2, PolresID: &polres.ID, InventoryNumber: strptr("INV-001")})
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Equal(t, "Inventory number sudah digunakan", errs.ClientMessage(err))
}

// Тест: poldaId выводится из polres; явный poldaId должен быть родителем polres
func TestAssetCreate_PoldaConsistency(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	poldaA := env.mustPolda(t, "Polda A")
	poldaB := env.mustPolda(t, "Polda B")
	polresA := env.mustPolres(t, "Polres A-1", poldaA.ID)

	name := "Laptop Dell"
	created, err := env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: &polresA.ID})
	require.NoError(t, err)
	require.NotNil(t, created.PoldaID)
	assert.Equal(t, poldaA.ID, *created.PoldaID)

	// чужой polda — несогласованная иерархия
	_, err = env.Assets.Create(ctx, AssetInput{Name: &name, PoldaID: &poldaB.ID, PolresID: &polresA.ID})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

// Тест: несуществующие ссылки — 404
func TestAssetCreate_MissingReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	polda := env.mustPolda(t, "Polda Ref")
	polres := env.mustPolres(t, "Polres Ref", polda.ID)

	name := "Kamera"
	_, err := env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: strptr("nope")})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: &polres.ID, AssignedTo: strptr("ghost")})
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

// Тест: QR-метка по умолчанию ссылается на карточку актива
func TestAssetCreate_DefaultQRData(t *testing.T) {
	env := newTestEnv(t)
	polda := env.mustPolda(t, "Polda QR")
	polres := env.mustPolres(t, "Polres QR", polda.ID)

	name := "Drone"
	a, err := env.Assets.Create(context.Background(), AssetInput{Name: &name, PolresID: &polres.ID})
	require.NoError(t, err)
	require.NotNil(t, a.QRData)
	assert.Equal(t, "simaset://asset/"+a.ID, *a.QRData)
}

// Тест: POLRES-вызывающий видит только активы своего подразделения
func TestAssetList_ScopedByPolres(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	polda := env.mustPolda(t, "Polda Scope")
	polresA := env.mustPolres(t, "Polres A", polda.ID)
	polresB := env.mustPolres(t, "Polres B", polda.ID)

	nameA, nameB := "Senter A", "Senter B"
	_, err := env.Assets.Create(ctx, AssetInput{Name: &nameA, PolresID: &polresA.ID})
	require.NoError(t, err)
	_, err = env.Assets.Create(ctx, AssetInput{Name: &nameB, PolresID: &polresB.ID})
	require.NoError(t, err)

	c := scope.Caller{UserID: "x", Role: model.RolePolres, PoldaID: polda.ID, PolresID: polresA.ID}
	assets, pg, err := env.Assets.List(ctx, c, repo.AssetFilter{}, repo.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pg.Total)
	require.Len(t, assets, 1)
	assert.Equal(t, nameA, assets[0].Name)

	// чужой актив вне зоны видимости выглядит как отсутствующий
	all, _, err := env.Assets.List(ctx, adminCaller(), repo.AssetFilter{}, repo.Page{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, a := range all {
		if *a.PolresID == polresB.ID {
			_, err = env.Assets.Get(ctx, c, a.ID)
			assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
		}
	}
}

// Тест: обновление частичное; смена polres пересчитывает polda
func TestAssetUpdate_MergePatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	poldaA := env.mustPolda(t, "Polda A")
	poldaB := env.mustPolda(t, "Polda B")
	polresA := env.mustPolres(t, "Polres A", poldaA.ID)
	polresB := env.mustPolres(t, "Polres B", poldaB.ID)

	name := "Genset"
	a, err := env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: &polresA.ID})
	require.NoError(t, err)

	status := model.AssetMaintenance
	updated, err := env.Assets.Update(ctx, adminCaller(), a.ID, AssetInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.AssetMaintenance, updated.Status)
	assert.Equal(t, name, updated.Name, "незатронутые поля сохраняются")

	moved, err := env.Assets.Update(ctx, adminCaller(), a.ID, AssetInput{PolresID: &polresB.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.PoldaID)
	assert.Equal(t, poldaB.ID, *moved.PoldaID)
}

// Тест: удаление закрыто, пока актив закреплён за пользователем
func TestAssetDelete_BlockedWhileAssigned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	polda := env.mustPolda(t, "Polda Del")
	polres := env.mustPolres(t, "Polres Del", polda.ID)
	user := env.mustUser(t, "pemegang", model.RoleUser, &polda.ID, &polres.ID)

	name := "Borgol"
	a, err := env.Assets.Create(ctx, AssetInput{Name: &name, PolresID: &polres.ID, AssignedTo: &user.ID})
	require.NoError(t, err)

	err = env.Assets.Delete(ctx, adminCaller(), a.ID)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	// снятие закрепления открывает удаление
	_, err = env.Assets.Update(ctx, adminCaller(), a.ID, AssetInput{AssignedTo: strptr("")})
	require.NoError(t, err)
	assert.NoError(t, env.Assets.Delete(ctx, adminCaller(), a.ID))
}
