package repo

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/testutil"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()
	return &GormRepo{DB: testutil.InitTestDB(t)}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)
	assert.ErrorIs(t, translate(&pq.Error{Code: "23505"}), ErrDuplicate)
	assert.NotErrorIs(t, translate(&pq.Error{Code: "23502"}), ErrDuplicate)
}

func TestGormRepo_Users(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	exists, err := r.UserExists(ctx, "frog")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = r.GetUser(ctx, "frog")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "frog", Password: "x", Permission: models.PermissionWorker}))

	exists, err = r.UserExists(ctx, "frog")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.UserExists(ctx, "Frog")
	require.NoError(t, err)
	assert.False(t, exists, "usernames are case sensitive")

	err = r.CreateUser(ctx, &models.User{Username: "frog", Password: "y", Permission: models.PermissionWorker})
	require.Error(t, err)

	require.NoError(t, r.SetPermission(ctx, "frog", models.PermissionManager))
	u, err := r.GetUser(ctx, "frog")
	require.NoError(t, err)
	assert.Equal(t, models.PermissionManager, u.Permission)

	require.NoError(t, r.SetPermission(ctx, "ghost", models.PermissionManager))
}

func TestGormRepo_CreateUserIfNotExists(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	created, err := r.CreateUserIfNotExists(ctx, &models.User{Username: "admin", Password: "x", Permission: models.PermissionAdmin})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.CreateUserIfNotExists(ctx, &models.User{Username: "admin", Password: "y", Permission: models.PermissionAdmin})
	require.NoError(t, err)
	assert.False(t, created)

	u, err := r.GetUser(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "x", u.Password)
}

func TestGormRepo_Products(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()

	hat := &models.Product{ID: "aaaa1111", Name: "small frog", Category: "hat", Description: "a very cool hat", Price: 25, Stock: 11, Image: testutil.StrPtr("shopify.com/s/files/1/0190")}
	mug := &models.Product{ID: "bbbb2222", Name: "big mug", Category: "mug", Description: "holds coffee", Price: 10, Stock: 3}
	require.NoError(t, r.CreateProduct(ctx, hat))
	require.NoError(t, r.CreateProduct(ctx, mug))

	exists, err := r.ProductExists(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := r.GetProduct(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, "small frog", got.Name)
	require.NotNil(t, got.Image)
	assert.Equal(t, "shopify.com/s/files/1/0190", *got.Image)

	_, err = r.GetProduct(ctx, "missing0")
	assert.ErrorIs(t, err, ErrNotFound)

	hats, err := r.ListByCategory(ctx, "hat")
	require.NoError(t, err)
	require.Len(t, hats, 1)
	assert.Equal(t, "aaaa1111", hats[0].ID)

	none, err := r.ListByCategory(ctx, "HAT")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, r.UpdateProduct(ctx, "aaaa1111", map[string]any{"description": "changed"}))
	got, err = r.GetProduct(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Description)
	assert.Equal(t, "small frog", got.Name)
	assert.EqualValues(t, 25, got.Price)

	assert.ErrorIs(t, r.UpdateProduct(ctx, "missing0", map[string]any{"description": "x"}), ErrNotFound)

	total, found, err := r.SearchProducts(ctx, "FROG", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "aaaa1111", found[0].ID)

	require.NoError(t, r.DeleteProduct(ctx, "aaaa1111"))
	assert.ErrorIs(t, r.DeleteProduct(ctx, "aaaa1111"), ErrNotFound)
	_, err = r.GetProduct(ctx, "aaaa1111")
	assert.ErrorIs(t, err, ErrNotFound)
}
