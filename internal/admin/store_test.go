package admin_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ShopFront/internal/admin"
	"ShopFront/internal/kv"
)

var ctx = context.Background()

func valid() admin.NewProduct {
	return admin.NewProduct{
		Title:    "Toaster X",
		Brand:    "Tefal",
		Category: "SDA",
		Price:    decimal.NewFromInt(120),
		Img:      "toaster.jpg",
	}
}

func TestAddAssignsIDAndPersists(t *testing.T) {
	mem := kv.NewMemStore()
	s := admin.NewStore(mem, admin.DefaultKey, nil)

	p, err := s.Add(ctx, valid())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "p_"))
	assert.Equal(t, "toaster.jpg", p.Img)

	// A second store over the same key sees the authored product.
	reloaded := admin.NewStore(mem, admin.DefaultKey, nil)
	products, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p, products[0])
}

func TestAddFallsBackToDefaultImage(t *testing.T) {
	s := admin.NewStore(kv.NewMemStore(), admin.DefaultKey, nil)

	np := valid()
	np.Img = "  "

	p, err := s.Add(ctx, np)
	require.NoError(t, err)
	assert.Equal(t, "images/default.jpg", p.Img)
}

func TestAddValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*admin.NewProduct)
		want   error
	}{
		{"missing title", func(np *admin.NewProduct) { np.Title = " " }, admin.ErrTitleRequired},
		{"missing brand", func(np *admin.NewProduct) { np.Brand = "" }, admin.ErrBrandRequired},
		{"missing category", func(np *admin.NewProduct) { np.Category = "" }, admin.ErrCategoryRequired},
		{"zero price", func(np *admin.NewProduct) { np.Price = decimal.Zero }, admin.ErrBadPrice},
		{"negative price", func(np *admin.NewProduct) { np.Price = decimal.NewFromInt(-5) }, admin.ErrBadPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := kv.NewMemStore()
			s := admin.NewStore(mem, admin.DefaultKey, nil)

			np := valid()
			tc.mutate(&np)

			_, err := s.Add(ctx, np)
			assert.ErrorIs(t, err, tc.want)

			_, ok, err := mem.Get(ctx, admin.DefaultKey)
			require.NoError(t, err)
			assert.False(t, ok, "nothing persisted on validation failure")
		})
	}
}

func TestAddAppendsInOrder(t *testing.T) {
	s := admin.NewStore(kv.NewMemStore(), admin.DefaultKey, nil)

	first, err := s.Add(ctx, valid())
	require.NoError(t, err)

	second := valid()
	second.Title = "Kettle Y"
	p2, err := s.Add(ctx, second)
	require.NoError(t, err)

	products, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, p2.ID, products[1].ID)
	assert.NotEqual(t, first.ID, p2.ID)
}

func TestCorruptedListReadsAsEmpty(t *testing.T) {
	mem := kv.NewMemStore()
	require.NoError(t, mem.Set(ctx, admin.DefaultKey, "{{broken"))

	s := admin.NewStore(mem, admin.DefaultKey, nil)

	products, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
