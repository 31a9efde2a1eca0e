package usecase

import (
	"context"
	"testing"

	"github.com/minishop-tech/go-backend/internal/domain"
	"github.com/minishop-tech/go-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

func TestProductUseCase_CreateProduct_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  *SaveProductReq
		want error
	}{
		{
			name: "empty name",
			req:  &SaveProductReq{Name: "  ", Price: 1000, Stock: 1},
			want: e.ErrProductNameRequired,
		},
		{
			name: "non-positive price",
			req:  &SaveProductReq{Name: "Widget", Price: 0, Stock: 1},
			want: e.ErrPriceMustBePositive,
		},
		{
			name: "negative stock",
			req:  &SaveProductReq{Name: "Widget", Price: 1000, Stock: -1},
			want: e.ErrStockMustBeNonNeg,
		},
	}

	uc := NewProductUC(newFakeProductRepo(), newFakeCacheRepo(), nil, fakeDB{}, nopLogger{})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProductUseCase_CreateProduct_UploadsImage(t *testing.T) {
	productRepo := newFakeProductRepo()
	store := &fakeImageStore{}
	uc := NewProductUC(productRepo, newFakeCacheRepo(), store, fakeDB{}, nopLogger{})

	product, err := uc.CreateProduct(context.Background(), &SaveProductReq{
		Name:  "Widget",
		Price: 1000,
		Stock: 5,
		Image: NewProductImage([]byte{0xFF, 0xD8}, "image/jpeg", 2, "widget.jpg"),
	})
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)
	require.Equal(t, "/images/"+store.uploads[0], product.ImageURL)
}

func TestProductUseCase_CreateProduct_UnsupportedImageType(t *testing.T) {
	uc := NewProductUC(newFakeProductRepo(), newFakeCacheRepo(), &fakeImageStore{}, fakeDB{}, nopLogger{})

	_, err := uc.CreateProduct(context.Background(), &SaveProductReq{
		Name:  "Widget",
		Price: 1000,
		Stock: 5,
		Image: NewProductImage([]byte("%PDF"), "application/pdf", 4, "widget.pdf"),
	})
	require.ErrorIs(t, err, e.ErrUnsupportedMedia)
}

func TestProductUseCase_GetProduct_CacheHit(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 5))
	cacheRepo := newFakeCacheRepo()
	require.NoError(t, cacheRepo.SetProduct(context.Background(), activeProduct(1, 1000, 5)))

	uc := NewProductUC(productRepo, cacheRepo, nil, fakeDB{}, nopLogger{})

	product, err := uc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)
	require.Zero(t, productRepo.getByIDCalls)
}

func TestProductUseCase_GetProduct_InactiveNotCached(t *testing.T) {
	hidden := activeProduct(1, 1000, 5)
	hidden.Status = domain.ProductStatusInactive
	cacheRepo := newFakeCacheRepo()
	uc := NewProductUC(newFakeProductRepo(hidden), cacheRepo, nil, fakeDB{}, nopLogger{})

	product, err := uc.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, domain.ProductStatusInactive, product.Status)

	cached, err := cacheRepo.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, cached)
}

func TestProductUseCase_GetProduct_NotFound(t *testing.T) {
	uc := NewProductUC(newFakeProductRepo(), newFakeCacheRepo(), nil, fakeDB{}, nopLogger{})

	_, err := uc.GetProduct(context.Background(), 42)
	require.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), -1)
	require.ErrorIs(t, err, e.ErrInvalidProductID)
}

func TestProductUseCase_UpdateProduct_KeepsExistingImage(t *testing.T) {
	existing := activeProduct(1, 1000, 5)
	existing.ImageURL = "/images/products/old.jpg"
	productRepo := newFakeProductRepo(existing)
	uc := NewProductUC(productRepo, newFakeCacheRepo(), nil, fakeDB{}, nopLogger{})

	product, err := uc.UpdateProduct(context.Background(), 1, &SaveProductReq{
		Name:  "Widget v2",
		Price: 1200,
		Stock: 3,
	})
	require.NoError(t, err)

	require.Equal(t, "Widget v2", product.Name)
	require.Equal(t, "/images/products/old.jpg", product.ImageURL)
	require.Equal(t, domain.ProductStatusActive, product.Status)
}

func TestProductUseCase_DeleteProduct_InvalidatesCache(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 5))
	cacheRepo := newFakeCacheRepo()
	require.NoError(t, cacheRepo.SetProduct(context.Background(), activeProduct(1, 1000, 5)))

	uc := NewProductUC(productRepo, cacheRepo, nil, fakeDB{}, nopLogger{})

	require.NoError(t, uc.DeleteProduct(context.Background(), 1))

	cached, err := cacheRepo.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, cached)

	_, err = productRepo.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestProductUseCase_ListProducts_FiltersInactive(t *testing.T) {
	hidden := activeProduct(2, 2000, 1)
	hidden.Status = domain.ProductStatusInactive
	productRepo := newFakeProductRepo(activeProduct(1, 1000, 5), hidden)

	uc := NewProductUC(productRepo, newFakeCacheRepo(), nil, fakeDB{}, nopLogger{})

	visible, err := uc.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, visible, 1)

	all, err := uc.ListProducts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
