package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemas-transaccionales-umb/back/internal/application/dto"
	"github.com/sistemas-transaccionales-umb/back/internal/application/usecase"
	"github.com/sistemas-transaccionales-umb/back/internal/domain"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/testutil/memrepo"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newProductUseCase() *usecase.ProductUseCase {
	categoryRepo := memrepo.NewCategoryRepo(&entity.Category{ID: "cat-1", Name: "Abarrotes", Status: entity.StatusActive})
	return usecase.NewProductUseCase(memrepo.NewProductRepo(), categoryRepo)
}

func productRequest(code, taxRate string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:       code,
		Name:       "Café 500g",
		UnitPrice:  dec("12500.00"),
		TaxRate:    dec(taxRate),
		CategoryID: "cat-1",
	}
}

func TestProductCreate_QuedaActivo(t *testing.T) {
	uc := newProductUseCase()

	resp, err := uc.Create(productRequest("7701234567890", "19"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, resp.Status)
	assert.True(t, dec("19").Equal(resp.TaxRate))
}

// La tarifa de IVA solo admite 0, 5 o 19.
func TestProductCreate_TarifasIVA(t *testing.T) {
	uc := newProductUseCase()

	for i, rate := range []string{"0", "5", "19"} {
		_, err := uc.Create(productRequest(string(rune('A'+i))+"-valid", rate))
		assert.NoError(t, err, "la tarifa %s debe aceptarse", rate)
	}

	for i, rate := range []string{"10", "16", "-5", "19.5"} {
		_, err := uc.Create(productRequest(string(rune('A'+i))+"-invalid", rate))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "la tarifa %s debe rechazarse", rate)
	}
}

func TestProductCreate_CodigoDuplicado_RetornaErrDuplicate(t *testing.T) {
	uc := newProductUseCase()

	_, err := uc.Create(productRequest("7701234567890", "19"))
	require.NoError(t, err)

	_, err = uc.Create(productRequest("7701234567890", "0"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente_RetornaErrNotFound(t *testing.T) {
	uc := newProductUseCase()

	req := productRequest("123", "19")
	req.CategoryID = "cat-fantasma"
	_, err := uc.Create(req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_CodigoEsInmutable(t *testing.T) {
	uc := newProductUseCase()

	created, err := uc.Create(productRequest("7701234567890", "19"))
	require.NoError(t, err)

	price := dec("13900.00")
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Name: "Café premium 500g", UnitPrice: &price})
	require.NoError(t, err)

	assert.Equal(t, "7701234567890", updated.Code, "el código de barras no cambia nunca")
	assert.Equal(t, "Café premium 500g", updated.Name)
	assert.True(t, price.Equal(updated.UnitPrice))
}

func TestProductUpdate_TarifaInvalida_RetornaErrInvalidInput(t *testing.T) {
	uc := newProductUseCase()

	created, err := uc.Create(productRequest("7701234567890", "19"))
	require.NoError(t, err)

	bad := dec("16")
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{TaxRate: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
