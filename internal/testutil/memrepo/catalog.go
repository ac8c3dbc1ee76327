package memrepo

import (
	"github.com/sistemas-transaccionales-umb/back/internal/domain/entity"
	"github.com/sistemas-transaccionales-umb/back/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CategoryRepository  = (*CategoryRepo)(nil)
)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct {
	products map[string]*entity.Product
}

// NewProductRepo crea el repositorio, opcionalmente sembrado.
func NewProductRepo(products ...*entity.Product) *ProductRepo {
	r := &ProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *ProductRepo) Create(product *entity.Product) error {
	c := *product
	r.products[product.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	c := *product
	r.products[product.ID] = &c
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		c := *p
		out = append(out, &c)
	}
	return page(out, limit, offset), nil
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

// NewWarehouseRepo crea el repositorio, opcionalmente sembrado.
func NewWarehouseRepo(warehouses ...*entity.Warehouse) *WarehouseRepo {
	r := &WarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		r.warehouses[w.ID] = w
	}
	return r
}

func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	c := *warehouse
	r.warehouses[warehouse.ID] = &c
	return nil
}

func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WarehouseRepo) GetByName(name string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.Name == name {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	c := *warehouse
	r.warehouses[warehouse.ID] = &c
	return nil
}

func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		c := *w
		out = append(out, &c)
	}
	return page(out, limit, offset), nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

// NewSupplierRepo crea el repositorio, opcionalmente sembrado.
func NewSupplierRepo(suppliers ...*entity.Supplier) *SupplierRepo {
	r := &SupplierRepo{suppliers: make(map[string]*entity.Supplier)}
	for _, s := range suppliers {
		r.suppliers[s.ID] = s
	}
	return r
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	c := *supplier
	r.suppliers[supplier.ID] = &c
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SupplierRepo) GetByTaxID(taxID string) (*entity.Supplier, error) {
	for _, s := range r.suppliers {
		if s.TaxID == taxID {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	c := *supplier
	r.suppliers[supplier.ID] = &c
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		c := *s
		out = append(out, &c)
	}
	return page(out, limit, offset), nil
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	customers map[string]*entity.Customer
}

// NewCustomerRepo crea el repositorio, opcionalmente sembrado.
func NewCustomerRepo(customers ...*entity.Customer) *CustomerRepo {
	r := &CustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *CustomerRepo) Create(customer *entity.Customer) error {
	c := *customer
	r.customers[customer.ID] = &c
	return nil
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *CustomerRepo) GetByDocument(document string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Document == document {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) Update(customer *entity.Customer) error {
	c := *customer
	r.customers[customer.ID] = &c
	return nil
}

func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		cc := *c
		out = append(out, &cc)
	}
	return page(out, limit, offset), nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	users map[string]*entity.User
}

// NewUserRepo crea el repositorio, opcionalmente sembrado.
func NewUserRepo(users ...*entity.User) *UserRepo {
	r := &UserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepo) Create(user *entity.User) error {
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return page(out, limit, offset), nil
}

// CategoryRepo categorías en memoria.
type CategoryRepo struct {
	categories map[string]*entity.Category
}

// NewCategoryRepo crea el repositorio, opcionalmente sembrado.
func NewCategoryRepo(categories ...*entity.Category) *CategoryRepo {
	r := &CategoryRepo{categories: make(map[string]*entity.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	c := *category
	r.categories[category.ID] = &c
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) Update(category *entity.Category) error {
	c := *category
	r.categories[category.ID] = &c
	return nil
}

func (r *CategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cc := *c
		out = append(out, &cc)
	}
	return page(out, limit, offset), nil
}
