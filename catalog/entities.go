package catalog

import (
	"github.com/angoly-ara/inventory/audit"
	"github.com/angoly-ara/inventory/repository"
)

// Client is a customer of the business.
type Client struct {
	ID      string
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// Warehouse is a storage location.
type Warehouse struct {
	ID      string
	Name    string
	Address string
	Phone   string
	Manager string
}

// Product is an item of the inventory. Price and Stock are kept as entered.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    string
	Stock    string
}

var defaultWidths = []int{6, 28, 23, 13, 13} //nolint:gochecknoglobals // column widths of the printed tables

//nolint:gochecknoglobals // kinds are static descriptions
var (
	ClientKind = Kind[Client]{
		Singular: "Client",
		Plural:   "Clients",
		Category: audit.CategoryClients,
		File:     "clientes.bin",
		Range:    repository.NewIDRange(3107, 3157), //nolint:gomnd // default id range of clients
		Labels:   map[string]string{"Name": "Full name"},
		Widths:   defaultWidths,
		New: func(v []string) Client {
			return Client{ID: v[0], Name: v[1], Address: v[2], Phone: v[3], TaxID: v[4]}
		},
	}

	WarehouseKind = Kind[Warehouse]{
		Singular: "Warehouse",
		Plural:   "Warehouses",
		Category: audit.CategoryWarehouses,
		File:     "bodegas.bin",
		Range:    repository.NewIDRange(3158, 3208), //nolint:gomnd // default id range of warehouses
		Widths:   defaultWidths,
		New: func(v []string) Warehouse {
			return Warehouse{ID: v[0], Name: v[1], Address: v[2], Phone: v[3], Manager: v[4]}
		},
	}

	ProductKind = Kind[Product]{
		Singular: "Product",
		Plural:   "Products",
		Category: audit.CategoryProducts,
		File:     "productos.bin",
		Range:    repository.NewIDRange(3209, 3259), //nolint:gomnd // default id range of products
		Widths:   defaultWidths,
		New: func(v []string) Product {
			return Product{ID: v[0], Name: v[1], Category: v[2], Price: v[3], Stock: v[4]}
		},
	}
)
