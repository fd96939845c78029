package catalog

// Product is a catalog entry. Every field is passed through from the remote
// schema unchanged.
type Product struct {
	ID          string `json:"id"          yaml:"id"`
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Vendor      string `json:"vendor"      yaml:"vendor"`
	ProductType string `json:"productType" yaml:"product_type"`
	CreatedAt   string `json:"createdAt"   yaml:"created_at"`
}

// Edge is a product together with its position in the result set.
type Edge struct {
	Cursor string  `json:"cursor" yaml:"cursor"`
	Node   Product `json:"node"   yaml:"node"`
}

// PageInfo describes where a page sits in the full result set.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"     yaml:"has_next_page"`
	HasPreviousPage bool    `json:"hasPreviousPage" yaml:"has_previous_page"`
	StartCursor     *string `json:"startCursor"     yaml:"start_cursor,omitempty"`
	EndCursor       *string `json:"endCursor"       yaml:"end_cursor,omitempty"`
}

// ProductConnection is one page of the products query.
type ProductConnection struct {
	Edges    []Edge   `json:"edges"    yaml:"edges"`
	PageInfo PageInfo `json:"pageInfo" yaml:"page_info"`
}

// Products returns the page's nodes in order.
func (c *ProductConnection) Products() []Product {
	if c == nil {
		return nil
	}
	out := make([]Product, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

// ProductsData is the "data" member of a products query response.
type ProductsData struct {
	Products *ProductConnection `json:"products"`
}

// ConnectionFromResponse returns the connection carried by d, or nil when the
// response had no data.
func ConnectionFromResponse(d *ProductsData) *ProductConnection {
	if d == nil {
		return nil
	}
	return d.Products
}
