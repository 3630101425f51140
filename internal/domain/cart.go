package domain

// CartItem is one cart line. Name, price and image are a snapshot taken
// when the item was added and are not re-synced against the catalog.
type CartItem struct {
	ProductID string  `json:"productId" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	ImageURL  string  `json:"imageUrl" bson:"image_url"`
	Size      string  `json:"size" bson:"size"`
	Color     string  `json:"color" bson:"color"`
	Quantity  int     `json:"quantity" bson:"quantity" validate:"gte=1"`
}

// SameLine reports whether two items share the (product, size, color)
// composite key that identifies a cart line.
func (i CartItem) SameLine(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}
