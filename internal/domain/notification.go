package domain

import "fmt"

// Notification variants
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

// Notification is a short-lived, user-visible status message
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

func AddedToCart(name string) Notification {
	return Notification{
		Title:       "Added to Cart",
		Description: fmt.Sprintf("%s has been added to your cart.", name),
		Variant:     VariantDefault,
	}
}

func AddedToWishlist(name string) Notification {
	return Notification{
		Title:       "Added to Wishlist",
		Description: fmt.Sprintf("%s has been saved to your wishlist.", name),
		Variant:     VariantDefault,
	}
}

func MissingInformation() Notification {
	return Notification{
		Title:       "Missing Information",
		Description: "Please fill in all required fields.",
		Variant:     VariantDestructive,
	}
}

func ImagesRequired() Notification {
	return Notification{
		Title:       "Images Required",
		Description: "Please upload at least one product image.",
		Variant:     VariantDestructive,
	}
}

func ProductAdded(name string) Notification {
	return Notification{
		Title:       "Product Added!",
		Description: fmt.Sprintf("%s has been successfully added to the catalog.", name),
		Variant:     VariantDefault,
	}
}
