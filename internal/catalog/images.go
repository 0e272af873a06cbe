package catalog

import "github.com/Flame-Codes/jersey-hub-direct/internal/models"

// ImageResolver maps product ids to bundled image assets
type ImageResolver map[string]string

// DefaultImages are the jersey photos shipped with the storefront
var DefaultImages = ImageResolver{
	"1":  "/assets/jerseys/barcelona-home.jpg",
	"2":  "/assets/jerseys/real-madrid-home.jpg",
	"3":  "/assets/jerseys/man-utd-away.jpg",
	"4":  "/assets/jerseys/brazil-retro-1970.jpg",
	"5":  "/assets/jerseys/liverpool-home.jpg",
	"6":  "/assets/jerseys/barcelona-away.jpg",
	"7":  "/assets/jerseys/argentina-wc.jpg",
	"8":  "/assets/jerseys/real-madrid-retro-2002.jpg",
	"9":  "/assets/jerseys/travel-training.jpg",
	"10": "/assets/jerseys/psg-home.jpg",
	"11": "/assets/jerseys/bayern-full-sleeve.jpg",
	"12": "/assets/jerseys/chelsea-home.jpg",
}

// Resolve picks the display image: bundled asset, then the product's own
// image, then its first gallery image.
func (r ImageResolver) Resolve(p models.Product) string {
	if img, ok := r[p.ID]; ok && img != "" {
		return img
	}
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
