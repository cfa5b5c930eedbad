package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes a link to the restaurant's review page as a PNG.
func (g DefaultQRGenerator) Generate(restaurantID int) ([]byte, error) {
	link := fmt.Sprintf("%s/restaurants/%d#reviews", g.BaseURL, restaurantID)
	return qrcode.Encode(link, qrcode.Medium, 256)
}
