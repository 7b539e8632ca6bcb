package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(qrToken string) ([]byte, error)
}

// DefaultQRGenerator encodes the ordering URL for a table. The token is the
// only wire contract with the printed code, so the URL shape stays fixed.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(qrToken string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/?table=%s", g.BaseURL, qrToken)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
