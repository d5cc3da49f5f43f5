package services

import (
	"github.com/skip2/go-qrcode"
)

type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{baseURL: baseURL}
}

// PNGForShortCode renders a QR code pointing at the short link.
func (s *QRService) PNGForShortCode(shortCode string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(s.baseURL+"/l/"+shortCode, qrcode.Medium, size)
}
