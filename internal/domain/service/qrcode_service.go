package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders share codes for business pages.
type QRCodeService interface {
	// BusinessURL returns the public page URL encoded in the share code.
	BusinessURL(businessID uuid.UUID) string

	// GenerateBusinessQR renders a PNG QR code pointing at the business page.
	GenerateBusinessQR(businessID uuid.UUID) ([]byte, error)

	// ParseBusinessURL extracts the business id from a scanned share URL.
	ParseBusinessURL(url string) (uuid.UUID, error)
}
