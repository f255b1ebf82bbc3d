// Package qrcode renders share codes that point at a business page.
package qrcode

import (
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"vitrina/config"
	"vitrina/internal/domain/service"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:8080"
	businessPath   = "/comercio/"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a QR code service from the qrcode config section.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := "M"
	baseURL := defaultBaseURL
	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			level = cfg.QRCode.ErrorCorrectionLevel
		}
		if cfg.QRCode.BaseURL != "" {
			baseURL = cfg.QRCode.BaseURL
		}
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// BusinessURL returns the public page URL of the business.
func (s *qrcodeService) BusinessURL(businessID uuid.UUID) string {
	return s.baseURL + businessPath + businessID.String()
}

// GenerateBusinessQR renders the business page URL as a PNG.
func (s *qrcodeService) GenerateBusinessQR(businessID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.BusinessURL(businessID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseBusinessURL extracts the business id from a scanned share URL.
func (s *qrcodeService) ParseBusinessURL(raw string) (uuid.UUID, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code URL")
	}

	dir, last := path.Split(u.Path)
	if dir != businessPath {
		return uuid.Nil, errors.Errorf("not a business share URL: %s", raw)
	}

	businessID, err := uuid.Parse(last)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse business ID")
	}

	return businessID, nil
}
