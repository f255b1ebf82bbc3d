package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/config"
)

func newService(size int, level, baseURL string) *qrcodeService {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: size, ErrorCorrectionLevel: level, BaseURL: baseURL}}

	return NewQRCodeService(cfg).(*qrcodeService)
}

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		in   string
		want qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"m", qrcode.Medium},
		{"Q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.in))
		})
	}
}

func TestNewQRCodeService_Defaults(t *testing.T) {
	svc := NewQRCodeService(nil).(*qrcodeService)
	assert.Equal(t, defaultSize, svc.size)
	assert.Equal(t, qrcode.Medium, svc.errorCorrectionLevel)
	assert.Equal(t, defaultBaseURL, svc.baseURL)
}

func TestQRCodeService_GenerateBusinessQR(t *testing.T) {
	svc := newService(128, "M", "https://vitrina.example/")
	businessID := uuid.New()

	pngBytes, err := svc.GenerateBusinessQR(businessID)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestQRCodeService_BusinessURLRoundTrip(t *testing.T) {
	svc := newService(256, "M", "https://vitrina.example/")
	businessID := uuid.New()

	u := svc.BusinessURL(businessID)
	assert.Equal(t, "https://vitrina.example/comercio/"+businessID.String(), u)

	parsed, err := svc.ParseBusinessURL(u)
	require.NoError(t, err)
	assert.Equal(t, businessID, parsed)
}

func TestQRCodeService_ParseBusinessURL_Invalid(t *testing.T) {
	svc := newService(256, "M", "")

	tests := []struct {
		name string
		in   string
	}{
		{"other path", "https://vitrina.example/usuario/" + uuid.NewString()},
		{"bad id", "https://vitrina.example/comercio/not-a-uuid"},
		{"nested", "https://vitrina.example/x/comercio/" + uuid.NewString()},
		{"garbage", "::::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseBusinessURL(tt.in)
			assert.Error(t, err)
		})
	}
}
