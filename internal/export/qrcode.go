package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/roomfit/internal/model"
)

// qrImageName is the name the result QR code is registered under in a PDF.
const qrImageName = "qr_fit_result"

// EncodeResultQR renders the JSON form of a fit result as a QR code PNG.
func EncodeResultQR(result model.FitResult, size int) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fit result: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// renderResultQR places the result QR code at (x, y) with side length size mm.
func renderResultQR(pdf *fpdf.Fpdf, x, y, size float64, result model.FitResult) error {
	png, err := EncodeResultQR(result, 256)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	pdf.ImageOptions(qrImageName, x, y, size, size, false, opts, 0, "")

	// Light border for the scan area
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, size, size, "D")
	return pdf.Error()
}
