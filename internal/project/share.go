package project

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/skip2/go-qrcode"
)

// QRSize is the side of the share QR code in pixels.
const QRSize = 200

// QRCodePNG encodes content as a high-recovery QR code image.
func QRCodePNG(content string) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	png, err := q.PNG(QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// QRCodeText renders content as a QR code made of half-block characters.
func QRCodeText(content string) (string, error) {
	q, err := qrcode.New(content, qrcode.Highest)
	if err != nil {
		return "", fmt.Errorf("failed to build QR code: %w", err)
	}
	return q.ToSmallString(false), nil
}

var printPage = template.Must(template.New("print").Parse(`<html>
<head>
    <title>Print - Screwboard</title>
    <style>
        body { margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; }
        img { max-width: 100%; height: auto; }
    </style>
</head>
<body>
    <img src="{{.}}" onload="window.print(); window.close();" />
</body>
</html>
`))

// WritePrintPage writes an HTML page that shows png full-page and opens the print
// dialog once it has loaded.
func WritePrintPage(w io.Writer, png []byte) error {
	src := template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	if err := printPage.Execute(w, src); err != nil {
		return fmt.Errorf("failed to write print page: %w", err)
	}
	return nil
}

// PrintPage returns the print page for png.
func PrintPage(png []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := WritePrintPage(&buf, png); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
