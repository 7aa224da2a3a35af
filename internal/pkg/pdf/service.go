// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/your-org/ecommerce-storefront/internal/config"
	"github.com/your-org/ecommerce-storefront/internal/domain/order"
)

// ErrDisabled is returned when invoice generation is switched off
var ErrDisabled = errors.New("invoice generation disabled")

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return "₹" + d.StringFixed(2) },
}).Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	config *config.Config
	now    func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	if cfg.Invoice.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.Invoice.WkhtmltopdfPath)
	}
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// Enabled reports whether invoices can be downloaded
func (s *Service) Enabled() bool {
	return s.config.Invoice.Enabled
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order, customer Customer) (*bytes.Buffer, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	htmlContent, err := s.RenderHTML(o, customer)
	if err != nil {
		return nil, err
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// RenderHTML renders the invoice page wkhtmltopdf prints
func (s *Service) RenderHTML(o *order.Order, customer Customer) ([]byte, error) {
	data := InvoiceData{
		InvoiceNumber: "INV-" + o.ShortID(),
		InvoiceDate:   s.now().Format("January 2, 2006"),
		Order:         o,
		Customer:      customer,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
			Website: s.config.App.CompanyWebsite,
		},
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the download name for an order's invoice
func Filename(o *order.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", o.ShortID())
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Customer      Customer
	Company       CompanyInfo
}

// Customer is who the invoice is addressed to
type Customer struct {
	Name  string
	Email string
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .company-info { flex: 1; }
        .invoice-info { text-align: right; flex: 1; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .items-table .num { text-align: right; width: 90px; }
        .totals { float: right; width: 300px; font-size: 18px; font-weight: bold; text-align: right; }
        .footer { clear: both; margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; text-transform: uppercase; }
        .status-completed { background-color: #dcfce7; color: #166534; }
        .status-pending { background-color: #fef3c7; color: #92400e; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            <p>Email: {{.Company.Email}}</p>
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.Order.ShortID}}</p>
            <p><strong>Order Date:</strong> {{.Order.OrderDate.Format "January 2, 2006"}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Ship To:</div>
        <p><strong>{{.Customer.Name}}</strong></p>
        {{if .Customer.Email}}<p>{{.Customer.Email}}</p>{{end}}
        <p>{{.Order.ShippingAddress}}</p>
        <p>
            Payment: {{.Order.PaymentMode.Display}}
            <span class="status-badge status-{{.Order.Status}}">{{.Order.Status.Label}}</span>
        </p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Product.Name}}</strong></td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .Product.Price}}</td>
                <td class="num">{{money .Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">Total: {{money .Order.TotalAmount}}</div>

    <div class="footer">
        <p>Thank you for your business!</p>
        <p>If you have any questions about this invoice, please contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
