package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/andresouzadev/sindigo/internal/services"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// ReceiptPDF generates payment receipts. It implements
// services.ReceiptRenderer.
type ReceiptPDF struct{}

func NewReceiptPDF() *ReceiptPDF { return &ReceiptPDF{} }

func (renderer *ReceiptPDF) Render(data services.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 12}).
		WithTitle("Comprovante de Pagamento", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		row.New(10).Add(col.New(12).Add(
			text.New("Comprovante de Pagamento", props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Center,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(data.SyndicateName, props.Text{Size: 12, Align: align.Center, Top: 1}),
		)),
		line.NewRow(4, props.Line{Thickness: 0.4}),
	)

	detail := func(label string, value string) core.Row {
		return row.New(8).Add(col.New(12).Add(
			text.New(label+": "+value, props.Text{Size: 12, Top: 1}),
		))
	}
	m.AddRows(
		detail("Recebemos de", data.ClientName),
		detail("CPF", data.ClientCPF),
		detail("Referente a", data.Reference),
		detail("Data do Pagamento", data.PaymentDate),
		row.New(12).Add(col.New(12).Add(
			text.New("Valor Pago: "+formatCurrency(data.Amount.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 2,
			}),
		)),
		line.NewRow(4, props.Line{Thickness: 0.4}),
	)

	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Emitido em: "+data.IssuedAt.Format("02/01/2006"), props.Text{
			Size: 10, Color: colorGray, Top: 1,
		}),
	)))
	if data.RegisteredBy != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Registrado por: "+data.RegisteredBy, props.Text{
				Size: 10, Color: colorGray, Top: 1,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// formatCurrency renders a fixed-point amount in Brazilian style:
// "1234.50" becomes "R$ 1.234,50".
func formatCurrency(fixed string) string {
	whole, cents, _ := strings.Cut(fixed, ".")
	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	n := len(whole)
	var builder strings.Builder
	for index := 0; index < n; index++ {
		if index > 0 && (n-index)%3 == 0 {
			builder.WriteByte('.')
		}
		builder.WriteByte(whole[index])
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + builder.String() + "," + cents
}
