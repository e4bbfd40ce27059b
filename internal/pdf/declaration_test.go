package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresouzadev/sindigo/internal/services"
)

func sampleDocument() services.DeclarationDocument {
	return services.DeclarationDocument{
		Profile: services.SyndicateProfile{
			Name:    "SINDICATO DOS TRABALHADORES RURAIS DE INDIAROBA",
			CNPJ:    "13.000.000/0001-00",
			Address: "Rua Principal, 100, Centro, Indiaroba/SE",
			Phone:   "(79) 3543-0000",
		},
		Title: "DECLARAÇÃO DE FILIAÇÃO",
		BodyHTML: "<p>Declaramos que <b>Maria Aparecida da Silva</b>, portadora do CPF " +
			"123.456.789-00, é filiada a este sindicato desde 02/05/2019.</p>" +
			"<p>Por ser expressão da verdade, firmamos a presente.</p>",
		DateLine: "Indiaroba/SE, 15 de março de 2026",
	}
}

func TestRenderDeclarationProducesPDF(t *testing.T) {
	renderer := NewDeclarationPDF()

	document, err := renderer.Render(sampleDocument())
	require.NoError(t, err)

	require.NotEmpty(t, document)
	assert.True(t, bytes.HasPrefix(document, []byte("%PDF")), "output must start with the PDF magic")
}

func TestRenderDeclarationIgnoresBrokenSignature(t *testing.T) {
	renderer := NewDeclarationPDF()

	broken := sampleDocument()
	broken.Signature = "data:image/png;base64,not-valid-base64!!!"

	document, err := renderer.Render(broken)
	require.NoError(t, err, "an unreadable signature falls back to the plain line")
	assert.True(t, bytes.HasPrefix(document, []byte("%PDF")))
}

func TestRenderDeclarationHandlesLongBody(t *testing.T) {
	renderer := NewDeclarationPDF()

	long := sampleDocument()
	long.BodyHTML = "<p>Texto de corpo razoavelmente longo para exercitar a quebra de " +
		"linhas justificadas em várias linhas consecutivas, repetido algumas vezes. " +
		"Texto de corpo razoavelmente longo para exercitar a quebra de linhas " +
		"justificadas em várias linhas consecutivas.</p>"

	document, err := renderer.Render(long)
	require.NoError(t, err)
	assert.NotEmpty(t, document)
}
