package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplateHTMLSplitsParagraphs(t *testing.T) {
	paragraphs := parseTemplateHTML("<p>Primeiro parágrafo.</p><p>Segundo parágrafo.</p>")

	require.Len(t, paragraphs, 2)
	require.Len(t, paragraphs[0].Runs, 1)
	assert.Equal(t, "Primeiro parágrafo.", paragraphs[0].Runs[0].Text)
	assert.Equal(t, "Segundo parágrafo.", paragraphs[1].Runs[0].Text)
}

func TestParseTemplateHTMLTracksInlineStyles(t *testing.T) {
	paragraphs := parseTemplateHTML("<p>competência de <b>março de 2024</b>.</p>")

	require.Len(t, paragraphs, 1)
	runs := paragraphs[0].Runs
	require.Len(t, runs, 3)

	assert.Equal(t, "competência de ", runs[0].Text)
	assert.False(t, runs[0].Bold)

	assert.Equal(t, "março de 2024", runs[1].Text)
	assert.True(t, runs[1].Bold)

	assert.Equal(t, ".", runs[2].Text)
	assert.False(t, runs[2].Bold)
}

func TestParseTemplateHTMLNestedAndAliasedTags(t *testing.T) {
	paragraphs := parseTemplateHTML("<p><strong><em>ênfase</em></strong> e <u>sublinhado</u></p>")

	require.Len(t, paragraphs, 1)
	runs := paragraphs[0].Runs
	require.Len(t, runs, 3)

	assert.True(t, runs[0].Bold)
	assert.True(t, runs[0].Italic)
	assert.False(t, runs[0].Underline)

	assert.True(t, runs[2].Underline)
	assert.False(t, runs[2].Bold)
}

func TestParseTemplateHTMLForcedLineBreaks(t *testing.T) {
	paragraphs := parseTemplateHTML("<p>linha um<br>linha dois<br/>linha três</p>")

	require.Len(t, paragraphs, 1)
	runs := paragraphs[0].Runs
	require.Len(t, runs, 5)
	assert.True(t, runs[1].Break)
	assert.True(t, runs[3].Break)
	assert.Equal(t, "linha três", runs[4].Text)
}

func TestParseTemplateHTMLDecodesEntities(t *testing.T) {
	paragraphs := parseTemplateHTML("<p>Silva &amp; Filhos &lt;LTDA&gt; &quot;matriz&quot;</p>")

	require.Len(t, paragraphs, 1)
	assert.Equal(t, `Silva & Filhos <LTDA> "matriz"`, paragraphs[0].Runs[0].Text)
}

func TestParseTemplateHTMLPlainTextFallback(t *testing.T) {
	paragraphs := parseTemplateHTML("Texto antigo sem marcação nenhuma.")

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "Texto antigo sem marcação nenhuma.", paragraphs[0].Runs[0].Text)
}

func TestParseTemplateHTMLDropsUnknownTagsKeepsContent(t *testing.T) {
	paragraphs := parseTemplateHTML(`<p><span class="x">conteúdo</span> preservado</p>`)

	require.Len(t, paragraphs, 1)
	text := ""
	for _, run := range paragraphs[0].Runs {
		text += run.Text
	}
	assert.Equal(t, "conteúdo preservado", text)
}

func TestParseTemplateHTMLCollapsesWhitespace(t *testing.T) {
	paragraphs := parseTemplateHTML("<p>muito\n  espaço\t aqui</p>")

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "muito espaço aqui", paragraphs[0].Runs[0].Text)
}

func TestParseTemplateHTMLIgnoresEmptyParagraphs(t *testing.T) {
	paragraphs := parseTemplateHTML("<p></p><p>  </p><p>real</p>")

	require.Len(t, paragraphs, 1)
	assert.Equal(t, "real", paragraphs[0].Runs[0].Text)
}
