package etree_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/evidlab/cardex"
	cardetree "github.com/evidlab/cardex/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDocx builds a minimal .docx archive from the given entries.
func writeDocx(t *testing.T, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return path
}

const stylesXML = `<?xml version="1.0"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:style w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>
  <w:style w:styleId="Tag"><w:name w:val="Tag"/></w:style>
  <w:style w:styleId="Cite"><w:name w:val="Cite"/></w:style>
</w:styles>`

func TestConverterConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("maps styles and run formatting to tags", func(t *testing.T) {
		t.Parallel()

		documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Warming Impact</w:t></w:r></w:p>
    <w:p><w:pPr><w:pStyle w:val="Cite"/></w:pPr><w:r><w:rPr><w:rStyle w:val="Emphasis"/></w:rPr><w:t>Smith 2020</w:t></w:r></w:p>
    <w:p>
      <w:r><w:t xml:space="preserve">Sea levels </w:t></w:r>
      <w:r><w:rPr><w:u w:val="single"/></w:rPr><w:t>will rise dramatically</w:t></w:r>
      <w:r><w:t xml:space="preserve"> and </w:t></w:r>
      <w:r><w:rPr><w:highlight w:val="yellow"/></w:rPr><w:t>cities flood</w:t></w:r>
      <w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> every year</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

		path := writeDocx(t, map[string]string{
			"word/document.xml": documentXML,
			"word/styles.xml":   stylesXML,
		})

		html, err := cardetree.NewConverter().ConvertFile(path)

		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Warming Impact</h1>")
		assert.Contains(t, html, `<p class="cite"><em>Smith 2020</em></p>`)
		assert.Contains(t, html, "<u>will rise dramatically</u>")
		assert.Contains(t, html, "<mark>cities flood</mark>")
		assert.Contains(t, html, "<strong> every year</strong>")
	})

	t.Run("maps Tag style to h3 with tag class", func(t *testing.T) {
		t.Parallel()

		documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Tag"/></w:pPr><w:r><w:t>Warming Impact</w:t></w:r></w:p>
  </w:body>
</w:document>`

		path := writeDocx(t, map[string]string{
			"word/document.xml": documentXML,
			"word/styles.xml":   stylesXML,
		})

		html, err := cardetree.NewConverter().ConvertFile(path)

		require.NoError(t, err)
		assert.Contains(t, html, `<h3 class="tag">Warming Impact</h3>`)
	})

	t.Run("falls back to style IDs without styles.xml", func(t *testing.T) {
		t.Parallel()

		documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Second Level</w:t></w:r></w:p>
  </w:body>
</w:document>`

		path := writeDocx(t, map[string]string{"word/document.xml": documentXML})

		html, err := cardetree.NewConverter().ConvertFile(path)

		require.NoError(t, err)
		assert.Contains(t, html, "<h2>Second Level</h2>")
	})

	t.Run("skips empty paragraphs and escapes text", func(t *testing.T) {
		t.Parallel()

		documentXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p></w:p>
    <w:p><w:r><w:t>5 &lt; 10 &amp; rising</w:t></w:r></w:p>
  </w:body>
</w:document>`

		path := writeDocx(t, map[string]string{"word/document.xml": documentXML})

		html, err := cardetree.NewConverter().ConvertFile(path)

		require.NoError(t, err)
		assert.Contains(t, html, "<p>5 &lt; 10 &amp; rising</p>")
		assert.NotContains(t, html, "<p></p>")
	})

	t.Run("rejects archives without document.xml", func(t *testing.T) {
		t.Parallel()

		path := writeDocx(t, map[string]string{"word/other.xml": "<x/>"})

		_, err := cardetree.NewConverter().ConvertFile(path)

		require.Error(t, err)
		assert.Equal(t, cardex.EINVALID, cardex.ErrorCode(err))
	})

	t.Run("rejects non-zip files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "not-a-docx.docx")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

		_, err := cardetree.NewConverter().ConvertFile(path)

		require.Error(t, err)
		assert.Equal(t, cardex.EINVALID, cardex.ErrorCode(err))
	})
}
