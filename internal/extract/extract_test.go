package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	cases := map[string]Format{
		"notes.txt":      FormatText,
		"README.md":      FormatMarkdown,
		"export.csv":     FormatCSV,
		"config.json":    FormatJSON,
		"manual.pdf":     FormatPDF,
		"report.docx":    FormatDocx,
		"MANUAL.PDF":     FormatPDF,
		"archive.tar.gz": FormatUnknown,
		"noextension":    FormatUnknown,
		"image.png":      FormatUnknown,
	}

	for filename, want := range cases {
		assert.Equal(t, want, DetectFormat(filename), "filename %q", filename)
	}
}

func TestExtractTextPassesThroughTextFormats(t *testing.T) {
	content := "Feeding schedule:\n- morning\n- evening\n"

	for _, filename := range []string{"guide.txt", "guide.md", "guide.csv", "guide.json"} {
		text, err := ExtractText(filename, []byte(content))
		require.NoError(t, err, "filename %q", filename)
		assert.Equal(t, content, text)
	}
}

func TestExtractTextRejectsUnsupportedExtension(t *testing.T) {
	_, err := ExtractText("photo.png", []byte{0x89, 0x50})
	require.Error(t, err)
	assert.Equal(t, "Unsupported file type: .png", err.Error())

	_, err = ExtractText("Photo.PNG", nil)
	require.Error(t, err)
	assert.Equal(t, "Unsupported file type: .png", err.Error())
}

func TestExtractTextRejectsMissingExtension(t *testing.T) {
	_, err := ExtractText("notes", []byte("plain"))
	require.Error(t, err)
	assert.Equal(t, "Unsupported file type: ", err.Error())
}

func TestExtractTextMalformedPDF(t *testing.T) {
	_, err := ExtractText("broken.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse PDF")
}

func TestExtractTextMalformedDocx(t *testing.T) {
	_, err := ExtractText("broken.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse DOCX")
}
