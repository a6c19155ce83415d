package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	data := Dataset{
		Headers: []string{"Name", "Batch", "Progress", "Certificate Status"},
		Rows: []map[string]string{
			{"Name": "Alice", "Batch": "Batch Alpha", "Progress": "100%", "Certificate Status": "signed"},
			{"Name": "Doe, Jane", "Batch": "Batch Beta", "Progress": "75%", "Certificate Status": "unsigned"},
			{"Name": `She said "hi"`, "Batch": "Batch Beta", "Progress": "60%", "Certificate Status": "unsigned"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name,Batch,Progress,Certificate Status", lines[0])
	assert.Equal(t, "Alice,Batch Alpha,100%,signed", lines[1])
	assert.Equal(t, `"Doe, Jane",Batch Beta,75%,unsigned`, lines[2])
	assert.Equal(t, `"She said ""hi""",Batch Beta,60%,unsigned`, lines[3])
}

func TestCSVExporterMissingColumnsRenderEmpty(t *testing.T) {
	exporter := NewCSVExporter()
	out, err := exporter.Render(Dataset{
		Headers: []string{"Name", "Progress"},
		Rows:    []map[string]string{{"Name": "Bob"}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Bob,\n")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()
	out, err := exporter.Render(Dataset{
		Headers: []string{"Name", "ID", "Progress", "Certificate Status"},
		Rows: []map[string]string{
			{"Name": "Alice", "ID": "L001", "Progress": "100%", "Certificate Status": "signed"},
		},
	}, "Selected Learners", "Generated 2026-08-30")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	exporter := NewPDFExporter()
	_, err := exporter.Render(Dataset{}, "Empty", "")
	require.Error(t, err)
}
