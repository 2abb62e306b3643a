package presets_test

import (
	"bytes"
	"strings"
	"testing"

	"fjacquet/csv2qif/cmd/presets"
	"fjacquet/csv2qif/cmd/root"
	"fjacquet/csv2qif/internal/preset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "presets", presets.Cmd.Use)
	assert.Contains(t, presets.Cmd.Short, "--company")
}

func TestPresetsCommand_ListsBuiltins(t *testing.T) {
	var out bytes.Buffer
	presets.Cmd.SetOut(&out)
	presets.Cmd.SetArgs([]string{})
	require.NoError(t, presets.Cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "name,type,encoding,dtFmt,slice,fieldMap", lines[0])
	assert.Equal(t, `EPOS,CCard,sjis,%Y年%m月%d日,2:-4,"Date:1,Payee:2,Debit:4"`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "JP-Post,Bank,sjis,%Y%m%d,7:,"))
	assert.True(t, strings.HasPrefix(lines[3], "Shinsei,Bank,"))
}

func TestPresetsCommand_IncludesLoadedPresets(t *testing.T) {
	orig := root.AppPresets
	t.Cleanup(func() { root.AppPresets = orig })

	registry := preset.NewRegistry()
	require.NoError(t, registry.Add(preset.Preset{Name: "Migros", Type: "CCard", FieldMap: "Date:0,Amount:1"}))
	root.AppPresets = registry

	var out bytes.Buffer
	presets.Cmd.SetOut(&out)
	presets.Cmd.SetArgs([]string{})
	require.NoError(t, presets.Cmd.Execute())
	assert.Contains(t, out.String(), "Migros,CCard,,,,")
}
