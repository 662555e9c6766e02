package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func TestParseDefinitionNamedAndPositional(t *testing.T) {
	def, err := ParseDefinition("x", []byte(`{
		"BG": "#102030",
		"Accent2": "#F00",
		"palette": ["#111111", "#222222", "#333333", "#444444", "#555555", "#666666", "#777777"]
	}`))
	require.NoError(t, err)

	p := def.Palette()
	assert.Equal(t, "#102030", p[RoleBackground])
	assert.Equal(t, "#ff0000", p[RoleAccent2], "named beats positional")
	assert.Equal(t, "#111111", p[RoleAccent])
	assert.Equal(t, "#333333", p[RoleAccent3])
	assert.Equal(t, "#444444", p[RoleAccent4])
	assert.Equal(t, "#555555", p[RoleAccent5])
	assert.Equal(t, "#666666", p[RoleForeground])
	assert.Equal(t, "#444444", p[RoleMuted])
}

func TestPaletteSkipsNonStringEntries(t *testing.T) {
	def, err := ParseDefinition("x", []byte(`{"palette": ["#ff0000", 5, null, "#00ff00", {"a": 1}, "#0000ff", "#111111", "#222222", "#333333", "#444444"]}`))
	require.NoError(t, err)

	p := def.Palette()
	assert.Equal(t, "#ff0000", p[RoleAccent])
	assert.Equal(t, "#00ff00", p[RoleAccent2], "later entries shift left")
	assert.Equal(t, "#0000ff", p[RoleAccent3])
	assert.Equal(t, "#333333", p[RoleForeground], "six strings are kept")
}

func TestParseDefinitionYAML(t *testing.T) {
	def, err := ParseDefinition("y", []byte("fg: '#abcdef'\nmuted: '#12345678'\n"))
	require.NoError(t, err)
	p := def.Palette()
	assert.Equal(t, "#abcdef", p[RoleForeground])
	assert.Equal(t, "#123456", p[RoleMuted], "alpha is ignored")
}

func TestPaletteInvalidValuesUseDefaults(t *testing.T) {
	def, err := ParseDefinition("bad", []byte(`{"fg": "red", "accent": 42, "bg": "#12", "palette": ["nope", 7]}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, def.Palette())
}

func TestPaletteEmptyDefinition(t *testing.T) {
	def, err := ParseDefinition("empty", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultPalette, def.Palette())

	var nilDef *Definition
	assert.Equal(t, DefaultPalette, nilDef.Palette())
}

func TestParseDefinitionMalformed(t *testing.T) {
	for _, body := range []string{`{"fg": `, `[1, 2]`, ``} {
		_, err := ParseDefinition("m", []byte(body))
		assert.ErrorIs(t, err, ErrInvalidTheme, "body %q", body)
	}
}

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "ocean.yaml", "accent: '#00ffff'\n")
	writeTheme(t, dir, "ocean.json", `{"accent": "#ff00ff"}`)

	def, err := LoadDefinition(dir, "ocean")
	require.NoError(t, err)
	assert.Equal(t, "#ff00ff", def.Palette()[RoleAccent], ".json is tried first")

	_, err = LoadDefinition(dir, "missing")
	assert.ErrorIs(t, err, ErrThemeNotFound)

	_, err = LoadDefinition(dir, "../ocean")
	assert.ErrorIs(t, err, ErrThemeNotFound)
}

func TestAvailable(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "zeta.yml", "{}")
	writeTheme(t, dir, "alpha.json", "{}")
	writeTheme(t, dir, "alpha.yaml", "{}")
	writeTheme(t, dir, "blue.json", "{}")
	writeTheme(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	assert.Equal(t, []string{"blue", "alpha", "zeta"}, Available(dir))
	assert.Equal(t, []string{"blue"}, Available(filepath.Join(dir, "nope")))
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ABC", "#aabbcc", false},
		{"#a1B2c3", "#a1b2c3", false},
		{" #000000ff ", "#000000", false},
		{"abc", "", true},
		{"#abcd", "", true},
		{"#ggg", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeHex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
