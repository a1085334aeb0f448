package merge

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMerge_LastSourceWins(t *testing.T) {
	s1 := Config{"db": {"host": "a", "port": "1"}, "app": {"name": "one"}}
	s2 := Config{"db": {"host": "b"}}
	s3 := Config{"db": {"port": "3"}, "cache": {"ttl": "60"}}

	got, err := Merge(s1, s2, s3)
	require.NoError(t, err)

	want := Config{
		"db":    {"host": "b", "port": "3"},
		"app":   {"name": "one"},
		"cache": {"ttl": "60"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_SectionUnion(t *testing.T) {
	got, err := Merge(Config{"a": {}}, Config{"b": {"k": "v"}}, Config{"c": {}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got.Sections())
}

func TestMerge_Associative(t *testing.T) {
	s1 := Config{"s": {"k1": "1", "k2": "1"}}
	s2 := Config{"s": {"k2": "2", "k3": "2"}, "t": {"x": "2"}}
	s3 := Config{"s": {"k3": "3"}, "t": {"y": "3"}}

	flat, err := Merge(s1, s2, s3)
	require.NoError(t, err)

	left, err := Merge(s1, s2)
	require.NoError(t, err)
	nested, err := Merge(left, s3)
	require.NoError(t, err)

	if diff := cmp.Diff(flat, nested); diff != "" {
		t.Errorf("Merge([s1,s2,s3]) != Merge([Merge([s1,s2]), s3]) (-flat +nested):\n%s", diff)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	m, err := Merge(Config{"s": {"a": "1"}}, Config{"s": {"b": "2"}, "t": {"c": "3"}})
	require.NoError(t, err)

	again, err := Merge(m, m)
	require.NoError(t, err)
	if diff := cmp.Diff(m, again); diff != "" {
		t.Errorf("Merge(m, m) changed config (-want +got):\n%s", diff)
	}
}

func TestMerge_DoesNotMutateSources(t *testing.T) {
	s1 := Config{"s": {"k": "1"}}
	s2 := Config{"s": {"k": "2"}}

	got, err := Merge(s1, s2)
	require.NoError(t, err)
	got["s"]["k"] = "changed"

	assert.Equal(t, "1", s1["s"]["k"])
	assert.Equal(t, "2", s2["s"]["k"])
}

func TestMerge_NoSources(t *testing.T) {
	got, err := Merge()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMerge_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "[section_name]\nkey1 = value1\nkey2 = value2\n")

	got, err := Merge(File(path))
	require.NoError(t, err)

	v, ok := got.Get("section_name", "key2")
	assert.True(t, ok)
	assert.Equal(t, "value2", v)
}

func TestMergeFiles_DistinctKeysSameSection(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "conf1.ini", "[section_name]\nkey1 = value1\n")
	p2 := writeFile(t, dir, "conf2.ini", "[section_name]\nkey2 = value2\n")
	p3 := writeFile(t, dir, "conf3.ini", "[section_name]\nkey3 = value3\n")

	got, err := MergeFiles(p1, p2, p3)
	require.NoError(t, err)

	want := Config{"section_name": {"key1": "value1", "key2": "value2", "key3": "value3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_MixedSources(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "[s]\nk = file\n")

	got, err := Merge(Config{"s": {"k": "memory", "only": "memory"}}, File(path))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"k": "file", "only": "memory"}, got["s"])
}

func TestFile_MissingIsEmpty(t *testing.T) {
	got, err := File(filepath.Join(t.TempDir(), "nope.ini")).Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = File(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMerge_MissingFileContributesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "[s]\nk = v\n")

	got, err := MergeFiles(path, filepath.Join(dir, "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, Config{"s": {"k": "v"}}, got)
}

func TestFile_INIMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.ini", "[unterminated\nkey = value\n")

	_, err := MergeFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestFile_INIDefaultsAndCase(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", `[DEFAULT]
region = eu

[Server]
Host = example.com
region = us

[client]
timeout: 30
`)

	got, err := File(path).Load()
	require.NoError(t, err)

	want := Config{
		"Server": {"host": "example.com", "region": "us"},
		"client": {"timeout": "30", "region": "eu"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_INIUnsectionedKeysInherited(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "env = prod\n\n[app]\nname = demo\n")

	got, err := File(path).Load()
	require.NoError(t, err)

	want := Config{"app": {"env": "prod", "name": "demo"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, got.Sections(), "DEFAULT")
}

func TestFile_INIInlineHashKept(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.ini", "[s]\ncolor = #ff0000\n")

	got, err := File(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", got["s"]["color"])
}

func TestFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.yaml", `server:
  host: example.com
  port: 8080
  tls: true
empty:
`)

	got, err := File(path).Load()
	require.NoError(t, err)

	want := Config{
		"server": {"host": "example.com", "port": "8080", "tls": "true"},
		"empty":  {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_YAMLNestedRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.yml", "server:\n  hosts:\n    - a\n    - b\n")

	_, err := File(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestFile_YAMLMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "conf.yaml", "server: [unclosed\n")

	_, err := File(path).Load()
	require.Error(t, err)
}

func TestPaths(t *testing.T) {
	got := Paths("a.ini", "b.yaml")
	assert.Equal(t, []Source{File("a.ini"), File("b.yaml")}, got)
}

func TestConfig_Get(t *testing.T) {
	cfg := Config{"s": {"k": "v"}}

	v, ok := cfg.Get("s", "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok = cfg.Get("s", "missing")
	assert.False(t, ok)
	_, ok = cfg.Get("missing", "k")
	assert.False(t, ok)
}

func TestWriteINI_RoundTrip(t *testing.T) {
	cfg := Config{
		"b": {"key2": "value2", "key1": "value1"},
		"a": {"name": "demo"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteINI(&buf, cfg))

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("[a]")), bytes.Index(buf.Bytes(), []byte("[b]")), out)

	path := writeFile(t, t.TempDir(), "round.ini", out)
	got, err := File(path).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
